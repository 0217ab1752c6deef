package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goosebones/pokemon/pkg/listing"
)

const minimalYAML = `
ebay:
  auth_token: v^1.1#token
listing:
  paypal_email: seller@example.com
rows:
  xlsx:
    path: inventory.xlsx
`

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		envVars   map[string]string
		wantErr   string
		checkFunc func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid minimal config",
			yaml: minimalYAML,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "v^1.1#token", cfg.Ebay.AuthToken)
				assert.False(t, cfg.Ebay.UsesOAuth())
				assert.Equal(t, "seller@example.com", cfg.Listing.PayPalEmail)
				assert.Equal(t, "inventory.xlsx", cfg.Rows.XLSX.Path)
			},
		},
		{
			name: "defaults applied for optional fields",
			yaml: minimalYAML,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, "https://api.ebay.com/ws/api.dll", cfg.Ebay.TradingURL)
				assert.Equal(t, "https://api.ebay.com/identity/v1/oauth2/token", cfg.Ebay.TokenURL)
				assert.Equal(t, 1131, cfg.Ebay.CompatLevel)
				assert.Equal(t, 0, cfg.Ebay.SiteID)
				assert.Equal(t, 60*time.Second, cfg.Ebay.Timeout)
				assert.Equal(t, 2.0, cfg.Ebay.RateLimit.PerSecond)
				assert.Equal(t, int64(5000), cfg.Ebay.RateLimit.DailyLimit)
				assert.Equal(t, "2611", cfg.Listing.CategoryID)
				assert.Equal(t, 3000, cfg.Listing.ConditionID)
				assert.Equal(t, "Chinese", cfg.Listing.ListingType)
				assert.Equal(t, "Days_7", cfg.Listing.Duration)
				assert.Equal(t, "Rochester, New York", cfg.Listing.Location)
				assert.Equal(t, "USD", cfg.Listing.Currency)
				assert.Equal(t, 2.95, cfg.Listing.ShippingCost)
				assert.Equal(t, "ReturnsNotAccepted", cfg.Listing.ReturnPolicy)
				assert.Equal(t, "pass-through", cfg.Listing.UnknownConditionPolicy)
				assert.Equal(t, RowsBackendXLSX, cfg.Rows.Backend)
				assert.Equal(t, "Sheet1", cfg.Rows.XLSX.Sheet)
				assert.Equal(t, MediaBackendEPS, cfg.Media.Backend)
				assert.Equal(t, "images", cfg.Media.ImageRoot)
				assert.Equal(t, "card_lister", cfg.Metrics.Job)
				assert.False(t, cfg.Tracing.Enabled)
				assert.Equal(t, "localhost:4317", cfg.Tracing.Endpoint)
				assert.Equal(t, "card-lister", cfg.Tracing.ServiceName)
				assert.Equal(t, 1.0, cfg.Tracing.SampleRatio)
				assert.Zero(t, cfg.Schedule.RunInterval)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "text", cfg.Logging.Format)
			},
		},
		{
			name: "env var substitution",
			yaml: `
ebay:
  auth_token: "${TEST_EBAY_TOKEN}"
listing:
  paypal_email: seller@example.com
rows:
  xlsx:
    path: inventory.xlsx
`,
			envVars: map[string]string{
				"TEST_EBAY_TOKEN": "secret123",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "secret123", cfg.Ebay.AuthToken)
			},
		},
		{
			name: "sample ratio out of range",
			yaml: minimalYAML + `
tracing:
  enabled: true
  sample_ratio: 1.5
`,
			wantErr: "tracing.sample_ratio must be between 0 and 1",
		},
		{
			name: "oauth credentials",
			yaml: `
ebay:
  app_id: my-app
  cert_id: my-cert
  refresh_token: my-refresh
listing:
  paypal_email: seller@example.com
rows:
  xlsx:
    path: inventory.xlsx
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.True(t, cfg.Ebay.UsesOAuth())
				assert.NotEmpty(t, cfg.Ebay.Scopes)
			},
		},
		{
			name: "missing credentials",
			yaml: `
ebay:
  app_id: my-app
listing:
  paypal_email: seller@example.com
rows:
  xlsx:
    path: inventory.xlsx
`,
			wantErr: "ebay.auth_token or ebay.app_id, ebay.cert_id and ebay.refresh_token are required",
		},
		{
			name: "invalid unknown condition policy",
			yaml: `
ebay:
  auth_token: t
listing:
  paypal_email: seller@example.com
  unknown_condition_policy: drop
rows:
  xlsx:
    path: inventory.xlsx
`,
			wantErr: "listing.unknown_condition_policy",
		},
		{
			name: "missing paypal without profiles",
			yaml: `
ebay:
  auth_token: t
rows:
  xlsx:
    path: inventory.xlsx
`,
			wantErr: "listing.paypal_email is required when listing.seller_profiles is not set",
		},
		{
			name: "seller profiles replace paypal",
			yaml: `
ebay:
  auth_token: t
listing:
  seller_profiles:
    payment: 11
    shipping: 22
    return: 33
rows:
  xlsx:
    path: inventory.xlsx
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				require.NotNil(t, cfg.Listing.SellerProfiles)
				assert.Equal(t, int64(22), cfg.Listing.SellerProfiles.Shipping)
			},
		},
		{
			name: "missing xlsx path",
			yaml: `
ebay:
  auth_token: t
listing:
  paypal_email: seller@example.com
`,
			wantErr: "rows.xlsx.path is required when backend is xlsx",
		},
		{
			name: "postgres backend missing host",
			yaml: `
ebay:
  auth_token: t
listing:
  paypal_email: seller@example.com
rows:
  backend: postgres
  database:
    name: cards
    user: lister
`,
			wantErr: "rows.database.host is required when backend is postgres",
		},
		{
			name: "invalid rows backend",
			yaml: `
ebay:
  auth_token: t
listing:
  paypal_email: seller@example.com
rows:
  backend: csv
`,
			wantErr: `rows.backend must be one of: xlsx, postgres (got "csv")`,
		},
		{
			name: "gcs backend missing bucket",
			yaml: minimalYAML + `
media:
  backend: gcs
`,
			wantErr: "media.gcs.bucket is required when backend is gcs",
		},
		{
			name: "invalid media backend",
			yaml: minimalYAML + `
media:
  backend: s3
`,
			wantErr: `media.backend must be one of: eps, gcs (got "s3")`,
		},
		{
			name: "discord enabled without webhook",
			yaml: minimalYAML + `
notifications:
  discord:
    enabled: true
`,
			wantErr: "notifications.discord.webhook_url is required when enabled",
		},
		{
			name: "email enabled without api key",
			yaml: minimalYAML + `
notifications:
  email:
    enabled: true
    from: lister@example.com
    to: me@example.com
`,
			wantErr: "notifications.email.api_key, from and to are required when enabled",
		},
		{
			name: "invalid logging format",
			yaml: minimalYAML + `
logging:
  format: xml
`,
			wantErr: `logging.format must be one of: text, json, pretty (got "xml")`,
		},
		{
			name:    "invalid YAML",
			yaml:    `{{{not valid yaml`,
			wantErr: "parsing config YAML",
		},
		{
			name: "full config with overrides",
			yaml: `
server:
  host: "127.0.0.1"
  port: 9090
ebay:
  auth_token: t
  trading_url: http://localhost:8089/ws/api.dll
  site_id: 0
  compat_level: 967
  rate_limit:
    per_second: 1
    burst: 1
    daily_limit: 100
listing:
  category_id: "183454"
  schedule_time: 2020-05-11T00:30:00Z
  paypal_email: seller@example.com
  unknown_condition_policy: force-reject
rows:
  backend: postgres
  database:
    host: db.example.com
    port: 5433
    name: cards
    user: lister
    password: pass
media:
  backend: gcs
  image_root: /srv/cards
  gcs:
    bucket: card-pictures
    prefix: listings
schedule:
  run_interval: 1h
notifications:
  discord:
    enabled: true
    webhook_url: https://discord.com/api/webhooks/123
metrics:
  pushgateway_url: http://pushgateway:9091
logging:
  level: debug
  format: pretty
  file: listing_log.txt
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "127.0.0.1", cfg.Server.Host)
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, "http://localhost:8089/ws/api.dll", cfg.Ebay.TradingURL)
				assert.Equal(t, 967, cfg.Ebay.CompatLevel)
				assert.Equal(t, int64(100), cfg.Ebay.RateLimit.DailyLimit)
				assert.Equal(t, "183454", cfg.Listing.CategoryID)
				require.NotNil(t, cfg.Listing.ScheduleTime)
				assert.True(t, time.Date(2020, 5, 11, 0, 30, 0, 0, time.UTC).Equal(*cfg.Listing.ScheduleTime))
				assert.Equal(t, listing.PolicyForceReject, cfg.Listing.Policy())
				assert.Equal(t, RowsBackendPostgres, cfg.Rows.Backend)
				assert.Equal(t, 5433, cfg.Rows.Database.Port)
				assert.Equal(t, "card-pictures", cfg.Media.GCS.Bucket)
				assert.Equal(t, "/srv/cards", cfg.Media.ImageRoot)
				assert.Equal(t, time.Hour, cfg.Schedule.RunInterval)
				assert.True(t, cfg.Notifications.Discord.Enabled)
				assert.Equal(t, "http://pushgateway:9091", cfg.Metrics.PushgatewayURL)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "pretty", cfg.Logging.Format)
				assert.Equal(t, "listing_log.txt", cfg.Logging.File)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Only parallelize tests that don't modify env vars.
			if len(tt.envVars) == 0 {
				t.Parallel()
			}

			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))

			cfg, err := Load(path)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)

			if tt.checkFunc != nil {
				tt.checkFunc(t, cfg)
			}
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	_, err := Load("/nonexistent/path/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestListingConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg := &Config{Listing: ListingConfig{PayPalEmail: "seller@example.com"}}
	applyDefaults(cfg)

	want := listing.StandardDefaults()
	want.PayPalEmail = "seller@example.com"
	assert.Equal(t, want, cfg.Listing.Defaults())

	cfg.Listing.SellerProfiles = &SellerProfilesConfig{Payment: 1, Shipping: 2, Return: 3}
	d := cfg.Listing.Defaults()
	require.NotNil(t, d.SellerProfiles)
	assert.Equal(t, int64(1), d.SellerProfiles.PaymentProfileID)
	assert.Equal(t, int64(2), d.SellerProfiles.ShippingProfileID)
	assert.Equal(t, int64(3), d.SellerProfiles.ReturnProfileID)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Parallel()

	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		Name:     "cards",
		User:     "lister",
		Password: "testpass",
		SSLMode:  "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 dbname=cards user=lister password=testpass sslmode=disable",
		cfg.DSN(),
	)
}
