// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goosebones/pokemon/pkg/listing"
	domain "github.com/goosebones/pokemon/pkg/types"
)

// Row source and picture host backends.
const (
	RowsBackendXLSX     = "xlsx"
	RowsBackendPostgres = "postgres"

	MediaBackendEPS = "eps"
	MediaBackendGCS = "gcs"
)

// Config is the top-level application configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Ebay          EbayConfig          `yaml:"ebay"`
	Listing       ListingConfig       `yaml:"listing"`
	Rows          RowsConfig          `yaml:"rows"`
	Media         MediaConfig         `yaml:"media"`
	Schedule      ScheduleConfig      `yaml:"schedule"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Metrics       MetricsConfig       `yaml:"metrics"`
	Tracing       TracingConfig       `yaml:"tracing"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// EbayConfig defines eBay Trading API settings. Either AuthToken
// (Auth'n'Auth) or AppID, CertID and RefreshToken (OAuth) must be set.
type EbayConfig struct {
	AuthToken    string          `yaml:"auth_token"`
	AppID        string          `yaml:"app_id"`
	CertID       string          `yaml:"cert_id"`
	RefreshToken string          `yaml:"refresh_token"`
	Scopes       []string        `yaml:"scopes"`
	TokenURL     string          `yaml:"token_url"`
	TradingURL   string          `yaml:"trading_url"`
	SiteID       int             `yaml:"site_id"`
	CompatLevel  int             `yaml:"compat_level"`
	Timeout      time.Duration   `yaml:"timeout"`
	RateLimit    RateLimitConfig `yaml:"rate_limit"`
}

// UsesOAuth reports whether the OAuth refresh-token flow is configured.
func (e *EbayConfig) UsesOAuth() bool {
	return e.AuthToken == "" && e.RefreshToken != ""
}

// RateLimitConfig defines eBay API rate limiting settings.
type RateLimitConfig struct {
	PerSecond  float64 `yaml:"per_second"`
	Burst      int     `yaml:"burst"`
	DailyLimit int64   `yaml:"daily_limit"`
}

// ListingConfig holds the fixed listing defaults applied to every row.
type ListingConfig struct {
	CategoryID             string                `yaml:"category_id"`
	ConditionID            int                   `yaml:"condition_id"`
	ListingType            string                `yaml:"listing_type"`
	Duration               string                `yaml:"duration"`
	ScheduleTime           *time.Time            `yaml:"schedule_time"`
	Location               string                `yaml:"location"`
	Country                string                `yaml:"country"`
	Currency               string                `yaml:"currency"`
	PayPalEmail            string                `yaml:"paypal_email"`
	DispatchTimeMax        int                   `yaml:"dispatch_time_max"`
	ShippingService        string                `yaml:"shipping_service"`
	ShippingCost           float64               `yaml:"shipping_cost"`
	ReturnPolicy           string                `yaml:"return_policy"`
	UnknownConditionPolicy string                `yaml:"unknown_condition_policy"`
	SellerProfiles         *SellerProfilesConfig `yaml:"seller_profiles"`
}

// SellerProfilesConfig holds business-policy profile ids. When set they
// replace the payment, shipping and return blocks of every listing.
type SellerProfilesConfig struct {
	Payment  int64 `yaml:"payment"`
	Shipping int64 `yaml:"shipping"`
	Return   int64 `yaml:"return"`
}

// Defaults converts the listing section to builder defaults.
func (l *ListingConfig) Defaults() listing.Defaults {
	d := listing.Defaults{
		CategoryID:      l.CategoryID,
		ConditionID:     l.ConditionID,
		ListingType:     l.ListingType,
		Duration:        l.Duration,
		ScheduleTime:    l.ScheduleTime,
		Location:        l.Location,
		Country:         l.Country,
		Currency:        l.Currency,
		PayPalEmail:     l.PayPalEmail,
		DispatchTimeMax: l.DispatchTimeMax,
		ShippingService: l.ShippingService,
		ShippingCost:    l.ShippingCost,
		ReturnPolicy:    l.ReturnPolicy,
	}
	if l.SellerProfiles != nil {
		d.SellerProfiles = &domain.SellerProfiles{
			PaymentProfileID:  l.SellerProfiles.Payment,
			ShippingProfileID: l.SellerProfiles.Shipping,
			ReturnProfileID:   l.SellerProfiles.Return,
		}
	}
	return d
}

// Policy returns the parsed unknown-condition policy. Load has already
// validated it.
func (l *ListingConfig) Policy() listing.UnknownConditionPolicy {
	p, _ := listing.ParsePolicy(l.UnknownConditionPolicy)
	return p
}

// RowsConfig selects and configures the row source.
type RowsConfig struct {
	Backend  string         `yaml:"backend"` // xlsx, postgres
	XLSX     XLSXConfig     `yaml:"xlsx"`
	Database DatabaseConfig `yaml:"database"`
}

// XLSXConfig points at the inventory spreadsheet.
type XLSXConfig struct {
	Path  string `yaml:"path"`
	Sheet string `yaml:"sheet"`
}

// DatabaseConfig defines PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	PoolSize int    `yaml:"pool_size"`
}

// DSN returns a PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode,
	)
}

// MediaConfig selects where card pictures are hosted.
type MediaConfig struct {
	Backend   string    `yaml:"backend"` // eps, gcs
	ImageRoot string    `yaml:"image_root"`
	GCS       GCSConfig `yaml:"gcs"`
}

// GCSConfig defines Google Cloud Storage picture hosting.
type GCSConfig struct {
	Bucket          string `yaml:"bucket"`
	Prefix          string `yaml:"prefix"`
	PublicBaseURL   string `yaml:"public_base_url"`
	CredentialsFile string `yaml:"credentials_file"`
}

// ScheduleConfig defines cron intervals for serve mode.
type ScheduleConfig struct {
	RunInterval time.Duration `yaml:"run_interval"` // 0 disables scheduled runs
}

// NotificationsConfig defines notification targets.
type NotificationsConfig struct {
	Discord DiscordConfig `yaml:"discord"`
	Email   EmailConfig   `yaml:"email"`
}

// DiscordConfig defines Discord webhook settings.
type DiscordConfig struct {
	Enabled    bool   `yaml:"enabled"`
	WebhookURL string `yaml:"webhook_url"`
}

// EmailConfig defines SendGrid e-mail settings.
type EmailConfig struct {
	Enabled  bool   `yaml:"enabled"`
	APIKey   string `yaml:"api_key"`
	From     string `yaml:"from"`
	FromName string `yaml:"from_name"`
	To       string `yaml:"to"`
}

// MetricsConfig defines Prometheus Pushgateway settings for batch runs.
type MetricsConfig struct {
	PushgatewayURL string `yaml:"pushgateway_url"`
	Job            string `yaml:"job"`
}

// TracingConfig defines OpenTelemetry trace export over OTLP/gRPC.
type TracingConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Endpoint    string  `yaml:"endpoint"` // host:port of the collector
	Insecure    bool    `yaml:"insecure"`
	ServiceName string  `yaml:"service_name"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json, pretty
	File   string `yaml:"file"`
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyEbayDefaults(&cfg.Ebay)
	applyListingDefaults(&cfg.Listing)
	applyRowsDefaults(&cfg.Rows)
	applyMediaDefaults(&cfg.Media)
	applyMetricsDefaults(&cfg.Metrics)
	applyTracingDefaults(&cfg.Tracing)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
}

func applyEbayDefaults(e *EbayConfig) {
	if e.TokenURL == "" {
		e.TokenURL = "https://api.ebay.com/identity/v1/oauth2/token"
	}
	if e.TradingURL == "" {
		e.TradingURL = "https://api.ebay.com/ws/api.dll"
	}
	if e.CompatLevel == 0 {
		e.CompatLevel = 1131
	}
	if e.Timeout == 0 {
		e.Timeout = 60 * time.Second
	}
	if len(e.Scopes) == 0 {
		e.Scopes = []string{"https://api.ebay.com/oauth/api_scope/sell.inventory"}
	}
	applyRateLimitDefaults(&e.RateLimit)
}

func applyRateLimitDefaults(r *RateLimitConfig) {
	if r.PerSecond == 0 {
		r.PerSecond = 2.0
	}
	if r.Burst == 0 {
		r.Burst = 2
	}
	if r.DailyLimit == 0 {
		r.DailyLimit = 5000
	}
}

func applyListingDefaults(l *ListingConfig) {
	std := listing.StandardDefaults()
	if l.CategoryID == "" {
		l.CategoryID = std.CategoryID
	}
	if l.ConditionID == 0 {
		l.ConditionID = std.ConditionID
	}
	if l.ListingType == "" {
		l.ListingType = std.ListingType
	}
	if l.Duration == "" {
		l.Duration = std.Duration
	}
	if l.Location == "" {
		l.Location = std.Location
	}
	if l.Country == "" {
		l.Country = std.Country
	}
	if l.Currency == "" {
		l.Currency = std.Currency
	}
	if l.DispatchTimeMax == 0 {
		l.DispatchTimeMax = std.DispatchTimeMax
	}
	if l.ShippingService == "" {
		l.ShippingService = std.ShippingService
	}
	if l.ShippingCost == 0 {
		l.ShippingCost = std.ShippingCost
	}
	if l.ReturnPolicy == "" {
		l.ReturnPolicy = std.ReturnPolicy
	}
	if l.UnknownConditionPolicy == "" {
		l.UnknownConditionPolicy = string(listing.PolicyPassThrough)
	}
}

func applyRowsDefaults(r *RowsConfig) {
	if r.Backend == "" {
		r.Backend = RowsBackendXLSX
	}
	if r.XLSX.Sheet == "" {
		r.XLSX.Sheet = "Sheet1"
	}
	if r.Database.Port == 0 {
		r.Database.Port = 5432
	}
	if r.Database.SSLMode == "" {
		r.Database.SSLMode = "disable"
	}
	if r.Database.PoolSize == 0 {
		r.Database.PoolSize = 4
	}
}

func applyMediaDefaults(m *MediaConfig) {
	if m.Backend == "" {
		m.Backend = MediaBackendEPS
	}
	if m.ImageRoot == "" {
		m.ImageRoot = "images"
	}
}

func applyMetricsDefaults(m *MetricsConfig) {
	if m.Job == "" {
		m.Job = "card_lister"
	}
}

func applyTracingDefaults(t *TracingConfig) {
	if t.Endpoint == "" {
		t.Endpoint = "localhost:4317"
	}
	if t.ServiceName == "" {
		t.ServiceName = "card-lister"
	}
	if t.SampleRatio == 0 {
		t.SampleRatio = 1.0
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Ebay.AuthToken == "" {
		if cfg.Ebay.AppID == "" || cfg.Ebay.CertID == "" || cfg.Ebay.RefreshToken == "" {
			errs = append(errs, fmt.Errorf(
				"ebay.auth_token or ebay.app_id, ebay.cert_id and ebay.refresh_token are required",
			))
		}
	}

	if _, err := listing.ParsePolicy(cfg.Listing.UnknownConditionPolicy); err != nil {
		errs = append(errs, fmt.Errorf("listing.unknown_condition_policy: %w", err))
	}

	if cfg.Listing.SellerProfiles == nil && cfg.Listing.PayPalEmail == "" {
		errs = append(
			errs,
			fmt.Errorf("listing.paypal_email is required when listing.seller_profiles is not set"),
		)
	}

	switch cfg.Rows.Backend {
	case RowsBackendXLSX:
		if cfg.Rows.XLSX.Path == "" {
			errs = append(errs, fmt.Errorf("rows.xlsx.path is required when backend is xlsx"))
		}
	case RowsBackendPostgres:
		if cfg.Rows.Database.Host == "" {
			errs = append(errs, fmt.Errorf("rows.database.host is required when backend is postgres"))
		}
		if cfg.Rows.Database.Name == "" {
			errs = append(errs, fmt.Errorf("rows.database.name is required when backend is postgres"))
		}
		if cfg.Rows.Database.User == "" {
			errs = append(errs, fmt.Errorf("rows.database.user is required when backend is postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf(
			"rows.backend must be one of: xlsx, postgres (got %q)", cfg.Rows.Backend,
		))
	}

	switch cfg.Media.Backend {
	case MediaBackendEPS:
	case MediaBackendGCS:
		if cfg.Media.GCS.Bucket == "" {
			errs = append(errs, fmt.Errorf("media.gcs.bucket is required when backend is gcs"))
		}
	default:
		errs = append(errs, fmt.Errorf(
			"media.backend must be one of: eps, gcs (got %q)", cfg.Media.Backend,
		))
	}

	if cfg.Notifications.Discord.Enabled && cfg.Notifications.Discord.WebhookURL == "" {
		errs = append(errs, fmt.Errorf("notifications.discord.webhook_url is required when enabled"))
	}
	if e := cfg.Notifications.Email; e.Enabled && (e.APIKey == "" || e.From == "" || e.To == "") {
		errs = append(
			errs,
			fmt.Errorf("notifications.email.api_key, from and to are required when enabled"),
		)
	}

	if r := cfg.Tracing.SampleRatio; r < 0 || r > 1 {
		errs = append(errs, fmt.Errorf("tracing.sample_ratio must be between 0 and 1 (got %v)", r))
	}

	switch cfg.Logging.Format {
	case "text", "json", "pretty":
	default:
		errs = append(errs, fmt.Errorf(
			"logging.format must be one of: text, json, pretty (got %q)", cfg.Logging.Format,
		))
	}

	return errors.Join(errs...)
}
