package main

import "errors"

// KnownMetrics is the set of metric names exported by card-lister plus the
// recording rule names referenced in dashboards and alerts. Histograms are
// listed by base name; validation accepts their _bucket, _sum and _count
// series.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"card_lister_http_request_duration_seconds": true,
	"card_lister_http_requests_total":           true,

	// Health metrics.
	"card_lister_healthz_up": true,
	"card_lister_readyz_up":  true,

	// Batch run metrics.
	"card_lister_runs_total":                   true,
	"card_lister_run_duration_seconds":         true,
	"card_lister_rows_listed_total":            true,
	"card_lister_rows_skipped_total":           true,
	"card_lister_rows_failed_total":            true,
	"card_lister_listing_fees_total":           true,
	"card_lister_breaker_trips_total":          true,
	"card_lister_last_run_timestamp":           true,
	"card_lister_scheduler_next_run_timestamp": true,

	// Picture metrics.
	"card_lister_picture_uploads_total":           true,
	"card_lister_picture_upload_duration_seconds": true,

	// eBay API metrics.
	"card_lister_ebay_api_calls_total":        true,
	"card_lister_ebay_api_errors_total":       true,
	"card_lister_ebay_daily_usage":            true,
	"card_lister_ebay_daily_limit_hits_total": true,

	// Notification metrics.
	"card_lister_notifications_sent_total":      true,
	"card_lister_notification_failures_total":   true,
	"card_lister_notification_duration_seconds": true,

	// Recording rules.
	"card_lister:http_requests:rate5m":   true,
	"card_lister:http_errors:rate5m":     true,
	"card_lister:ebay_api_calls:rate5m":  true,
	"card_lister:ebay_api_errors:rate5m": true,
	"card_lister:rows_failed:increase1h": true,
	"card_lister:picture_uploads:rate5m": true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
