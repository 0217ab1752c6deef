package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/gauge"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
)

// HealthzStat shows the liveness probe gauge.
func HealthzStat() *stat.PanelBuilder {
	return upStat("Healthz", "Health check status (1 = ok, 0 = failing)", `card_lister_healthz_up`)
}

// ReadyzStat shows the readiness probe gauge, which tracks the row source.
func ReadyzStat() *stat.PanelBuilder {
	return upStat("Readyz", "Readiness check status (1 = ready, 0 = not ready)", `card_lister_readyz_up`)
}

// QuotaGauge shows Trading API daily usage as a percentage of the limit.
func QuotaGauge() *gauge.PanelBuilder {
	return gauge.NewPanelBuilder().
		Title("eBay Quota %").
		Description("Daily Trading API usage as percentage of limit").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(fmt.Sprintf("card_lister_ebay_daily_usage / %d * 100", EbayDailyLimit), "", "A")).
		Unit("percent").
		Min(0).
		Max(100).
		Thresholds(ThresholdsGreenYellowRed(80, 95)).
		ColorScheme(ColorSchemeThresholds())
}

// LastRunAgeStat shows how long ago the last batch run finished. It turns
// yellow after a day and red after two.
func LastRunAgeStat() *stat.PanelBuilder {
	return ageStat("Last Run", "Time since the last batch run finished",
		"time() - "+OnJob("card_lister_last_run_timestamp"),
		ThresholdsGreenYellowRed(86400, 172800))
}

// UptimeStat shows process uptime.
func UptimeStat() *stat.PanelBuilder {
	return ageStat("Uptime", "Time since process start",
		"time() - "+OnJob("process_start_time_seconds"),
		ThresholdsGreenOnly())
}
