package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// APICallsRate shows Trading API calls and errors per second by call name.
func APICallsRate() *timeseries.PanelBuilder {
	return series("API Calls Rate", "eBay Trading API calls per second by call", ThirdWidth).
		WithTarget(PromQuery(`card_lister:ebay_api_calls:rate5m`, "{{call}}", "A")).
		WithTarget(PromQuery(`card_lister:ebay_api_errors:rate5m`, "{{call}} errors", "B")).
		Unit("reqps").
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip())
}

// DailyUsage plots calls in the current quota window against the limit.
func DailyUsage() *timeseries.PanelBuilder {
	limit := float64(EbayDailyLimit)
	return series(
		"Daily Usage vs Limit",
		fmt.Sprintf("Trading API calls in the current quota window (default limit: %d)", EbayDailyLimit),
		ThirdWidth,
	).
		WithTarget(PromQuery(OnJob("card_lister_ebay_daily_usage"), "usage", "A")).
		Thresholds(ThresholdsGreenYellowRed(limit*0.8, limit)).
		ColorScheme(ColorSchemeThresholds())
}

// LimitHits counts daily limit hits over the last 24 hours.
func LimitHits() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Limit Hits (24h)").
		Description("Times the daily call limit was reached in the last 24 hours").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(
			fmt.Sprintf(`increase(%s[24h])`, OnJob("card_lister_ebay_daily_limit_hits_total")),
			"", "A",
		)).
		Thresholds(ThresholdsGreenYellowRed(1, 3)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}
