package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/bargauge"
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// RunsByResult returns a bar gauge of batch runs over the last week grouped
// by how they ended.
func RunsByResult() *bargauge.PanelBuilder {
	return bargauge.NewPanelBuilder().
		Title("Runs by Result (7d)").
		Description("Batch runs by result: completed, breaker, canceled, error").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(
			`sum by (result) (increase(card_lister_runs_total[7d]))`,
			"{{result}}", "A",
		)).
		Orientation(common.VizOrientationHorizontal).
		Min(0).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic())
}

// RowOutcomes shows listed, skipped and failed rows per hour.
func RowOutcomes() *timeseries.PanelBuilder {
	return series("Row Outcomes", "Rows listed, skipped and failed per hour", ThirdWidth).
		WithTarget(PromQuery(`sum(increase(card_lister_rows_listed_total[1h]))`, "listed", "A")).
		WithTarget(PromQuery(`sum by (reason) (increase(card_lister_rows_skipped_total[1h]))`, "skipped {{reason}}", "B")).
		WithTarget(PromQuery(`sum by (stage) (card_lister:rows_failed:increase1h)`, "failed {{stage}}", "C")).
		Legend(TableLegend("sum", "max")).
		Tooltip(MultiTooltip()).
		DrawStyle(common.GraphDrawStyleBars)
}

// ListingFees shows fees charged by eBay per hour. Anything above zero
// means the breaker should have fired.
func ListingFees() *timeseries.PanelBuilder {
	return series("Listing Fees", "Listing fees charged by eBay per hour", ThirdWidth).
		WithTarget(PromQuery(`sum(increase(card_lister_listing_fees_total[1h]))`, "fees", "A")).
		Unit("currencyUSD").
		DrawStyle(common.GraphDrawStyleBars)
}

// RunDuration shows batch run duration percentiles.
func RunDuration() *timeseries.PanelBuilder {
	p := series("Run Duration", "Batch run duration percentiles", TSWidth)
	return withQuantiles(p, "card_lister_run_duration_seconds_bucket", "1h", 0.50, 0.95).
		Unit("s").
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip())
}

// BreakerTrips returns a stat panel with fee circuit breaker trips in the
// last 24 hours.
func BreakerTrips() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Breaker Trips (24h)").
		Description("Runs halted because a listing fee was charged").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(StatWidth).
		WithTarget(PromQuery(`increase(card_lister_breaker_trips_total[24h])`, "", "A")).
		Thresholds(ThresholdsGreenYellowRed(1, 2)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}

// NextRunStat returns a stat panel counting down to the next scheduled run.
func NextRunStat() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Next Run").
		Description("Time until the scheduler fires the next batch run").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(StatWidth).
		WithTarget(PromQuery(
			OnJob("card_lister_scheduler_next_run_timestamp")+" - time()",
			"", "A",
		)).
		Unit("s").
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemeThresholds()).
		GraphMode(common.BigValueGraphModeNone)
}
