// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/goosebones/pokemon/tools/dashgen/panels"
)

// BuildOverview constructs the Card Lister Overview dashboard with all metric rows.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("Card Lister Overview").
		Uid("card-lister-overview").
		Tags([]string{"card-lister", "ebay"}).
		Refresh("1m").
		Time("now-7d", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	// Row 1: Overview.
	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.HealthzStat()).
		WithPanel(panels.ReadyzStat()).
		WithPanel(panels.QuotaGauge()).
		WithPanel(panels.LastRunAgeStat()))

	// Row 2: Batch runs.
	b.WithRow(dashboard.NewRowBuilder("Batch Runs").
		WithPanel(panels.RunsByResult()).
		WithPanel(panels.RowOutcomes()).
		WithPanel(panels.ListingFees()).
		WithPanel(panels.RunDuration()).
		WithPanel(panels.BreakerTrips()).
		WithPanel(panels.NextRunStat()))

	// Row 3: Pictures.
	b.WithRow(dashboard.NewRowBuilder("Pictures").
		WithPanel(panels.PictureUploadRate()).
		WithPanel(panels.PictureUploadLatency()))

	// Row 4: eBay API.
	b.WithRow(dashboard.NewRowBuilder("eBay API").
		WithPanel(panels.APICallsRate()).
		WithPanel(panels.DailyUsage()).
		WithPanel(panels.LimitHits()))

	// Row 5: HTTP.
	b.WithRow(dashboard.NewRowBuilder("HTTP").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()).
		WithPanel(panels.UptimeStat()))

	// Row 6: Notifications.
	b.WithRow(dashboard.NewRowBuilder("Notifications").
		WithPanel(panels.NotificationsRate()).
		WithPanel(panels.NotificationFailures()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
