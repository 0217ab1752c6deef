package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

func NotificationsRate() *timeseries.PanelBuilder {
	return series("Notifications Sent", "Run summary notifications delivered per hour", TSWidth).
		WithTarget(PromQuery(`sum(increase(card_lister_notifications_sent_total[1h]))`, "sent", "A")).
		DrawStyle(common.GraphDrawStyleBars)
}

func NotificationFailures() *timeseries.PanelBuilder {
	return series("Notification Failures", "Failed Discord or email deliveries per hour", TSWidth).
		WithTarget(PromQuery(`sum(increase(card_lister_notification_failures_total[1h]))`, "failures", "A")).
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		ColorScheme(ColorSchemeThresholds()).
		DrawStyle(common.GraphDrawStyleBars)
}
