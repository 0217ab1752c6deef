package rules

// AlertRules returns a PrometheusRule CR containing alert rules for
// card-lister operational monitoring.
func AlertRules() PrometheusRule {
	return newPrometheusRule("card-lister-alerts", Group{
		Name: "card-lister-alerts",
		Rules: []Rule{
			alert("CardListerDown",
				`absent(up{job="card-lister"})`, "5m", SeverityCritical,
				"Card lister is down",
				"The card-lister job has been absent for more than 5 minutes."),
			alert("CardListerReadinessDown",
				`card_lister_readyz_up == 0`, "5m", SeverityCritical,
				"Card lister readiness check is failing",
				"The Postgres row source has been unreachable for more than 5 minutes."),
			alert("CardListerHighErrorRate",
				`card_lister:http_errors:rate5m / card_lister:http_requests:rate5m > 0.05`, "10m", SeverityWarning,
				"High HTTP error rate on the card lister API",
				"More than 5% of HTTP requests are returning 5xx errors."),

			// Batch runs.
			alert("CardListerBreakerTripped",
				`increase(card_lister_breaker_trips_total[15m]) > 0`, "0m", SeverityCritical,
				"Listing fee circuit breaker tripped",
				"A batch run stopped because eBay charged a listing fee. Free listings are likely exhausted."),
			alert("CardListerRowFailures",
				`sum(card_lister:rows_failed:increase1h) > 5`, "0m", SeverityWarning,
				"Rows are failing to list",
				"More than 5 rows failed at upload or submission in the last hour."),
			alert("CardListerRunErrors",
				`increase(card_lister_runs_total{result="error"}[1h]) > 0`, "0m", SeverityWarning,
				"Batch run aborted with an error",
				"A batch run ended with result=error, usually a row source or write-back failure."),
			alert("CardListerNoRecentRun",
				`time() - card_lister_last_run_timestamp > 172800`, "30m", SeverityWarning,
				"No batch run in two days",
				"The scheduler has not finished a batch run in the last 48 hours."),

			// eBay quota.
			alert("CardListerEbayQuotaHigh",
				`card_lister_ebay_daily_usage > 4000`, "5m", SeverityWarning,
				"eBay API daily usage is above 80% of the quota",
				"Daily Trading API usage has exceeded 4000 calls (default limit is 5000)."),
			alert("CardListerEbayLimitReached",
				`increase(card_lister_ebay_daily_limit_hits_total[5m]) > 0`, "0m", SeverityCritical,
				"eBay API daily limit has been reached",
				"The Trading API daily quota has been exhausted. Rows fail at upload until the window resets."),

			alert("CardListerNotificationFailures",
				`increase(card_lister_notification_failures_total[15m]) > 0`, "1m", SeverityWarning,
				"Notification delivery failures detected",
				"One or more run summary notifications (Discord or email) have failed to send."),
		},
	})
}
