package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return newPrometheusRule("card-lister-recording-rules", Group{
		Name: "card-lister-recording",
		Rules: []Rule{
			record("card_lister:http_requests:rate5m",
				`sum(rate(card_lister_http_requests_total[5m]))`),
			record("card_lister:http_errors:rate5m",
				`sum(rate(card_lister_http_requests_total{status=~"5.."}[5m]))`),
			record("card_lister:ebay_api_calls:rate5m",
				`sum by (call) (rate(card_lister_ebay_api_calls_total[5m]))`),
			record("card_lister:ebay_api_errors:rate5m",
				`sum by (call) (rate(card_lister_ebay_api_errors_total[5m]))`),
			record("card_lister:rows_failed:increase1h",
				`sum by (stage) (increase(card_lister_rows_failed_total[1h]))`),
			record("card_lister:picture_uploads:rate5m",
				`sum by (backend, result) (rate(card_lister_picture_uploads_total[5m]))`),
		},
	})
}
