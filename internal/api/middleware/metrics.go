// Package middleware provides Echo middleware for the card-lister API.
package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/goosebones/pokemon/internal/metrics"
)

// unmatchedPath labels requests that hit no route, keeping label cardinality
// bounded when scanners probe random URLs.
const unmatchedPath = "unmatched"

// probeGauges maps probe paths to their up/down gauge. Probe and scrape paths
// are kept out of the request histogram and counter.
var probeGauges = map[string]prometheus.Gauge{
	"/healthz": metrics.HealthzUp,
	"/readyz":  metrics.ReadyzUp,
	"/metrics": nil,
}

// Metrics returns Echo middleware that records request duration and status
// by method, route template and status code.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			path := c.Path()
			if path == "" || path == "/*" {
				path = unmatchedPath
			}
			status := c.Response().Status

			if gauge, probe := probeGauges[path]; probe {
				if gauge != nil {
					gauge.Set(boolToFloat(status >= 200 && status < 300))
				}
				return err
			}

			code := strconv.Itoa(status)
			method := c.Request().Method
			metrics.HTTPRequestDuration.
				WithLabelValues(method, path, code).
				Observe(time.Since(start).Seconds())
			metrics.HTTPRequestsTotal.
				WithLabelValues(method, path, code).
				Inc()

			return err
		}
	}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
