package middleware

import (
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// RequestLog logs one line per request with method, route, status, duration
// and request id. The id is taken from X-Request-ID or generated, echoed on
// the response and stored in the echo context.
//
// Probe paths log their first success and every failure; repeated successes
// are dropped until a failure is seen again.
func RequestLog(log *slog.Logger) echo.MiddlewareFunc {
	quiet := map[string]*atomic.Bool{
		"/healthz": {},
		"/readyz":  {},
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			reqID := req.Header.Get(requestIDHeader)
			if reqID == "" {
				reqID = uuid.NewString()
			}
			c.Set(requestIDKey, reqID)
			c.Response().Header().Set(requestIDHeader, reqID)

			err := next(c)

			path := req.URL.Path
			status := c.Response().Status

			if seen, ok := quiet[path]; ok {
				if status < http.StatusBadRequest {
					if seen.Swap(true) {
						return err
					}
				} else {
					seen.Store(false)
				}
			}

			// The request context carries the otelhttp span, so the logger
			// adds trace_id when tracing is on.
			log.Log(req.Context(), levelFor(status), "request",
				"method", req.Method,
				"path", path,
				"route", c.Path(),
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", reqID,
			)

			return err
		}
	}
}

func levelFor(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
