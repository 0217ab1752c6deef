// Package handlers implements HTTP handlers for the card-lister API.
package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler provides health and readiness endpoints.
type HealthHandler struct {
	deps map[string]Pinger
}

// NewHealthHandler creates a new HealthHandler. Each named dependency is
// pinged by Readyz; with none the service is always ready.
func NewHealthHandler(deps map[string]Pinger) *HealthHandler {
	return &HealthHandler{deps: deps}
}

// Healthz returns 200 if the process is running.
func (*HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
}

// Readyz returns 200 if every dependency answers its ping, 503 otherwise.
// The failing dependency names are listed in the response.
func (h *HealthHandler) Readyz(c echo.Context) error {
	ctx := c.Request().Context()

	var down []string
	for name, p := range h.deps {
		if p == nil {
			continue
		}
		if err := p.Ping(ctx); err != nil {
			down = append(down, name)
		}
	}

	if len(down) > 0 {
		return c.JSON(http.StatusServiceUnavailable, ReadinessResponse{
			Status:      "unavailable",
			Unavailable: down,
		})
	}
	return c.JSON(http.StatusOK, ReadinessResponse{Status: "ready"})
}
