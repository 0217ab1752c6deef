package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		method        string
		target        string
		status        int
		providedReqID string
		wantLogFields []string
	}{
		{
			name:   "trigger run with generated id",
			method: http.MethodPost,
			target: "/api/v1/runs",
			status: http.StatusAccepted,
			wantLogFields: []string{
				"level=INFO",
				"method=POST",
				"path=/api/v1/runs",
				"status=202",
				"duration_ms=",
				"request_id=",
			},
		},
		{
			name:   "item not found is a warning",
			method: http.MethodGet,
			target: "/api/v1/items/1",
			status: http.StatusNotFound,
			wantLogFields: []string{
				"level=WARN",
				"status=404",
			},
		},
		{
			name:   "upstream failure is an error",
			method: http.MethodGet,
			target: "/api/v1/items/2",
			status: http.StatusBadGateway,
			wantLogFields: []string{
				"level=ERROR",
				"status=502",
			},
		},
		{
			name:          "provided request id is kept",
			method:        http.MethodGet,
			target:        "/api/v1/quota",
			status:        http.StatusOK,
			providedReqID: "req-quota-1",
			wantLogFields: []string{
				"request_id=req-quota-1",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			log := slog.New(slog.NewTextHandler(&buf, nil))

			e := echo.New()
			req := httptest.NewRequest(tt.method, tt.target, http.NoBody)
			if tt.providedReqID != "" {
				req.Header.Set(requestIDHeader, tt.providedReqID)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			err := RequestLog(log)(func(c echo.Context) error {
				return c.NoContent(tt.status)
			})(c)
			require.NoError(t, err)

			for _, field := range tt.wantLogFields {
				assert.Contains(t, buf.String(), field)
			}

			respID := rec.Header().Get(requestIDHeader)
			require.NotEmpty(t, respID)
			assert.Equal(t, respID, c.Get(requestIDKey))
			if tt.providedReqID != "" {
				assert.Equal(t, tt.providedReqID, respID)
			}
		})
	}
}

// TestRequestLog_ProbeSuppression drives a sequence of probe responses through
// one middleware instance and checks which of them produce a log line.
func TestRequestLog_ProbeSuppression(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		statuses []int
		logged   []bool
	}{
		{
			name:     "healthz logs first success only",
			path:     "/healthz",
			statuses: []int{200, 200, 200},
			logged:   []bool{true, false, false},
		},
		{
			name:     "readyz failures always logged",
			path:     "/readyz",
			statuses: []int{503, 503},
			logged:   []bool{true, true},
		},
		{
			name:     "readyz success after failure logged again",
			path:     "/readyz",
			statuses: []int{200, 200, 503, 200, 200},
			logged:   []bool{true, false, true, true, false},
		},
		{
			name:     "api paths never suppressed",
			path:     "/api/v1/runs/status",
			statuses: []int{200, 200},
			logged:   []bool{true, true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			log := slog.New(slog.NewTextHandler(&buf, nil))
			e := echo.New()

			var next int
			handler := RequestLog(log)(func(c echo.Context) error {
				status := tt.statuses[next]
				next++
				return c.NoContent(status)
			})

			for i := range tt.statuses {
				before := strings.Count(buf.String(), "\n")

				req := httptest.NewRequest(http.MethodGet, tt.path, http.NoBody)
				require.NoError(t, handler(e.NewContext(req, httptest.NewRecorder())))

				got := strings.Count(buf.String(), "\n") > before
				assert.Equal(t, tt.logged[i], got, "request %d (status %d)", i, tt.statuses[i])
			}
		})
	}
}
