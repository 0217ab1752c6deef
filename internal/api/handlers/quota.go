package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/goosebones/pokemon/internal/ebay"
)

// QuotaHandler reports Trading API quota usage. Every AddItem, GetItem and
// eBay-hosted picture upload counts against the quota.
type QuotaHandler struct {
	usage func() ebay.Usage
}

// NewQuotaHandler creates a QuotaHandler. A nil limiter reports the quota as
// disabled.
func NewQuotaHandler(rl *ebay.RateLimiter) *QuotaHandler {
	h := &QuotaHandler{}
	if rl != nil {
		h.usage = rl.Usage
	}
	return h
}

// QuotaBody describes the current quota window.
type QuotaBody struct {
	Enabled    bool      `json:"enabled"              doc:"False when no daily limit is configured"`
	DailyLimit int64     `json:"daily_limit"          example:"5000"                 doc:"Configured daily API call limit"`
	DailyUsed  int64     `json:"daily_used"           example:"142"                  doc:"API calls used in the current window"`
	Remaining  int64     `json:"remaining"            example:"4858"                 doc:"API calls remaining in the current window"`
	Exhausted  bool      `json:"exhausted"            doc:"True when rows will fail until the window resets"`
	ResetAt    time.Time `json:"reset_at,omitzero"    example:"2026-06-16T14:30:00Z" doc:"When the current window expires"`
}

type QuotaOutput struct {
	Body QuotaBody
}

func (h *QuotaHandler) GetQuota(_ context.Context, _ *struct{}) (*QuotaOutput, error) {
	out := &QuotaOutput{}
	if h.usage == nil {
		return out, nil
	}

	u := h.usage()
	out.Body = QuotaBody{
		Enabled:    true,
		DailyLimit: u.Limit,
		DailyUsed:  u.Used,
		Remaining:  u.Remaining,
		Exhausted:  u.Remaining <= 0,
		ResetAt:    u.ResetAt,
	}
	return out, nil
}

// RegisterQuotaRoutes registers GET /api/v1/quota.
func RegisterQuotaRoutes(api huma.API, h *QuotaHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-quota",
		Method:      http.MethodGet,
		Path:        "/api/v1/quota",
		Summary:     "Get eBay API quota status",
		Description: "Returns daily Trading API call usage, the remaining quota and when the window resets.",
		Tags:        []string{"ebay"},
	}, h.GetQuota)
}
