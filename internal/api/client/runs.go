package client

import (
	"context"
	"net/http"
	"time"

	domain "github.com/goosebones/pokemon/pkg/types"
)

// LatestRun is the body of GET /api/v1/runs/latest.
type LatestRun struct {
	Run   *domain.RunSummary `json:"run"`
	Error string             `json:"error,omitempty"`
}

// Quota is the body of GET /api/v1/quota.
type Quota struct {
	DailyLimit int64     `json:"daily_limit"`
	DailyUsed  int64     `json:"daily_used"`
	Remaining  int64     `json:"remaining"`
	ResetAt    time.Time `json:"reset_at"`
}

// TriggerRun starts a batch run on the server. It reports started=false
// without error when a run is already in progress.
func (c *Client) TriggerRun(ctx context.Context) (started bool, err error) {
	err = c.post(ctx, "/api/v1/runs", nil)
	switch {
	case err == nil:
		return true, nil
	case IsStatus(err, http.StatusConflict):
		return false, nil
	default:
		return false, err
	}
}

// RunStatus is the server's batch run state.
type RunStatus struct {
	Running bool `json:"running"`
	Halted  bool `json:"halted"`
}

// RunStatus reports whether the server is running a batch and whether its
// scheduled runs are halted by the fee breaker.
func (c *Client) RunStatus(ctx context.Context) (*RunStatus, error) {
	var st RunStatus
	if err := c.get(ctx, "/api/v1/runs/status", &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// LatestRun returns the most recent run summary, or nil when the server has
// no runs recorded.
func (c *Client) LatestRun(ctx context.Context) (*LatestRun, error) {
	var out LatestRun
	if err := c.get(ctx, "/api/v1/runs/latest", &out); err != nil {
		if IsStatus(err, http.StatusNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

// GetQuota returns the server's Trading API quota status.
func (c *Client) GetQuota(ctx context.Context) (*Quota, error) {
	var q Quota
	if err := c.get(ctx, "/api/v1/quota", &q); err != nil {
		return nil, err
	}
	return &q, nil
}

// GetItem fetches a listing through the server.
func (c *Client) GetItem(ctx context.Context, itemID string) (*domain.ListedItem, error) {
	var item domain.ListedItem
	if err := c.get(ctx, "/api/v1/items/"+itemID, &item); err != nil {
		return nil, err
	}
	return &item, nil
}
