package ebay

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// ErrDailyLimitReached is returned when the daily API call limit has been exhausted.
var ErrDailyLimitReached = errors.New("daily API limit reached")

const defaultWindow = 24 * time.Hour

// RateLimiter spaces Trading API calls and tracks them against the account's
// daily call quota. The quota uses a rolling window that starts at the first
// call after the previous window expired.
type RateLimiter struct {
	limiter  *rate.Limiter
	daily    atomic.Int64
	maxDaily int64
	window   time.Duration
	resetAt  time.Time
	mu       sync.Mutex
	nowFunc  func() time.Time
}

// Usage is a point-in-time view of the daily quota.
type Usage struct {
	Used      int64
	Limit     int64
	Remaining int64
	ResetAt   time.Time
}

// RateLimiterOption configures the RateLimiter.
type RateLimiterOption func(*RateLimiter)

// WithRateLimiterNowFunc overrides the time function for testing.
func WithRateLimiterNowFunc(f func() time.Time) RateLimiterOption {
	return func(r *RateLimiter) {
		r.nowFunc = f
	}
}

// WithQuotaWindow overrides the 24-hour quota window.
func WithQuotaWindow(d time.Duration) RateLimiterOption {
	return func(r *RateLimiter) {
		if d > 0 {
			r.window = d
		}
	}
}

// NewRateLimiter creates a rate limiter with the given per-second rate,
// burst size, and daily limit.
func NewRateLimiter(
	perSecond float64,
	burst int,
	maxDaily int64,
	opts ...RateLimiterOption,
) *RateLimiter {
	r := &RateLimiter{
		limiter:  rate.NewLimiter(rate.Limit(perSecond), burst),
		maxDaily: maxDaily,
		window:   defaultWindow,
		nowFunc:  time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.resetAt = r.nowFunc().Add(r.window)
	return r
}

// Wait reserves one call from the daily quota, then blocks until the
// per-second limiter admits it or ctx is done. A full quota returns
// ErrDailyLimitReached without blocking. A canceled wait gives the
// reservation back.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.rollWindow()

	if !r.reserve() {
		return fmt.Errorf("%w (%d/%d)", ErrDailyLimitReached, r.daily.Load(), r.maxDaily)
	}

	if err := r.limiter.Wait(ctx); err != nil {
		r.daily.Add(-1)
		return fmt.Errorf("rate limiter wait: %w", err)
	}
	return nil
}

func (r *RateLimiter) reserve() bool {
	for {
		used := r.daily.Load()
		if used >= r.maxDaily {
			return false
		}
		if r.daily.CompareAndSwap(used, used+1) {
			return true
		}
	}
}

// DailyCount returns the current daily call count.
func (r *RateLimiter) DailyCount() int64 {
	return r.daily.Load()
}

// MaxDaily returns the configured daily call limit.
func (r *RateLimiter) MaxDaily() int64 {
	return r.maxDaily
}

// Remaining returns the number of calls left in the current window.
func (r *RateLimiter) Remaining() int64 {
	return max(r.maxDaily-r.daily.Load(), 0)
}

// ResetAt returns when the current window expires and the counter resets.
func (r *RateLimiter) ResetAt() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resetAt
}

// Usage returns a snapshot of the quota after applying any pending reset.
func (r *RateLimiter) Usage() Usage {
	r.rollWindow()
	return Usage{
		Used:      r.DailyCount(),
		Limit:     r.maxDaily,
		Remaining: r.Remaining(),
		ResetAt:   r.ResetAt(),
	}
}

func (r *RateLimiter) rollWindow() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.nowFunc()
	if now.After(r.resetAt) {
		r.daily.Store(0)
		r.resetAt = now.Add(r.window)
	}
}
