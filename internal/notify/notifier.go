// Package notify delivers batch run notifications: the fee breaker tripping
// and the end-of-run summary.
package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goosebones/pokemon/internal/metrics"
	domain "github.com/goosebones/pokemon/pkg/types"
)

// BreakerTrip describes the listing whose fee halted a run.
type BreakerTrip struct {
	RunID      string
	Row        int
	ExternalID string
	ItemID     string
	ListingFee float64
	Currency   string
	Remaining  int // rows left unattempted
}

// NewBreakerTrip builds a BreakerTrip from the outcome that tripped it.
func NewBreakerTrip(runID string, o *domain.Outcome, currency string, remaining int) *BreakerTrip {
	return &BreakerTrip{
		RunID:      runID,
		Row:        o.Row,
		ExternalID: o.ExternalID,
		ItemID:     o.ItemID,
		ListingFee: o.ListingFee,
		Currency:   currency,
		Remaining:  remaining,
	}
}

// Notifier sends run notifications.
type Notifier interface {
	SendBreakerTrip(ctx context.Context, trip *BreakerTrip) error
	SendRunSummary(ctx context.Context, sum *domain.RunSummary) error
}

// Multi fans a notification out to every notifier and joins their errors.
type Multi []Notifier

// SendBreakerTrip implements Notifier.
func (m Multi) SendBreakerTrip(ctx context.Context, trip *BreakerTrip) error {
	var errs []error
	for _, n := range m {
		if err := n.SendBreakerTrip(ctx, trip); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// SendRunSummary implements Notifier.
func (m Multi) SendRunSummary(ctx context.Context, sum *domain.RunSummary) error {
	var errs []error
	for _, n := range m {
		if err := n.SendRunSummary(ctx, sum); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// observe records the delivery metrics for one send.
func observe(start time.Time, err error) {
	metrics.NotificationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.NotificationFailuresTotal.Inc()
		return
	}
	metrics.NotificationsSentTotal.Inc()
}

func tripSubject(trip *BreakerTrip) string {
	return fmt.Sprintf("Listing fee charged: %.2f %s on item %s", trip.ListingFee, trip.Currency, trip.ItemID)
}

func summarySubject(sum *domain.RunSummary) string {
	switch {
	case sum.BreakerTripped:
		return fmt.Sprintf("Run halted by listing fee: %d listed, %d failed", sum.Listed, sum.Failed)
	case sum.Canceled:
		return fmt.Sprintf("Run canceled: %d listed, %d failed", sum.Listed, sum.Failed)
	default:
		return fmt.Sprintf("Run finished: %d listed, %d skipped, %d failed", sum.Listed, sum.Skipped, sum.Failed)
	}
}

// failedOutcomes returns the failed outcomes of sum.
func failedOutcomes(sum *domain.RunSummary) []domain.Outcome {
	var out []domain.Outcome
	for _, o := range sum.Outcomes {
		if o.Kind == domain.OutcomeFailed {
			out = append(out, o)
		}
	}
	return out
}
