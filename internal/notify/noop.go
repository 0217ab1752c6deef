package notify

import (
	"context"
	"log/slog"

	domain "github.com/goosebones/pokemon/pkg/types"
)

// NoOpNotifier implements Notifier by logging discarded notifications. It is
// used when no backend is configured.
type NoOpNotifier struct {
	log *slog.Logger
}

// NewNoOpNotifier creates a notifier that discards notifications with a log
// message.
func NewNoOpNotifier(log *slog.Logger) *NoOpNotifier {
	return &NoOpNotifier{log: log}
}

// SendBreakerTrip logs and discards a breaker trip.
func (n *NoOpNotifier) SendBreakerTrip(_ context.Context, trip *BreakerTrip) error {
	n.log.Debug("notification discarded (no backend configured)",
		"run_id", trip.RunID,
		"item_id", trip.ItemID,
		"listing_fee", trip.ListingFee,
	)
	return nil
}

// SendRunSummary logs and discards a run summary.
func (n *NoOpNotifier) SendRunSummary(_ context.Context, sum *domain.RunSummary) error {
	n.log.Debug("run summary discarded (no backend configured)",
		"run_id", sum.ID,
		"listed", sum.Listed,
		"failed", sum.Failed,
	)
	return nil
}
