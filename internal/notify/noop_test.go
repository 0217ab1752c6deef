package notify

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/goosebones/pokemon/pkg/types"
)

func TestNoOpNotifier_SendBreakerTrip(t *testing.T) {
	t.Parallel()

	n := NewNoOpNotifier(slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, n.SendBreakerTrip(context.Background(), testTrip()))
}

func TestNoOpNotifier_SendRunSummary(t *testing.T) {
	t.Parallel()

	n := NewNoOpNotifier(slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, n.SendRunSummary(context.Background(), testSummary(1)))
}

type failingNotifier struct{ err error }

func (f failingNotifier) SendBreakerTrip(context.Context, *BreakerTrip) error { return f.err }

func (f failingNotifier) SendRunSummary(context.Context, *domain.RunSummary) error { return f.err }

func TestMulti_JoinsErrors(t *testing.T) {
	t.Parallel()

	errA := errors.New("discord down")
	errB := errors.New("sendgrid down")
	noop := NewNoOpNotifier(slog.New(slog.NewTextHandler(io.Discard, nil)))

	m := Multi{failingNotifier{err: errA}, noop, failingNotifier{err: errB}}

	err := m.SendBreakerTrip(context.Background(), testTrip())
	require.Error(t, err)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)

	assert.NoError(t, Multi{noop}.SendRunSummary(context.Background(), testSummary(0)))
	assert.NoError(t, Multi{}.SendRunSummary(context.Background(), testSummary(0)))
}

func TestNewBreakerTrip(t *testing.T) {
	t.Parallel()

	o := domain.Listed(&domain.CardRow{Index: 5, ExternalID: "C5"}, "2002", 0.2)
	trip := NewBreakerTrip("run-9", &o, "USD", 7)

	assert.Equal(t, &BreakerTrip{
		RunID: "run-9", Row: 5, ExternalID: "C5", ItemID: "2002",
		ListingFee: 0.2, Currency: "USD", Remaining: 7,
	}, trip)
}

// compile-time interface checks.
var (
	_ Notifier = (*NoOpNotifier)(nil)
	_ Notifier = (*DiscordNotifier)(nil)
	_ Notifier = (*EmailNotifier)(nil)
	_ Notifier = Multi(nil)
)
