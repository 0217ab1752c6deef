package lister

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/goosebones/pokemon/internal/rows"
	rowsMocks "github.com/goosebones/pokemon/internal/rows/mocks"
	domain "github.com/goosebones/pokemon/pkg/types"
)

func openMem(src rows.Source) SourceOpener {
	return func(context.Context) (rows.Source, error) { return src, nil }
}

func TestNewScheduler_RegistersCronEntry(t *testing.T) {
	t.Parallel()

	r, _ := newTestRunner(t)

	sched, err := NewScheduler(r, openMem(&memSource{}), 6*time.Hour, quietLogger())
	require.NoError(t, err)
	assert.Len(t, sched.Entries(), 1)

	manual, err := NewScheduler(r, openMem(&memSource{}), 0, quietLogger())
	require.NoError(t, err)
	assert.Empty(t, manual.Entries())
}

func TestScheduler_StartStop(t *testing.T) {
	t.Parallel()

	r, _ := newTestRunner(t)
	sched, err := NewScheduler(r, openMem(&memSource{}), time.Hour, quietLogger())
	require.NoError(t, err)

	sched.Start()
	require.Len(t, sched.Entries(), 1)
	assert.False(t, sched.Entries()[0].Next.IsZero())

	ctx := sched.Stop()
	<-ctx.Done()
}

func TestScheduler_RunNow_ClosesSource(t *testing.T) {
	t.Parallel()

	r, _ := newTestRunner(t)
	src := rowsMocks.NewMockSource(t)
	src.EXPECT().ReadAll(mock.Anything).Return(nil, nil).Once()
	src.EXPECT().Flush(mock.Anything).Return(nil).Once()
	src.EXPECT().Close().Return(nil).Once()

	sched, err := NewScheduler(r, openMem(src), 0, quietLogger())
	require.NoError(t, err)

	sum, err := sched.RunNow(context.Background())
	require.NoError(t, err)
	require.NotNil(t, sum)

	last, err := sched.Last(context.Background())
	require.NoError(t, err)
	assert.Same(t, sum, last)
	assert.False(t, sched.Running())
}

func TestScheduler_RunNow_OpenError(t *testing.T) {
	t.Parallel()

	r, _ := newTestRunner(t)
	sched, err := NewScheduler(r, func(context.Context) (rows.Source, error) {
		return nil, errors.New("workbook missing")
	}, 0, quietLogger())
	require.NoError(t, err)

	sum, err := sched.RunNow(context.Background())
	require.Error(t, err)
	assert.Nil(t, sum)
	assert.Contains(t, err.Error(), "opening row source: workbook missing")

	last, lastErr := sched.Last(context.Background())
	assert.Nil(t, last)
	assert.Error(t, lastErr)
}

// blockingSource holds ReadAll until release is closed.
type blockingSource struct {
	memSource
	started chan struct{}
	release chan struct{}
}

func (b *blockingSource) ReadAll(ctx context.Context) ([]domain.CardRow, error) {
	close(b.started)
	<-b.release
	return b.memSource.ReadAll(ctx)
}

func TestScheduler_OneRunAtATime(t *testing.T) {
	t.Parallel()

	r, _ := newTestRunner(t)
	src := &blockingSource{started: make(chan struct{}), release: make(chan struct{})}
	sched, err := NewScheduler(r, openMem(src), 0, quietLogger())
	require.NoError(t, err)

	require.NoError(t, sched.Trigger())
	<-src.started
	assert.True(t, sched.Running())

	assert.ErrorIs(t, sched.Trigger(), ErrRunInProgress)
	_, err = sched.RunNow(context.Background())
	assert.ErrorIs(t, err, ErrRunInProgress)

	close(src.release)
	require.Eventually(t, func() bool { return !sched.Running() }, 5*time.Second, 10*time.Millisecond)

	last, err := sched.Last(context.Background())
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, "run-1", last.ID)
}

type historyFunc func(context.Context) (*domain.RunSummary, error)

func (f historyFunc) LatestRun(ctx context.Context) (*domain.RunSummary, error) { return f(ctx) }

func TestScheduler_LastFallsBackToHistory(t *testing.T) {
	t.Parallel()

	r, _ := newTestRunner(t)
	stored := &domain.RunSummary{ID: "stored"}
	sched, err := NewScheduler(r, openMem(&memSource{}), 0, quietLogger(),
		WithRunHistory(historyFunc(func(context.Context) (*domain.RunSummary, error) {
			return stored, nil
		})),
	)
	require.NoError(t, err)

	last, err := sched.Last(context.Background())
	require.NoError(t, err)
	assert.Same(t, stored, last)

	_, err = sched.RunNow(context.Background())
	require.NoError(t, err)

	last, err = sched.Last(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "run-1", last.ID)
}

func TestScheduler_BreakerTripHaltsScheduledRuns(t *testing.T) {
	t.Parallel()

	r, d := newTestRunner(t)
	src := &memSource{rows: []domain.CardRow{
		card(2, "C2", "Pikachu"),
		card(3, "C3", "Raichu"),
		card(4, "C4", "Pichu"),
	}}
	d.uploader.EXPECT().Upload(mock.Anything, mock.Anything).Return([]string{"u"}, nil)
	d.client.EXPECT().AddItem(mock.Anything, mock.Anything).Return(submitted("1001", 0.35), nil)
	d.notifier.EXPECT().SendBreakerTrip(mock.Anything, mock.Anything).Return(nil)

	sched, err := NewScheduler(r, openMem(src), time.Hour, quietLogger())
	require.NoError(t, err)
	assert.False(t, sched.Halted())

	sched.runScheduled()
	require.True(t, sched.Halted())
	assert.Equal(t, []int{2}, src.marked)
	d.client.AssertNumberOfCalls(t, "AddItem", 1)

	// later ticks stay idle until someone starts a run by hand
	sched.runScheduled()
	sched.runScheduled()
	assert.True(t, sched.Halted())
	assert.Equal(t, []int{2}, src.marked)
	d.client.AssertNumberOfCalls(t, "AddItem", 1)

	last, err := sched.Last(context.Background())
	require.NoError(t, err)
	assert.True(t, last.BreakerTripped)

	// a manual run resumes, lists one more row and trips again
	sum, err := sched.RunNow(context.Background())
	require.NoError(t, err)
	assert.True(t, sum.BreakerTripped)
	assert.True(t, sched.Halted())
	assert.Equal(t, []int{2, 3}, src.marked)
	d.client.AssertNumberOfCalls(t, "AddItem", 2)
}

func TestScheduler_ManualRunClearsHalt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		start func(*Scheduler) error
	}{
		{
			name: "RunNow",
			start: func(s *Scheduler) error {
				_, err := s.RunNow(context.Background())
				return err
			},
		},
		{
			name:  "Trigger",
			start: func(s *Scheduler) error { return s.Trigger() },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r, _ := newTestRunner(t)
			src := &memSource{}
			sched, err := NewScheduler(r, openMem(src), time.Hour, quietLogger())
			require.NoError(t, err)

			sched.mu.Lock()
			sched.halted = true
			sched.mu.Unlock()

			require.NoError(t, tt.start(sched))
			require.Eventually(t, func() bool { return !sched.Running() }, 5*time.Second, 10*time.Millisecond)
			assert.False(t, sched.Halted())

			// with the halt cleared a scheduled tick runs again
			sched.runScheduled()
			assert.Equal(t, 2, src.flushed)
		})
	}
}
