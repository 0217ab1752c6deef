package lister

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/goosebones/pokemon/internal/metrics"
	"github.com/goosebones/pokemon/internal/rows"
	domain "github.com/goosebones/pokemon/pkg/types"
)

// SourceOpener opens the row source for one run. The scheduler closes it when
// the run ends.
type SourceOpener func(ctx context.Context) (rows.Source, error)

// RunHistory looks up the most recent recorded run.
type RunHistory interface {
	LatestRun(ctx context.Context) (*domain.RunSummary, error)
}

// Scheduler runs batches on a cron interval and on demand, never more than
// one at a time.
type Scheduler struct {
	cron    *cron.Cron
	runner  *Runner
	open    SourceOpener
	history RunHistory
	log     *slog.Logger

	runMu sync.Mutex // held for the duration of a run

	mu      sync.RWMutex
	last    *domain.RunSummary
	lastErr error
	halted  bool // set by a breaker trip, cleared by a manual run
}

// SchedulerOption configures the Scheduler.
type SchedulerOption func(*Scheduler)

// WithRunHistory falls back to recorded runs when no run happened since
// startup.
func WithRunHistory(h RunHistory) SchedulerOption {
	return func(s *Scheduler) {
		s.history = h
	}
}

// NewScheduler creates a Scheduler. An interval of 0 registers no cron entry;
// runs then only happen through Trigger.
func NewScheduler(
	runner *Runner,
	open SourceOpener,
	interval time.Duration,
	log *slog.Logger,
	opts ...SchedulerOption,
) (*Scheduler, error) {
	s := &Scheduler{
		cron:   cron.New(),
		runner: runner,
		open:   open,
		log:    log,
	}
	for _, opt := range opts {
		opt(s)
	}

	if interval > 0 {
		if _, err := s.cron.AddFunc("@every "+interval.String(), s.runScheduled); err != nil {
			return nil, fmt.Errorf("scheduling runs every %s: %w", interval, err)
		}
	}

	return s, nil
}

// Start begins running scheduled tasks.
func (s *Scheduler) Start() {
	s.log.Info("scheduler started", "entries", len(s.cron.Entries()))
	s.cron.Start()
	s.syncNextRunTimestamp()
}

// Stop stops the scheduler. The returned context is done once a running
// scheduled job has finished.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scheduler stopping")
	return s.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

// Running reports whether a run is in progress.
func (s *Scheduler) Running() bool {
	if s.runMu.TryLock() {
		s.runMu.Unlock()
		return false
	}
	return true
}

// Halted reports whether scheduled runs are suspended because the last run
// tripped the fee breaker.
func (s *Scheduler) Halted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.halted
}

// RunNow runs a batch synchronously. It returns ErrRunInProgress when another
// run holds the lock. A manual run resumes scheduled runs after a breaker
// trip.
func (s *Scheduler) RunNow(ctx context.Context) (*domain.RunSummary, error) {
	if !s.runMu.TryLock() {
		return nil, ErrRunInProgress
	}
	defer s.runMu.Unlock()
	s.resume()
	return s.run(ctx)
}

// Trigger starts a batch in the background and returns immediately. It
// returns ErrRunInProgress when another run holds the lock. Like RunNow it
// resumes scheduled runs after a breaker trip.
func (s *Scheduler) Trigger() error {
	if !s.runMu.TryLock() {
		return ErrRunInProgress
	}
	s.resume()
	go func() {
		defer s.runMu.Unlock()
		if _, err := s.run(context.Background()); err != nil {
			s.log.Error("triggered run failed", "error", err)
		}
	}()
	return nil
}

// Last returns the most recent run summary and its error. Before the first
// run since startup it consults the run history, if any.
func (s *Scheduler) Last(ctx context.Context) (*domain.RunSummary, error) {
	s.mu.RLock()
	last, lastErr := s.last, s.lastErr
	s.mu.RUnlock()

	if last != nil || s.history == nil {
		return last, lastErr
	}
	return s.history.LatestRun(ctx)
}

func (s *Scheduler) run(ctx context.Context) (*domain.RunSummary, error) {
	sum, err := s.runWithSource(ctx)

	s.mu.Lock()
	if sum != nil {
		s.last = sum
		if sum.BreakerTripped {
			s.halted = true
		}
	}
	s.lastErr = err
	s.mu.Unlock()

	s.syncNextRunTimestamp()
	return sum, err
}

func (s *Scheduler) runWithSource(ctx context.Context) (*domain.RunSummary, error) {
	src, err := s.open(ctx)
	if err != nil {
		return nil, fmt.Errorf("opening row source: %w", err)
	}
	defer func() {
		if cerr := src.Close(); cerr != nil {
			s.log.Error("closing row source", "error", cerr)
		}
	}()

	return s.runner.Run(ctx, src)
}

func (s *Scheduler) resume() {
	s.mu.Lock()
	if s.halted {
		s.log.Info("resuming scheduled runs after fee breaker trip")
	}
	s.halted = false
	s.mu.Unlock()
}

func (s *Scheduler) runScheduled() {
	if !s.runMu.TryLock() {
		s.log.Warn("scheduled run skipped, another run is in progress")
		return
	}
	defer s.runMu.Unlock()

	if s.Halted() {
		s.log.Warn("scheduled run skipped, fee breaker tripped; start a run manually to resume")
		return
	}

	s.log.Info("scheduled run starting")
	if _, err := s.run(context.Background()); err != nil {
		s.log.Error("scheduled run failed", "error", err)
	}
}

func (s *Scheduler) syncNextRunTimestamp() {
	var next time.Time
	for _, e := range s.cron.Entries() {
		if !e.Next.IsZero() && (next.IsZero() || e.Next.Before(next)) {
			next = e.Next
		}
	}
	if !next.IsZero() {
		metrics.SchedulerNextRunTimestamp.Set(float64(next.Unix()))
	}
}
