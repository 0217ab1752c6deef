// Package lister runs the batch listing pipeline: for each unprocessed row it
// uploads pictures, submits the listing and marks the row, halting the batch
// as soon as a listing is charged a fee.
package lister

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/goosebones/pokemon/internal/ebay"
	"github.com/goosebones/pokemon/internal/media"
	"github.com/goosebones/pokemon/internal/metrics"
	"github.com/goosebones/pokemon/internal/notify"
	"github.com/goosebones/pokemon/internal/rows"
	"github.com/goosebones/pokemon/internal/tracing"
	"github.com/goosebones/pokemon/pkg/listing"
	domain "github.com/goosebones/pokemon/pkg/types"
)

// Run results used as the runs_total label.
const (
	resultCompleted = "completed"
	resultBreaker   = "breaker"
	resultCanceled  = "canceled"
	resultError     = "error"
)

// RunRecorder persists finished run summaries.
type RunRecorder interface {
	RecordRun(ctx context.Context, sum *domain.RunSummary) error
}

// Runner processes a row source one row at a time.
type Runner struct {
	uploader media.Uploader
	client   ebay.ListingClient
	notifier notify.Notifier
	recorder RunRecorder
	titles   listing.TitleFormatter
	builder  *listing.Builder
	log      *slog.Logger
	now      func() time.Time
	newID    func() string
}

// RunnerOption configures the Runner.
type RunnerOption func(*Runner)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.log = l
	}
}

// WithTitleFormatter sets the title formatter and with it the unknown
// condition policy.
func WithTitleFormatter(f listing.TitleFormatter) RunnerOption {
	return func(r *Runner) {
		r.titles = f
	}
}

// WithBuilder sets the listing payload builder.
func WithBuilder(b *listing.Builder) RunnerOption {
	return func(r *Runner) {
		r.builder = b
	}
}

// WithRunRecorder stores every finished run summary.
func WithRunRecorder(rec RunRecorder) RunnerOption {
	return func(r *Runner) {
		r.recorder = rec
	}
}

// WithNowFunc overrides the clock.
func WithNowFunc(fn func() time.Time) RunnerOption {
	return func(r *Runner) {
		r.now = fn
	}
}

// WithIDFunc overrides run id generation.
func WithIDFunc(fn func() string) RunnerOption {
	return func(r *Runner) {
		r.newID = fn
	}
}

// NewRunner creates a Runner with injected dependencies.
func NewRunner(
	u media.Uploader,
	c ebay.ListingClient,
	n notify.Notifier,
	opts ...RunnerOption,
) *Runner {
	r := &Runner{
		uploader: u,
		client:   c,
		notifier: n,
		titles:   listing.NewTitleFormatter(listing.PolicyPassThrough),
		builder:  listing.NewBuilder(listing.StandardDefaults()),
		log:      slog.Default(),
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run processes every row of src in order and returns the run summary.
//
// Rows already processed and rows whose title does not fit are skipped
// without remote calls. A failed upload or submission is recorded and the
// run moves on. The first listing charged a nonzero fee ends the run after
// that row. Cancellation of ctx is honored between rows only.
//
// A non-nil error means the row source itself failed; the summary still
// holds everything done up to that point. src is flushed on every return
// path but not closed.
func (r *Runner) Run(ctx context.Context, src rows.Source) (_ *domain.RunSummary, err error) {
	sum := &domain.RunSummary{ID: r.newID(), StartedAt: r.now()}
	log := r.log.With("run_id", sum.ID)
	result := resultCompleted

	ctx, span := tracing.Start(ctx, "lister.Run", attribute.String("run.id", sum.ID))

	defer func() {
		if ferr := src.Flush(context.WithoutCancel(ctx)); ferr != nil {
			err = errors.Join(err, fmt.Errorf("flushing rows: %w", ferr))
		}
		if err != nil {
			result = resultError
		}
		r.finish(context.WithoutCancel(ctx), log, sum, result, err)

		span.SetAttributes(
			attribute.String("run.result", result),
			attribute.Int("run.listed", sum.Listed),
			attribute.Int("run.skipped", sum.Skipped),
			attribute.Int("run.failed", sum.Failed),
			attribute.Float64("run.total_fees", sum.TotalFees),
		)
		tracing.End(span, err)
	}()

	cards, err := src.ReadAll(ctx)
	if err != nil {
		return sum, fmt.Errorf("reading rows: %w", err)
	}
	log.Info("run started", "rows", len(cards))

	for i := range cards {
		if ctx.Err() != nil {
			sum.Canceled = true
			result = resultCanceled
			log.Warn("run canceled", "next_row", cards[i].Index, "error", ctx.Err())
			break
		}

		row := &cards[i]
		o, fee, rowErr := r.processRow(context.WithoutCancel(ctx), log, src, row)
		sum.Record(o)
		if rowErr != nil {
			return sum, rowErr
		}

		if o.TripsBreaker() {
			result = resultBreaker
			metrics.BreakerTripsTotal.Inc()
			remaining := len(cards) - i - 1
			log.Warn("listing fee charged, stopping run",
				"row", row.Index,
				"external_id", row.ExternalID,
				"item_id", o.ItemID,
				"listing_fee", o.ListingFee,
				"rows_left", remaining,
			)
			trip := notify.NewBreakerTrip(sum.ID, &o, fee.Currency, remaining)
			if nerr := r.notifier.SendBreakerTrip(context.WithoutCancel(ctx), trip); nerr != nil {
				log.Error("sending breaker notification", "error", nerr)
			}
			break
		}
	}

	return sum, nil
}

// processRow runs one row to completion inside its own span. The returned
// error is set only when the row source fails to persist the processed flag.
func (r *Runner) processRow(
	ctx context.Context,
	log *slog.Logger,
	src rows.Source,
	row *domain.CardRow,
) (domain.Outcome, domain.Fee, error) {
	ctx, span := tracing.Start(ctx, "lister.processRow",
		attribute.Int("row.index", row.Index),
		attribute.String("row.external_id", row.ExternalID),
	)

	o, fee, err := r.listRow(ctx, log.With("row", row.Index, "external_id", row.ExternalID), src, row)

	span.SetAttributes(attribute.String("row.outcome", string(o.Kind)))
	if o.ItemID != "" {
		span.SetAttributes(
			attribute.String("ebay.item_id", o.ItemID),
			attribute.Float64("ebay.listing_fee", o.ListingFee),
		)
	}
	spanErr := err
	if spanErr == nil && o.Kind == domain.OutcomeFailed {
		spanErr = o.Err
	}
	tracing.End(span, spanErr)

	return o, fee, err
}

func (r *Runner) listRow(
	ctx context.Context,
	log *slog.Logger,
	src rows.Source,
	row *domain.CardRow,
) (domain.Outcome, domain.Fee, error) {
	if row.Processed {
		log.Debug("row already processed")
		metrics.RowsSkippedTotal.WithLabelValues(string(domain.SkipAlreadyProcessed)).Inc()
		return domain.Skipped(row, domain.SkipAlreadyProcessed), domain.Fee{}, nil
	}

	title := r.titles.FormatRow(row)
	if !listing.TitleFits(title) {
		n := listing.TitleLength(title)
		log.Warn("title too long, skipping row", "title", title, "length", n)
		metrics.RowsSkippedTotal.WithLabelValues(string(domain.SkipTitleTooLong)).Inc()
		o := domain.Skipped(row, domain.SkipTitleTooLong)
		o.Err = fmt.Errorf("%w: %d characters", ErrTitleTooLong, n)
		o.Error = o.Err.Error()
		return o, domain.Fee{}, nil
	}

	urls, err := r.uploader.Upload(ctx, row.ExternalID)
	if err != nil {
		return r.failed(log, row, domain.StageUpload, err), domain.Fee{}, nil
	}

	payload := r.builder.Build(row, title, listing.DescriptionForRow(title, row), urls)

	res, err := r.client.AddItem(ctx, payload)
	if err != nil {
		return r.failed(log, row, domain.StageSubmission, err), domain.Fee{}, nil
	}

	fee := res.Fees.ListingFeeEntry()
	o := domain.Listed(row, res.ItemID, fee.Amount)

	if err := src.MarkProcessed(ctx, row.Index); err != nil {
		log.Error("row listed but not marked processed", "item_id", res.ItemID, "error", err)
		return o, fee, fmt.Errorf("marking row %d processed (item %s): %w", row.Index, res.ItemID, err)
	}

	metrics.RowsListedTotal.Inc()
	metrics.ListingFeesTotal.Add(fee.Amount)
	log.Info("row listed", "item_id", res.ItemID, "listing_fee", fee.Amount, "pictures", len(urls))

	return o, fee, nil
}

func (r *Runner) failed(log *slog.Logger, row *domain.CardRow, stage domain.Stage, err error) domain.Outcome {
	log.Error("row failed", "stage", stage, "error", err)
	metrics.RowsFailedTotal.WithLabelValues(string(stage)).Inc()
	return domain.Failed(row, stage, &StageError{Stage: stage, Err: err})
}

func (r *Runner) finish(ctx context.Context, log *slog.Logger, sum *domain.RunSummary, result string, err error) {
	sum.FinishedAt = r.now()

	metrics.RunsTotal.WithLabelValues(result).Inc()
	metrics.RunDuration.Observe(sum.Duration().Seconds())
	metrics.LastRunTimestamp.Set(float64(sum.FinishedAt.Unix()))

	log.Info("run finished",
		"result", result,
		"listed", sum.Listed,
		"skipped", sum.Skipped,
		"failed", sum.Failed,
		"total_fees", sum.TotalFees,
		"duration", sum.Duration(),
		"error", err,
	)

	if r.recorder != nil {
		if rerr := r.recorder.RecordRun(ctx, sum); rerr != nil {
			log.Error("recording run", "error", rerr)
		}
	}
	if nerr := r.notifier.SendRunSummary(ctx, sum); nerr != nil {
		log.Error("sending run summary", "error", nerr)
	}
}
