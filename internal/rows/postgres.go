package rows

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/goosebones/pokemon/pkg/listing"
	domain "github.com/goosebones/pokemon/pkg/types"
)

const defaultPoolSize = 4

// ErrRowNotFound is returned when marking a row that does not exist.
var ErrRowNotFound = errors.New("row not found")

// PostgresSource reads rows from the cards table. Every write commits on its
// own, so Flush has nothing to do.
type PostgresSource struct {
	pool *pgxpool.Pool
}

// NewPostgresSource connects to PostgreSQL. A poolSize of 0 uses the default.
func NewPostgresSource(ctx context.Context, connString string, poolSize int) (*PostgresSource, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	if poolSize <= 0 {
		poolSize = defaultPoolSize
	}
	cfg.MaxConns = int32(min(poolSize, 64)) //nolint:gosec // bounded above

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresSource{pool: pool}, nil
}

// Ping verifies the database connection is alive.
func (s *PostgresSource) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending schema migrations and returns the applied versions.
func (s *PostgresSource) Migrate(ctx context.Context) ([]string, error) {
	return RunMigrations(ctx, s.pool)
}

// ReadAll implements Source.
func (s *PostgresSource) ReadAll(ctx context.Context) ([]domain.CardRow, error) {
	rs, err := s.pool.Query(ctx, queryListCards)
	if err != nil {
		return nil, fmt.Errorf("querying cards: %w", err)
	}
	defer rs.Close()

	var out []domain.CardRow
	for rs.Next() {
		var (
			r    domain.CardRow
			code string
		)
		if err := rs.Scan(
			&r.Index, &r.Processed, &r.ExternalID, &r.Name, &r.CatalogNumber,
			&r.FoilVariant, &r.Rarity, &r.SetName, &code, &r.DefectNote,
			&r.DefectLocation, &r.StartPrice,
		); err != nil {
			return nil, fmt.Errorf("scanning card: %w", err)
		}
		r.Condition = listing.ParseCondition(code)
		out = append(out, r)
	}
	if err := rs.Err(); err != nil {
		return nil, fmt.Errorf("iterating cards: %w", err)
	}

	return out, nil
}

// MarkProcessed implements Source.
func (s *PostgresSource) MarkProcessed(ctx context.Context, index int) error {
	tag, err := s.pool.Exec(ctx, queryMarkProcessed, index)
	if err != nil {
		return fmt.Errorf("marking row %d processed: %w", index, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("marking row %d processed: %w", index, ErrRowNotFound)
	}
	return nil
}

// Flush implements Source.
func (s *PostgresSource) Flush(context.Context) error {
	return nil
}

// Close implements Source.
func (s *PostgresSource) Close() error {
	s.pool.Close()
	return nil
}

// Import upserts rows into the cards table in one transaction. A row that is
// already processed stays processed.
func (s *PostgresSource) Import(ctx context.Context, rows []ImportRow) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("starting import: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}
	for i := range rows {
		c := rows[i].Card
		batch.Queue(queryUpsertCard, pgx.NamedArgs{
			"row_index":       c.Index,
			"processed":       c.Processed,
			"external_id":     c.ExternalID,
			"name":            c.Name,
			"catalog_number":  c.CatalogNumber,
			"foil_variant":    c.FoilVariant,
			"rarity":          c.Rarity,
			"set_name":        c.SetName,
			"condition_code":  rows[i].ConditionCode,
			"defect_note":     c.DefectNote,
			"defect_location": c.DefectLocation,
			"start_price":     c.StartPrice,
		})
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("upserting cards: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing import: %w", err)
	}
	return nil
}

// RecordRun stores a finished run summary.
func (s *PostgresSource) RecordRun(ctx context.Context, sum *domain.RunSummary) error {
	outcomes, err := json.Marshal(sum.Outcomes)
	if err != nil {
		return fmt.Errorf("encoding outcomes: %w", err)
	}

	if _, err := s.pool.Exec(ctx, queryInsertRun, pgx.NamedArgs{
		"id":              sum.ID,
		"started_at":      sum.StartedAt,
		"finished_at":     sum.FinishedAt,
		"listed":          sum.Listed,
		"skipped":         sum.Skipped,
		"failed":          sum.Failed,
		"total_fees":      sum.TotalFees,
		"breaker_tripped": sum.BreakerTripped,
		"canceled":        sum.Canceled,
		"outcomes":        outcomes,
	}); err != nil {
		return fmt.Errorf("recording run %s: %w", sum.ID, err)
	}
	return nil
}

// LatestRun returns the most recent run, or nil when none was recorded.
func (s *PostgresSource) LatestRun(ctx context.Context) (*domain.RunSummary, error) {
	var (
		sum      domain.RunSummary
		outcomes []byte
	)
	err := s.pool.QueryRow(ctx, queryLatestRun).Scan(
		&sum.ID, &sum.StartedAt, &sum.FinishedAt, &sum.Listed, &sum.Skipped,
		&sum.Failed, &sum.TotalFees, &sum.BreakerTripped, &sum.Canceled, &outcomes,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading latest run: %w", err)
	}

	if err := json.Unmarshal(outcomes, &sum.Outcomes); err != nil {
		return nil, fmt.Errorf("decoding outcomes: %w", err)
	}
	for i := range sum.Outcomes {
		if msg := sum.Outcomes[i].Error; msg != "" {
			sum.Outcomes[i].Err = errors.New(msg)
		}
	}
	return &sum, nil
}
