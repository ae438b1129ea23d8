package repository

import (
	"context"
	"time"

	"market-mood/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel/trace"
)

// PgxPool is the subset of pgxpool.Pool the repositories need.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

type MarketRepository struct {
	pool   PgxPool
	tracer trace.Tracer
}

func NewMarketRepository(pool PgxPool, tracer trace.Tracer) *MarketRepository {
	return &MarketRepository{pool: pool, tracer: tracer}
}

// UpsertPoints writes daily closes keyed by (symbol, date).
func (r *MarketRepository) UpsertPoints(ctx context.Context, symbol string, points []domain.MarketPoint) (int, error) {
	if len(points) == 0 {
		return 0, nil
	}
	_, span := r.tracer.Start(ctx, "market-repo.upsert-points")
	defer span.End()

	batch := &pgx.Batch{}
	for _, pt := range points {
		batch.Queue(`
INSERT INTO market_points (symbol, date, close_value, change, percent_change)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (symbol, date) DO UPDATE SET
    close_value = EXCLUDED.close_value,
    change = EXCLUDED.change,
    percent_change = EXCLUDED.percent_change,
    updated_at = NOW()`,
			symbol, pt.Date, pt.CloseValue, pt.Change, pt.PercentChange)
	}

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()

	written := 0
	for range points {
		if _, err := br.Exec(); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

// ListPoints returns the stored series for symbol between from and to
// inclusive, oldest first. Dates use the 2006-01-02 layout.
func (r *MarketRepository) ListPoints(ctx context.Context, symbol, from, to string) ([]domain.MarketPoint, error) {
	_, span := r.tracer.Start(ctx, "market-repo.list-points")
	defer span.End()

	rows, err := r.pool.Query(ctx, `
SELECT date, close_value, change, percent_change
FROM market_points
WHERE symbol = $1 AND date >= $2 AND date <= $3
ORDER BY date ASC`, symbol, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.MarketPoint
	for rows.Next() {
		var pt domain.MarketPoint
		var date time.Time
		if err := rows.Scan(&date, &pt.CloseValue, &pt.Change, &pt.PercentChange); err != nil {
			return nil, err
		}
		pt.Date = date.UTC().Format(domain.DateLayout)
		out = append(out, pt)
	}
	return out, rows.Err()
}

// LatestPoint returns the most recent stored day for symbol, or nil when
// the series is empty.
func (r *MarketRepository) LatestPoint(ctx context.Context, symbol string) (*domain.MarketPoint, error) {
	_, span := r.tracer.Start(ctx, "market-repo.latest-point")
	defer span.End()

	var pt domain.MarketPoint
	var date time.Time
	err := r.pool.QueryRow(ctx, `
SELECT date, close_value, change, percent_change
FROM market_points
WHERE symbol = $1
ORDER BY date DESC
LIMIT 1`, symbol).Scan(&date, &pt.CloseValue, &pt.Change, &pt.PercentChange)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	pt.Date = date.UTC().Format(domain.DateLayout)
	return &pt, nil
}

// DeleteOlderThan prunes series rows before the cutoff day.
func (r *MarketRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	_, span := r.tracer.Start(ctx, "market-repo.delete-older-than")
	defer span.End()

	tag, err := r.pool.Exec(ctx,
		`DELETE FROM market_points WHERE date < $1`, cutoff.UTC().Format(domain.DateLayout))
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
