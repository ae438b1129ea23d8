package analysis

import (
	"context"
	"time"

	"market-mood/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel/trace"
)

type pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// Repository persists scored articles, daily summaries and predictions.
type Repository struct {
	pool   pool
	tracer trace.Tracer
}

func NewRepository(pool pool, tracer trace.Tracer) *Repository {
	return &Repository{pool: pool, tracer: tracer}
}

// UpsertArticles writes scored articles keyed by id. Re-running a cycle
// over the same headlines overwrites scores in place.
func (r *Repository) UpsertArticles(ctx context.Context, articles []domain.Article) (int, error) {
	if len(articles) == 0 {
		return 0, nil
	}
	_, span := r.tracer.Start(ctx, "analysis-repo.upsert-articles")
	defer span.End()

	batch := &pgx.Batch{}
	for _, a := range articles {
		batch.Queue(`
INSERT INTO articles (
    id, title, description, source, url, published_at,
    sentiment_score, sentiment_category, related_symbols
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (id) DO UPDATE SET
    title = EXCLUDED.title,
    description = EXCLUDED.description,
    source = EXCLUDED.source,
    url = EXCLUDED.url,
    published_at = EXCLUDED.published_at,
    sentiment_score = EXCLUDED.sentiment_score,
    sentiment_category = EXCLUDED.sentiment_category,
    related_symbols = EXCLUDED.related_symbols,
    updated_at = NOW()`,
			a.ID, a.Title, a.Description, a.Source, a.URL, a.PublishedAt.UTC(),
			a.SentimentScore, string(a.SentimentCategory), a.RelatedSymbols)
	}

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()

	written := 0
	for range articles {
		if _, err := br.Exec(); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

// UpsertDailySentiment writes one row per calendar day.
func (r *Repository) UpsertDailySentiment(ctx context.Context, days []domain.DailySentiment) (int, error) {
	if len(days) == 0 {
		return 0, nil
	}
	_, span := r.tracer.Start(ctx, "analysis-repo.upsert-daily-sentiment")
	defer span.End()

	batch := &pgx.Batch{}
	for _, d := range days {
		batch.Queue(`
INSERT INTO daily_sentiment (
    date, article_count, positive_count, negative_count, neutral_count, average_score
) VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (date) DO UPDATE SET
    article_count = EXCLUDED.article_count,
    positive_count = EXCLUDED.positive_count,
    negative_count = EXCLUDED.negative_count,
    neutral_count = EXCLUDED.neutral_count,
    average_score = EXCLUDED.average_score,
    updated_at = NOW()`,
			d.Date, d.ArticleCount, d.PositiveCount, d.NegativeCount, d.NeutralCount, d.AverageScore)
	}

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()

	written := 0
	for range days {
		if _, err := br.Exec(); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

// InsertPredictions appends the pair produced by one run, stamped with
// the run time so history is queryable.
func (r *Repository) InsertPredictions(ctx context.Context, generatedAt time.Time, predictions []domain.Prediction) (int, error) {
	if len(predictions) == 0 {
		return 0, nil
	}
	_, span := r.tracer.Start(ctx, "analysis-repo.insert-predictions")
	defer span.End()

	batch := &pgx.Batch{}
	for _, p := range predictions {
		batch.Queue(`
INSERT INTO predictions (
    generated_at, timeframe, direction, confidence, sentiment_value, explanation
) VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (generated_at, timeframe) DO UPDATE SET
    direction = EXCLUDED.direction,
    confidence = EXCLUDED.confidence,
    sentiment_value = EXCLUDED.sentiment_value,
    explanation = EXCLUDED.explanation`,
			generatedAt.UTC(), string(p.Timeframe), string(p.Direction),
			p.Confidence, p.SentimentValue, p.Explanation)
	}

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()

	written := 0
	for range predictions {
		if _, err := br.Exec(); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

// ListDailySentiment returns stored day summaries between from and to
// inclusive, oldest first. Dates use the 2006-01-02 layout.
func (r *Repository) ListDailySentiment(ctx context.Context, from, to string) ([]domain.DailySentiment, error) {
	_, span := r.tracer.Start(ctx, "analysis-repo.list-daily-sentiment")
	defer span.End()

	rows, err := r.pool.Query(ctx, `
SELECT date, article_count, positive_count, negative_count, neutral_count, average_score
FROM daily_sentiment
WHERE date >= $1 AND date <= $2
ORDER BY date ASC`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.DailySentiment
	for rows.Next() {
		var d domain.DailySentiment
		var date time.Time
		if err := rows.Scan(&date, &d.ArticleCount, &d.PositiveCount, &d.NegativeCount, &d.NeutralCount, &d.AverageScore); err != nil {
			return nil, err
		}
		d.Date = date.UTC().Format(domain.DateLayout)
		out = append(out, d)
	}
	return out, rows.Err()
}

// LatestPredictions returns the most recent prediction pair.
func (r *Repository) LatestPredictions(ctx context.Context) ([]domain.Prediction, error) {
	_, span := r.tracer.Start(ctx, "analysis-repo.latest-predictions")
	defer span.End()

	rows, err := r.pool.Query(ctx, `
SELECT timeframe, direction, confidence, sentiment_value, explanation
FROM predictions
WHERE generated_at = (SELECT MAX(generated_at) FROM predictions)
ORDER BY timeframe ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Prediction
	for rows.Next() {
		var p domain.Prediction
		var timeframe, direction string
		if err := rows.Scan(&timeframe, &direction, &p.Confidence, &p.SentimentValue, &p.Explanation); err != nil {
			return nil, err
		}
		p.Timeframe = domain.Timeframe(timeframe)
		p.Direction = domain.Direction(direction)
		out = append(out, p)
	}
	return out, rows.Err()
}

// DeleteOlderThan prunes article and prediction history before cutoff.
func (r *Repository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	_, span := r.tracer.Start(ctx, "analysis-repo.delete-older-than")
	defer span.End()

	total := int64(0)
	queries := []string{
		`DELETE FROM articles WHERE published_at < $1`,
		`DELETE FROM predictions WHERE generated_at < $1`,
	}
	for _, q := range queries {
		tag, err := r.pool.Exec(ctx, q, cutoff.UTC())
		if err != nil {
			return total, err
		}
		total += tag.RowsAffected()
	}
	return total, nil
}
