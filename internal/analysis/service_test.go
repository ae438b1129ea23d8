package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"market-mood/internal/domain"
	"market-mood/internal/provider"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"
)

type stubNews struct {
	headlines []provider.Headline
	err       error
}

func (s *stubNews) FetchHeadlines(ctx context.Context, from time.Time) ([]provider.Headline, error) {
	return s.headlines, s.err
}

type stubMarket struct {
	points []provider.IndexPoint
	err    error
}

func (s *stubMarket) FetchDailyCloses(ctx context.Context, symbol string, days int) ([]provider.IndexPoint, error) {
	return s.points, s.err
}

type stubStore struct {
	articles    []domain.Article
	days        []domain.DailySentiment
	predictions []domain.Prediction
	deletedAt   time.Time
	failDaily   bool
}

func (s *stubStore) UpsertArticles(ctx context.Context, articles []domain.Article) (int, error) {
	s.articles = articles
	return len(articles), nil
}

func (s *stubStore) UpsertDailySentiment(ctx context.Context, days []domain.DailySentiment) (int, error) {
	if s.failDaily {
		return 0, errors.New("daily write failed")
	}
	s.days = days
	return len(days), nil
}

func (s *stubStore) InsertPredictions(ctx context.Context, generatedAt time.Time, predictions []domain.Prediction) (int, error) {
	s.predictions = predictions
	return len(predictions), nil
}

func (s *stubStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	s.deletedAt = cutoff
	return 0, nil
}

type stubRedis struct {
	stored map[string]string
	getErr error
}

func (s *stubRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if s.getErr != nil {
		cmd := redis.NewStringCmd(ctx)
		cmd.SetErr(s.getErr)
		return cmd
	}
	val, ok := s.stored[key]
	if !ok {
		cmd := redis.NewStringCmd(ctx)
		cmd.SetErr(redis.Nil)
		return cmd
	}
	return redis.NewStringResult(val, nil)
}

func (s *stubRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if s.stored == nil {
		s.stored = map[string]string{}
	}
	switch v := value.(type) {
	case []byte:
		s.stored[key] = string(v)
	case string:
		s.stored[key] = v
	}
	return redis.NewStatusResult("OK", nil)
}

func newTestService(news NewsReader, market MarketReader, store Store, cache RedisClient) *Service {
	return NewService(
		trace.NewNoopTracerProvider().Tracer("test"),
		nil,
		news, market, store, cache,
		ServiceConfig{Symbol: "SPY", LookbackDays: 7},
	)
}

func TestRunCyclePersistsAndCaches(t *testing.T) {
	now := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	day := func(d int) time.Time { return time.Date(2026, 6, d, 0, 0, 0, 0, time.UTC) }

	news := &stubNews{headlines: []provider.Headline{
		{Title: "Stocks surge on strong earnings", URL: "http://a", PublishedAt: day(8).Add(14 * time.Hour)},
		{Title: "Market plunge deepens amid fears", URL: "http://b", PublishedAt: day(9).Add(15 * time.Hour)},
	}}
	market := &stubMarket{points: []provider.IndexPoint{
		{Date: day(8), Close: 500},
		{Date: day(9), Close: 505},
	}}
	store := &stubStore{}
	cache := &stubRedis{}

	svc := newTestService(news, market, store, cache)
	result, err := svc.RunCycle(context.Background(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.ArticlesFetched != 2 || result.ArticlesScored != 2 {
		t.Fatalf("unexpected counters: %+v", result)
	}
	if result.MarketPoints != 2 || result.DaysAggregated != 2 {
		t.Fatalf("unexpected series counters: %+v", result)
	}
	if result.PredictionsWritten != 2 {
		t.Fatalf("expected 2 predictions written, got %d", result.PredictionsWritten)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}

	if len(store.articles) != 2 || len(store.days) != 2 || len(store.predictions) != 2 {
		t.Fatalf("store not fully written: %d %d %d", len(store.articles), len(store.days), len(store.predictions))
	}
	if store.deletedAt.IsZero() {
		t.Fatal("expected retention pass to run")
	}

	payload, ok := cache.stored[latestCacheKey]
	if !ok {
		t.Fatal("expected latest snapshot in cache")
	}
	var snapshot Result
	if err := json.Unmarshal([]byte(payload), &snapshot); err != nil {
		t.Fatalf("cached snapshot not valid json: %v", err)
	}
	if len(snapshot.Predictions) != 2 {
		t.Fatalf("expected cached predictions, got %+v", snapshot)
	}
}

func TestRunCycleAccumulatesProviderErrors(t *testing.T) {
	news := &stubNews{err: errors.New("news unavailable")}
	market := &stubMarket{err: errors.New("market unavailable")}
	store := &stubStore{}

	svc := newTestService(news, market, store, &stubRedis{})
	result, err := svc.RunCycle(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Errors) != 2 {
		t.Fatalf("expected 2 accumulated errors, got %v", result.Errors)
	}
	for _, msg := range result.Errors {
		if !strings.Contains(msg, "unavailable") {
			t.Fatalf("unexpected error message: %s", msg)
		}
	}
	// A fully failed fetch still produces the neutral prediction pair.
	if len(store.predictions) != 2 {
		t.Fatalf("expected neutral predictions, got %d", len(store.predictions))
	}
}

func TestRunCycleStoreFailureDegrades(t *testing.T) {
	news := &stubNews{headlines: []provider.Headline{
		{Title: "Gains continue", URL: "http://a", PublishedAt: time.Date(2026, 6, 8, 14, 0, 0, 0, time.UTC)},
	}}
	store := &stubStore{failDaily: true}

	svc := newTestService(news, &stubMarket{}, store, &stubRedis{})
	result, err := svc.RunCycle(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found := false
	for _, msg := range result.Errors {
		if strings.Contains(msg, "store_daily") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected store_daily error, got %v", result.Errors)
	}
}

func TestLatestRoundTrip(t *testing.T) {
	cache := &stubRedis{}
	svc := newTestService(&stubNews{}, &stubMarket{}, nil, cache)

	// Nothing cached yet.
	got, err := svc.Latest(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil before first cycle, got %+v", got)
	}

	if _, err := svc.RunCycle(context.Background(), time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err = svc.Latest(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got.Predictions) != 2 {
		t.Fatalf("expected cached snapshot with predictions, got %+v", got)
	}
}

func TestLatestCacheError(t *testing.T) {
	cache := &stubRedis{getErr: errors.New("redis down")}
	svc := newTestService(&stubNews{}, &stubMarket{}, nil, cache)

	_, err := svc.Latest(context.Background())
	if err == nil || !strings.Contains(err.Error(), "cache get") {
		t.Fatalf("expected cache get error, got %v", err)
	}
}
