package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"market-mood/internal/domain"
	"market-mood/internal/provider"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"
)

const latestCacheKey = "analysis:latest"

type NewsReader interface {
	FetchHeadlines(ctx context.Context, from time.Time) ([]provider.Headline, error)
}

type MarketReader interface {
	FetchDailyCloses(ctx context.Context, symbol string, days int) ([]provider.IndexPoint, error)
}

type Store interface {
	UpsertArticles(ctx context.Context, articles []domain.Article) (int, error)
	UpsertDailySentiment(ctx context.Context, days []domain.DailySentiment) (int, error)
	InsertPredictions(ctx context.Context, generatedAt time.Time, predictions []domain.Prediction) (int, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

type ServiceConfig struct {
	Symbol        string
	LookbackDays  int
	RetentionDays int
	CacheTTL      time.Duration
}

// Service runs the fetch-analyze-persist cycle and serves the latest
// snapshot from cache.
type Service struct {
	tracer trace.Tracer
	engine *Engine
	news   NewsReader
	market MarketReader
	repo   Store
	redis  RedisClient
	cfg    ServiceConfig
}

func NewService(
	tracer trace.Tracer,
	engine *Engine,
	news NewsReader,
	market MarketReader,
	repo Store,
	redisClient RedisClient,
	cfg ServiceConfig,
) *Service {
	if cfg.Symbol == "" {
		cfg.Symbol = domain.DefaultMarketSymbol
	}
	if cfg.LookbackDays <= 0 {
		cfg.LookbackDays = 30
	}
	if cfg.RetentionDays <= 0 {
		cfg.RetentionDays = 180
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Hour
	}
	if engine == nil {
		engine = NewEngine(DefaultLexicon(), DefaultAliases())
	}
	return &Service{
		tracer: tracer,
		engine: engine,
		news:   news,
		market: market,
		repo:   repo,
		redis:  redisClient,
		cfg:    cfg,
	}
}

// RunCycle fetches the latest headlines and market closes, runs the
// engine and persists the output. Provider failures degrade the cycle
// instead of aborting it: whichever series did fetch still flows through.
func (s *Service) RunCycle(ctx context.Context, now time.Time) (domain.AnalysisRunResult, error) {
	_, span := s.tracer.Start(ctx, "analysis.run-cycle")
	defer span.End()

	if s.engine == nil {
		return domain.AnalysisRunResult{}, fmt.Errorf("analysis service engine is not initialized")
	}

	now = now.UTC()
	runResult := domain.AnalysisRunResult{}
	from := now.AddDate(0, 0, -s.cfg.LookbackDays)

	var headlines []provider.Headline
	if s.news != nil {
		fetched, err := s.news.FetchHeadlines(ctx, from)
		if err != nil {
			runResult.Errors = append(runResult.Errors, "news: "+err.Error())
		} else {
			headlines = fetched
		}
	}
	runResult.ArticlesFetched = len(headlines)

	var closes []provider.IndexPoint
	if s.market != nil {
		fetched, err := s.market.FetchDailyCloses(ctx, s.cfg.Symbol, s.cfg.LookbackDays)
		if err != nil {
			runResult.Errors = append(runResult.Errors, "market: "+err.Error())
		} else {
			closes = fetched
		}
	}

	result := s.engine.Run(now, headlines, closes)
	runResult.ArticlesScored = len(result.Articles)
	runResult.RecordsSkipped = result.Skipped
	runResult.MarketPoints = len(result.Rows)
	runResult.DaysAggregated = len(result.Daily)

	if s.repo != nil {
		if _, err := s.repo.UpsertArticles(ctx, result.Articles); err != nil {
			runResult.Errors = append(runResult.Errors, "store_articles: "+err.Error())
		}
		days := make([]domain.DailySentiment, 0, len(result.Daily))
		for _, d := range result.Daily {
			days = append(days, d)
		}
		if _, err := s.repo.UpsertDailySentiment(ctx, days); err != nil {
			runResult.Errors = append(runResult.Errors, "store_daily: "+err.Error())
		}
		written, err := s.repo.InsertPredictions(ctx, result.GeneratedAt, result.Predictions)
		if err != nil {
			runResult.Errors = append(runResult.Errors, "store_predictions: "+err.Error())
		}
		runResult.PredictionsWritten = written

		cutoff := now.AddDate(0, 0, -s.cfg.RetentionDays)
		if _, err := s.repo.DeleteOlderThan(ctx, cutoff); err != nil {
			runResult.Errors = append(runResult.Errors, "retention: "+err.Error())
		}
	} else {
		runResult.PredictionsWritten = len(result.Predictions)
	}

	if s.redis != nil {
		payload, err := json.Marshal(result)
		if err != nil {
			runResult.Errors = append(runResult.Errors, "cache_marshal: "+err.Error())
		} else if err := s.redis.Set(ctx, latestCacheKey, payload, s.cfg.CacheTTL).Err(); err != nil {
			runResult.Errors = append(runResult.Errors, "cache_set: "+err.Error())
		}
	}

	return runResult, nil
}

// Latest returns the most recent cached snapshot, or nil when no cycle
// has completed yet.
func (s *Service) Latest(ctx context.Context) (*Result, error) {
	_, span := s.tracer.Start(ctx, "analysis.latest")
	defer span.End()

	if s.redis == nil {
		return nil, nil
	}

	payload, err := s.redis.Get(ctx, latestCacheKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var result Result
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return &result, nil
}
