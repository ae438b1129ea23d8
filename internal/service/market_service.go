package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"market-mood/internal/analysis"
	"market-mood/internal/domain"
	"market-mood/internal/provider"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"
)

const latestPointCacheTTL = 5 * time.Minute

type MarketProvider interface {
	FetchDailyCloses(ctx context.Context, symbol string, days int) ([]provider.IndexPoint, error)
}

type MarketRepository interface {
	UpsertPoints(ctx context.Context, symbol string, points []domain.MarketPoint) (int, error)
	ListPoints(ctx context.Context, symbol, from, to string) ([]domain.MarketPoint, error)
	LatestPoint(ctx context.Context, symbol string) (*domain.MarketPoint, error)
}

type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// MarketService keeps the stored index series fresh and serves reads.
type MarketService struct {
	tracer   trace.Tracer
	provider MarketProvider
	repo     MarketRepository
	redis    RedisClient
	symbol   string
}

func NewMarketService(
	tracer trace.Tracer,
	marketProvider MarketProvider,
	repo MarketRepository,
	redisClient RedisClient,
	symbol string,
) *MarketService {
	if symbol == "" {
		symbol = domain.DefaultMarketSymbol
	}
	return &MarketService{
		tracer:   tracer,
		provider: marketProvider,
		repo:     repo,
		redis:    redisClient,
		symbol:   symbol,
	}
}

func (s *MarketService) Symbol() string {
	return s.symbol
}

// RefreshSeries fetches the latest closes, derives day-over-day change
// and upserts the series.
func (s *MarketService) RefreshSeries(ctx context.Context, days int) error {
	_, span := s.tracer.Start(ctx, "market-service.refresh-series")
	defer span.End()

	closes, err := s.provider.FetchDailyCloses(ctx, s.symbol, days)
	if err != nil {
		return err
	}

	points, skipped := analysis.BuildMarketPoints(closes)
	if skipped > 0 {
		log.Printf("Skipped %d malformed market records for %s", skipped, s.symbol)
	}
	if s.repo != nil {
		if _, err := s.repo.UpsertPoints(ctx, s.symbol, points); err != nil {
			return fmt.Errorf("upsert market points for %s: %w", s.symbol, err)
		}
	}

	if s.redis != nil && len(points) > 0 {
		latest := points[len(points)-1]
		if err := s.setLatestCache(ctx, &latest); err != nil {
			log.Printf("redis cache write error for %s: %v", s.symbol, err)
		}
	}

	log.Printf("Refreshed market series for %s (%d points)", s.symbol, len(points))
	return nil
}

// GetSeries returns the stored series between from and to inclusive.
func (s *MarketService) GetSeries(ctx context.Context, from, to string) ([]domain.MarketPoint, error) {
	_, span := s.tracer.Start(ctx, "market-service.get-series")
	defer span.End()

	if s.repo == nil {
		return nil, nil
	}
	return s.repo.ListPoints(ctx, s.symbol, from, to)
}

// GetLatest returns the most recent trading day, preferring the cache.
func (s *MarketService) GetLatest(ctx context.Context) (*domain.MarketPoint, error) {
	_, span := s.tracer.Start(ctx, "market-service.get-latest")
	defer span.End()

	if s.redis != nil {
		cached, err := s.getLatestCache(ctx)
		if err != nil {
			log.Printf("redis cache read error: %v", err)
		}
		if cached != nil {
			return cached, nil
		}
	}

	if s.repo == nil {
		return nil, nil
	}
	latest, err := s.repo.LatestPoint(ctx, s.symbol)
	if err != nil {
		return nil, err
	}
	if latest != nil && s.redis != nil {
		_ = s.setLatestCache(ctx, latest)
	}
	return latest, nil
}

func (s *MarketService) setLatestCache(ctx context.Context, point *domain.MarketPoint) error {
	data, err := json.Marshal(point)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, "market:latest:"+s.symbol, data, latestPointCacheTTL).Err()
}

func (s *MarketService) getLatestCache(ctx context.Context) (*domain.MarketPoint, error) {
	data, err := s.redis.Get(ctx, "market:latest:"+s.symbol).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var point domain.MarketPoint
	if err := json.Unmarshal(data, &point); err != nil {
		return nil, err
	}
	return &point, nil
}
