package handler

import (
	"context"

	"market-mood/internal/analysis"
	"market-mood/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

type SnapshotReader interface {
	Latest(ctx context.Context) (*analysis.Result, error)
}

type AnalysisRunner interface {
	RunAnalysis(ctx context.Context) (domain.AnalysisRunResult, error)
}

type MarketReader interface {
	Symbol() string
	GetSeries(ctx context.Context, from, to string) ([]domain.MarketPoint, error)
	GetLatest(ctx context.Context) (*domain.MarketPoint, error)
}

type Handler struct {
	tracer    trace.Tracer
	snapshots SnapshotReader
	runner    AnalysisRunner
	market    MarketReader
}

func New(tracer trace.Tracer, snapshots SnapshotReader, runner AnalysisRunner, market MarketReader) *Handler {
	return &Handler{
		tracer:    tracer,
		snapshots: snapshots,
		runner:    runner,
		market:    market,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.GET("/api/sentiment/daily", h.GetDailySentiment)
	r.GET("/api/correlations", h.GetCorrelations)
	r.GET("/api/predictions", h.GetPredictions)
	r.GET("/api/market", h.GetMarketSeries)
	r.POST("/api/analysis/run", h.TriggerAnalysisRun)
}
