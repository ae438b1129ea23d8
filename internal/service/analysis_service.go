package service

import (
	"context"
	"time"

	"market-mood/internal/analysis"
	"market-mood/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

type AnalysisService struct {
	tracer trace.Tracer
	svc    *analysis.Service
}

func NewAnalysisService(tracer trace.Tracer, svc *analysis.Service) *AnalysisService {
	return &AnalysisService{tracer: tracer, svc: svc}
}

func (s *AnalysisService) RunAnalysis(ctx context.Context) (domain.AnalysisRunResult, error) {
	_, span := s.tracer.Start(ctx, "analysis-service.run")
	defer span.End()
	if s == nil || s.svc == nil {
		return domain.AnalysisRunResult{}, nil
	}
	return s.svc.RunCycle(ctx, time.Now().UTC())
}

func (s *AnalysisService) Latest(ctx context.Context) (*analysis.Result, error) {
	_, span := s.tracer.Start(ctx, "analysis-service.latest")
	defer span.End()
	if s == nil || s.svc == nil {
		return nil, nil
	}
	return s.svc.Latest(ctx)
}
