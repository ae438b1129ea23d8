package job

import (
	"context"
	"log"
	"time"

	"market-mood/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

type AnalysisRunner interface {
	RunAnalysis(ctx context.Context) (domain.AnalysisRunResult, error)
}

// AnalysisJob periodically runs a full fetch-analyze-persist cycle.
type AnalysisJob struct {
	tracer       trace.Tracer
	runner       AnalysisRunner
	pollInterval time.Duration
}

func NewAnalysisJob(tracer trace.Tracer, runner AnalysisRunner, pollInterval time.Duration) *AnalysisJob {
	if pollInterval <= 0 {
		pollInterval = 15 * time.Minute
	}
	return &AnalysisJob{tracer: tracer, runner: runner, pollInterval: pollInterval}
}

// Start blocks until ctx is cancelled, running one cycle immediately and
// then once per interval.
func (j *AnalysisJob) Start(ctx context.Context) {
	if j.runner == nil {
		log.Println("Analysis job disabled: no runner")
		<-ctx.Done()
		return
	}

	j.runOnce(ctx)
	ticker := time.NewTicker(j.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.runOnce(ctx)
		}
	}
}

func (j *AnalysisJob) runOnce(ctx context.Context) {
	_, span := j.tracer.Start(ctx, "analysis-job.run-once")
	defer span.End()

	result, err := j.runner.RunAnalysis(ctx)
	if err != nil {
		log.Printf("Analysis cycle error: %v", err)
		return
	}
	log.Printf(
		"Analysis cycle complete fetched=%d scored=%d skipped=%d points=%d days=%d predictions=%d warnings=%d",
		result.ArticlesFetched,
		result.ArticlesScored,
		result.RecordsSkipped,
		result.MarketPoints,
		result.DaysAggregated,
		result.PredictionsWritten,
		len(result.Errors),
	)
}
