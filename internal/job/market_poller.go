package job

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel/trace"
)

type MarketRefresher interface {
	RefreshSeries(ctx context.Context, days int) error
}

// MarketPoller keeps the stored index series fresh in the background.
type MarketPoller struct {
	tracer        trace.Tracer
	marketService MarketRefresher
	pollInterval  time.Duration
	lookbackDays  int
}

func NewMarketPoller(tracer trace.Tracer, marketService MarketRefresher, pollIntervalSecs, lookbackDays int) *MarketPoller {
	if pollIntervalSecs <= 0 {
		pollIntervalSecs = 300
	}
	if lookbackDays <= 0 {
		lookbackDays = 30
	}
	return &MarketPoller{
		tracer:        tracer,
		marketService: marketService,
		pollInterval:  time.Duration(pollIntervalSecs) * time.Second,
		lookbackDays:  lookbackDays,
	}
}

// Start blocks until ctx is cancelled.
func (p *MarketPoller) Start(ctx context.Context) {
	if p.marketService == nil {
		log.Println("Market poller disabled: no service")
		<-ctx.Done()
		return
	}
	log.Println("Market poller starting...")

	p.refreshOnce(ctx)
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Market poller stopped")
			return
		case <-ticker.C:
			p.refreshOnce(ctx)
		}
	}
}

func (p *MarketPoller) refreshOnce(ctx context.Context) {
	_, span := p.tracer.Start(ctx, "market-poller.refresh-once")
	defer span.End()

	if err := p.marketService.RefreshSeries(ctx, p.lookbackDays); err != nil {
		log.Printf("market series refresh error: %v", err)
	}
}
