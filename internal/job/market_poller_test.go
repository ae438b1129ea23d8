package job

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
)

func TestMarketPollerRefreshesAtLeastOnce(t *testing.T) {
	var calls int32
	var lastDays int32
	refresher := &marketRefresherTestStub{calls: &calls, lastDays: &lastDays}
	poller := NewMarketPoller(trace.NewNoopTracerProvider().Tracer("test"), refresher, 1, 14)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		poller.Start(ctx)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()
	<-done

	if atomic.LoadInt32(&calls) == 0 {
		t.Fatal("expected at least one refresh")
	}
	if atomic.LoadInt32(&lastDays) != 14 {
		t.Fatalf("expected lookback of 14 days, got %d", atomic.LoadInt32(&lastDays))
	}
}

type marketRefresherTestStub struct {
	calls    *int32
	lastDays *int32
}

func (s *marketRefresherTestStub) RefreshSeries(ctx context.Context, days int) error {
	atomic.AddInt32(s.calls, 1)
	atomic.StoreInt32(s.lastDays, int32(days))
	return nil
}
