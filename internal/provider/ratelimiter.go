package provider

import (
	"context"
	"sync"
	"time"
)

var limiterNow = time.Now

// FeedLimiter caps outbound feed requests to limit calls per sliding window.
// Both upstream APIs meter by requests-per-window, so the limiter tracks the
// timestamps of recent calls rather than a token count.
type FeedLimiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	calls  []time.Time
}

// NewFeedLimiter allows limit calls per window.
func NewFeedLimiter(limit int, window time.Duration) *FeedLimiter {
	if limit <= 0 {
		limit = 1
	}
	return &FeedLimiter{limit: limit, window: window}
}

// Wait blocks until the call fits inside the window or ctx is cancelled.
func (l *FeedLimiter) Wait(ctx context.Context) error {
	for {
		l.mu.Lock()
		now := limiterNow()
		l.prune(now)
		if len(l.calls) < l.limit {
			l.calls = append(l.calls, now)
			l.mu.Unlock()
			return nil
		}
		sleep := l.calls[0].Add(l.window).Sub(now)
		l.mu.Unlock()

		if sleep < time.Millisecond {
			sleep = time.Millisecond
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(sleep):
		}
	}
}

func (l *FeedLimiter) prune(now time.Time) {
	cutoff := now.Add(-l.window)
	i := 0
	for i < len(l.calls) && !l.calls[i].After(cutoff) {
		i++
	}
	l.calls = l.calls[i:]
}
