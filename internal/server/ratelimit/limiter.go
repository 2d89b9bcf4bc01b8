// Package ratelimit implements a per-username sliding-window request
// limiter. State is in-memory only and resets on process restart.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/avolkovs/raggate/internal/logging"
)

// Limiter tracks accepted request timestamps per username within a
// continuously moving window. A rejected check does not consume a slot:
// only accepted requests occupy the window.
type Limiter struct {
	mu          sync.Mutex
	window      time.Duration
	maxRequests int
	requests    map[string][]time.Time
	logger      logging.Logger
	now         func() time.Time
}

func NewLimiter(window time.Duration, maxRequests int, logger logging.Logger) *Limiter {
	return &Limiter{
		window:      window,
		maxRequests: maxRequests,
		requests:    make(map[string][]time.Time),
		logger:      logger.With("component", "ratelimit"),
		now:         time.Now,
	}
}

// Allow reports whether the user may make a request now. Timestamps older
// than the window are pruned first; if the remaining count has reached the
// maximum the request is rejected without being recorded, otherwise the
// current time is appended and the request is allowed.
func (l *Limiter) Allow(ctx context.Context, username string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	kept := l.requests[username][:0]
	for _, ts := range l.requests[username] {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}

	if len(kept) >= l.maxRequests {
		l.requests[username] = kept
		l.logger.Warn(ctx, "rate limit exceeded", "username", username)
		return false
	}

	l.requests[username] = append(kept, now)
	return true
}

// EvictIdle removes usernames whose windows have fully drained, so a
// long-running process does not accumulate an entry for every username it
// has ever seen. Returns the number of entries evicted.
func (l *Limiter) EvictIdle(ctx context.Context) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.window)
	evicted := 0
	for username, stamps := range l.requests {
		live := false
		for _, ts := range stamps {
			if ts.After(cutoff) {
				live = true
				break
			}
		}
		if !live {
			delete(l.requests, username)
			evicted++
		}
	}
	if evicted > 0 {
		l.logger.Debug(ctx, "evicted idle rate windows", "count", evicted)
	}
	return evicted
}
