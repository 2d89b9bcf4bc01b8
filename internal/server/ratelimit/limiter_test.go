package ratelimit

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/avolkovs/raggate/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestAllow_SlidingWindow(t *testing.T) {
	l := NewLimiter(60*time.Second, 3, testLogger())
	ctx := context.Background()

	base := time.Now()
	l.now = func() time.Time { return base }

	for i := 0; i < 3; i++ {
		require.True(t, l.Allow(ctx, "admin"), "request %d should pass", i+1)
	}
	require.False(t, l.Allow(ctx, "admin"), "4th request inside window must be rejected")

	// once the window slides past the first request, capacity frees up
	l.now = func() time.Time { return base.Add(61 * time.Second) }
	require.True(t, l.Allow(ctx, "admin"))
}

func TestAllow_RejectionDoesNotConsumeASlot(t *testing.T) {
	l := NewLimiter(60*time.Second, 1, testLogger())
	ctx := context.Background()

	base := time.Now()
	l.now = func() time.Time { return base }

	require.True(t, l.Allow(ctx, "admin"))
	for i := 0; i < 10; i++ {
		require.False(t, l.Allow(ctx, "admin"))
	}

	// only the single accepted request occupied the window; once it ages
	// out the user is immediately admitted again
	l.now = func() time.Time { return base.Add(61 * time.Second) }
	require.True(t, l.Allow(ctx, "admin"))
}

func TestAllow_UsersAreIndependent(t *testing.T) {
	l := NewLimiter(60*time.Second, 1, testLogger())
	ctx := context.Background()

	require.True(t, l.Allow(ctx, "admin"))
	require.False(t, l.Allow(ctx, "admin"))
	require.True(t, l.Allow(ctx, "finance_user"))
}

func TestAllow_WindowBoundaryMovesContinuously(t *testing.T) {
	l := NewLimiter(60*time.Second, 2, testLogger())
	ctx := context.Background()

	base := time.Now()
	l.now = func() time.Time { return base }
	require.True(t, l.Allow(ctx, "admin"))

	l.now = func() time.Time { return base.Add(30 * time.Second) }
	require.True(t, l.Allow(ctx, "admin"))
	require.False(t, l.Allow(ctx, "admin"))

	// at +61s the first stamp has aged out but the second has not
	l.now = func() time.Time { return base.Add(61 * time.Second) }
	require.True(t, l.Allow(ctx, "admin"))
	require.False(t, l.Allow(ctx, "admin"))
}

func TestEvictIdle(t *testing.T) {
	l := NewLimiter(60*time.Second, 5, testLogger())
	ctx := context.Background()

	base := time.Now()
	l.now = func() time.Time { return base }

	require.True(t, l.Allow(ctx, "old"))
	l.now = func() time.Time { return base.Add(45 * time.Second) }
	require.True(t, l.Allow(ctx, "fresh"))

	l.now = func() time.Time { return base.Add(70 * time.Second) }
	require.Equal(t, 1, l.EvictIdle(ctx))

	l.mu.Lock()
	_, oldKept := l.requests["old"]
	_, freshKept := l.requests["fresh"]
	l.mu.Unlock()
	require.False(t, oldKept)
	require.True(t, freshKept)
}
