package http

import (
	"context"
	"log/slog"
	"time"
)

// DefaultCleanupInterval is how often stale rate limiter clients are evicted
// when no interval is specified.
const DefaultCleanupInterval = 5 * time.Minute

// StartRateLimitCleanup starts a background loop that periodically evicts
// idle clients from the rate limiter to prevent memory leaks.
//
// The loop stops gracefully when the context is cancelled (e.g., during
// server shutdown). Run it in its own goroutine:
//
//	go StartRateLimitCleanup(ctx, limiter, DefaultCleanupInterval)
func StartRateLimitCleanup(ctx context.Context, limiter *RateLimiter, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultCleanupInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("rate limit cleanup started",
		slog.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			slog.Info("rate limit cleanup stopped")
			return

		case <-ticker.C:
			removed := limiter.CleanupExpired()
			if removed > 0 {
				slog.Debug("rate limit cleanup completed",
					slog.Int("clients_removed", removed))
			}
		}
	}
}
