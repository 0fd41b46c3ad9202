// Package retention provides the exchange log retention use case.
// It removes captured HTTP exchanges once they age past a configured limit.
package retention

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"person-api/internal/observability/metrics"
	"person-api/internal/repository"
)

// ErrInvalidMaxAge indicates that the retention age is zero or negative.
var ErrInvalidMaxAge = errors.New("retention age must be positive")

// Stats contains statistics about a retention run.
type Stats struct {
	Removed   int64
	Remaining int64 // -1 when the remaining count could not be determined
	Cutoff    time.Time
	Duration  time.Duration
}

// Service removes exchange log entries older than the retention window.
type Service struct {
	Repo repository.ExchangeLogRepository
}

// Prune deletes exchange log entries captured before now minus maxAge and
// returns statistics about the run. A failure to count the remaining
// entries does not fail the run; Remaining is set to -1 instead.
func (s *Service) Prune(ctx context.Context, maxAge time.Duration) (*Stats, error) {
	if maxAge <= 0 {
		return nil, ErrInvalidMaxAge
	}

	logger := slog.Default()
	start := time.Now()
	cutoff := start.Add(-maxAge)

	removed, err := s.Repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("delete exchange logs: %w", err)
	}
	metrics.RecordExchangeLogsPruned(removed)

	remaining, err := s.Repo.Count(ctx)
	if err != nil {
		logger.Warn("failed to count remaining exchange logs",
			slog.Any("error", err))
		remaining = -1
	}

	stats := &Stats{
		Removed:   removed,
		Remaining: remaining,
		Cutoff:    cutoff,
		Duration:  time.Since(start),
	}
	logger.Info("exchange log retention completed",
		slog.Int64("removed", stats.Removed),
		slog.Int64("remaining", stats.Remaining),
		slog.Time("cutoff", stats.Cutoff),
		slog.Duration("duration", stats.Duration),
	)
	return stats, nil
}
