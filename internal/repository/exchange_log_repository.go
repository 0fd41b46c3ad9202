package repository

import (
	"context"
	"time"

	"person-api/internal/observability/exchange"
)

// ExchangeLogRepository persists rendered HTTP exchange entries.
// It embeds exchange.Sink so a repository can be handed directly to the
// capture layer as its sink.
type ExchangeLogRepository interface {
	exchange.Sink

	// DeleteOlderThan removes entries captured before the cutoff and
	// returns the number of rows removed.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)

	// Count returns the number of stored entries.
	Count(ctx context.Context) (int64, error)
}
