package postgres

import (
	"context"
	"fmt"
	"time"

	"person-api/internal/observability/exchange"
	"person-api/internal/observability/metrics"
	"person-api/internal/repository"
	"person-api/internal/resilience/circuitbreaker"
)

// ExchangeLogRepo stores rendered HTTP exchange entries. It satisfies
// exchange.Sink, so it can be wired straight into the capture transport
// and middleware.
type ExchangeLogRepo struct{ cb *circuitbreaker.DBCircuitBreaker }

func NewExchangeLogRepo(cb *circuitbreaker.DBCircuitBreaker) repository.ExchangeLogRepository {
	return &ExchangeLogRepo{cb: cb}
}

func (repo *ExchangeLogRepo) Write(ctx context.Context, direction exchange.Direction, entry string) error {
	const query = `
INSERT INTO exchange_logs (direction, entry)
VALUES ($1, $2)`
	start := time.Now()
	_, err := repo.cb.ExecContext(ctx, query, string(direction), entry)
	metrics.RecordDBQuery("insert_exchange_log", time.Since(start))
	if err != nil {
		return fmt.Errorf("Write: %w", err)
	}
	return nil
}

func (repo *ExchangeLogRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	const query = `DELETE FROM exchange_logs WHERE captured_at < $1`
	start := time.Now()
	res, err := repo.cb.ExecContext(ctx, query, cutoff)
	metrics.RecordDBQuery("delete_exchange_logs", time.Since(start))
	if err != nil {
		return 0, fmt.Errorf("DeleteOlderThan: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("DeleteOlderThan: %w", err)
	}
	return n, nil
}

func (repo *ExchangeLogRepo) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM exchange_logs`
	start := time.Now()
	rows, err := repo.cb.QueryContext(ctx, query)
	metrics.RecordDBQuery("count_exchange_logs", time.Since(start))
	if err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var count int64
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, fmt.Errorf("Count: %w", err)
		}
		return 0, fmt.Errorf("Count: no row returned")
	}
	if err := rows.Scan(&count); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}
