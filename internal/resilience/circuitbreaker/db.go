package circuitbreaker

import (
	"context"
	"database/sql"
	"time"

	"github.com/sony/gobreaker"
)

// DBCircuitBreaker runs database queries through a circuit breaker so a
// database outage fails fast instead of piling up blocked requests. The
// persistence adapters hold one shared instance per connection pool.
type DBCircuitBreaker struct {
	cb *CircuitBreaker
	db *sql.DB
}

// DBConfig returns the breaker configuration used for the database.
// A threshold of 1.0 with five minimum requests means the breaker only
// opens after five consecutive failures, so a single slow query or
// serialization error never takes the pool offline.
func DBConfig() Config {
	return Config{
		Name:             "database",
		MaxRequests:      3,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 1.0,
		MinRequests:      5,
	}
}

// NewDBCircuitBreaker wraps db with the default database breaker.
func NewDBCircuitBreaker(db *sql.DB) *DBCircuitBreaker {
	return NewDBCircuitBreakerWithConfig(db, DBConfig())
}

// NewDBCircuitBreakerWithConfig wraps db with a custom breaker configuration.
func NewDBCircuitBreakerWithConfig(db *sql.DB, cfg Config) *DBCircuitBreaker {
	return &DBCircuitBreaker{cb: New(cfg), db: db}
}

// QueryContext runs a query through the breaker. While the breaker is
// open it returns gobreaker.ErrOpenState without touching the database.
func (b *DBCircuitBreaker) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	v, err := b.cb.Execute(func() (any, error) {
		return b.db.QueryContext(ctx, query, args...)
	})
	if err != nil {
		return nil, err
	}
	return v.(*sql.Rows), nil
}

// ExecContext runs a statement through the breaker. While the breaker
// is open it returns gobreaker.ErrOpenState without touching the database.
func (b *DBCircuitBreaker) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	v, err := b.cb.Execute(func() (any, error) {
		return b.db.ExecContext(ctx, query, args...)
	})
	if err != nil {
		return nil, err
	}
	return v.(sql.Result), nil
}

// State returns the current breaker state.
func (b *DBCircuitBreaker) State() gobreaker.State {
	return b.cb.State()
}

// IsOpen reports whether the breaker is currently rejecting queries.
func (b *DBCircuitBreaker) IsOpen() bool {
	return b.cb.IsOpen()
}
