// Package db opens the PostgreSQL pool and keeps its schema current.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	pkgcfg "person-api/internal/pkg/config"
)

// ErrMissingDSN is returned when DATABASE_URL is not set.
var ErrMissingDSN = errors.New("DATABASE_URL not set")

// ConnectionConfig holds the connection pool settings.
type ConnectionConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultConnectionConfig returns pool settings sized for the API's
// modest write load.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		MaxOpenConns:    25,
		MaxIdleConns:    10,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: 30 * time.Minute,
	}
}

// Open connects to PostgreSQL using DATABASE_URL, applies the pool
// settings from the environment, and verifies the connection with a
// ping before handing the pool out.
func Open() (*sql.DB, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return nil, ErrMissingDSN
	}

	pool, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	cfg := loadConnectionConfig()
	pool.SetMaxOpenConns(cfg.MaxOpenConns)
	pool.SetMaxIdleConns(cfg.MaxIdleConns)
	pool.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	pool.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	slog.Info("database connection pool configured",
		slog.Int("max_open_conns", cfg.MaxOpenConns),
		slog.Int("max_idle_conns", cfg.MaxIdleConns),
		slog.Duration("conn_max_lifetime", cfg.ConnMaxLifetime),
		slog.Duration("conn_max_idle_time", cfg.ConnMaxIdleTime))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.PingContext(ctx); err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// loadConnectionConfig reads pool settings from the DB_* environment
// variables. A value that does not parse or validate falls back to its
// default with a logged warning, never a startup failure.
func loadConnectionConfig() ConnectionConfig {
	def := DefaultConnectionConfig()

	maxOpen := pkgcfg.LoadInt("DB_MAX_OPEN_CONNS", def.MaxOpenConns, func(v int) error {
		return pkgcfg.ValidateIntRange(v, 1, 1000)
	})
	maxIdle := pkgcfg.LoadInt("DB_MAX_IDLE_CONNS", def.MaxIdleConns, func(v int) error {
		return pkgcfg.ValidateIntRange(v, 1, 1000)
	})
	lifetime := pkgcfg.LoadDuration("DB_CONN_MAX_LIFETIME", def.ConnMaxLifetime, pkgcfg.ValidatePositiveDuration)
	idleTime := pkgcfg.LoadDuration("DB_CONN_MAX_IDLE_TIME", def.ConnMaxIdleTime, pkgcfg.ValidatePositiveDuration)

	notePoolWarnings("DBMaxOpenConns", maxOpen.Warnings)
	notePoolWarnings("DBMaxIdleConns", maxIdle.Warnings)
	notePoolWarnings("DBConnMaxLifetime", lifetime.Warnings)
	notePoolWarnings("DBConnMaxIdleTime", idleTime.Warnings)

	return ConnectionConfig{
		MaxOpenConns:    maxOpen.Value,
		MaxIdleConns:    maxIdle.Value,
		ConnMaxLifetime: lifetime.Value,
		ConnMaxIdleTime: idleTime.Value,
	}
}

func notePoolWarnings(field string, warnings []string) {
	for _, w := range warnings {
		slog.Warn("Configuration fallback applied",
			slog.String("field", field),
			slog.String("warning", w))
	}
}
