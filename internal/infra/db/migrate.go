package db

import (
	"database/sql"
)

func MigrateUp(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS persons (
    id          SERIAL PRIMARY KEY,
    name        TEXT NOT NULL,
    last_name   TEXT NOT NULL,
    gender      VARCHAR(10),
    probability DOUBLE PRECISION,
    count       BIGINT NOT NULL DEFAULT 0,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	// Exchange logs grow with every captured request/response pair,
	// hence BIGSERIAL
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS exchange_logs (
    id          BIGSERIAL PRIMARY KEY,
    direction   VARCHAR(10) NOT NULL,
    entry       TEXT NOT NULL,
    captured_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	indexes := []string{
		// Used by ORDER BY created_at DESC in every listing query
		`CREATE INDEX IF NOT EXISTS idx_persons_created_at ON persons(created_at DESC)`,
		// The retention job deletes by capture time
		`CREATE INDEX IF NOT EXISTS idx_exchange_logs_captured_at ON exchange_logs(captured_at)`,
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}

	return nil
}

// MigrateDown drops everything MigrateUp created, in reverse order.
// It deletes all data in the affected tables.
func MigrateDown(db *sql.DB) error {
	dropStatements := []string{
		`DROP INDEX IF EXISTS idx_exchange_logs_captured_at`,
		`DROP TABLE IF EXISTS exchange_logs`,
		`DROP INDEX IF EXISTS idx_persons_created_at`,
		`DROP TABLE IF EXISTS persons`,
	}

	for _, stmt := range dropStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
