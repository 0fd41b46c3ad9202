package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"person-api/internal/infra/adapter/persistence/postgres"
	"person-api/internal/observability/exchange"
	"person-api/internal/repository"
	"person-api/internal/resilience/circuitbreaker"
)

func newExchangeLogRepo(t *testing.T) (repository.ExchangeLogRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New err=%v", err)
	}
	repo := postgres.NewExchangeLogRepo(circuitbreaker.NewDBCircuitBreaker(db))
	return repo, mock, func() { _ = db.Close() }
}

/* ──────────────────────────────── 1. Write ──────────────────────────────── */

func TestExchangeLogRepo_Write(t *testing.T) {
	repo, mock, cleanup := newExchangeLogRepo(t)
	defer cleanup()

	entry := "--- REQUEST GET https://api.genderize.io/?name=riccardo\nAccept: application/json\n"
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO exchange_logs`)).
		WithArgs("request", entry).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Write(context.Background(), exchange.DirectionRequest, entry); err != nil {
		t.Fatalf("Write err=%v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestExchangeLogRepo_Write_Error(t *testing.T) {
	repo, mock, cleanup := newExchangeLogRepo(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO exchange_logs`)).
		WillReturnError(errors.New("connection reset"))

	err := repo.Write(context.Background(), exchange.DirectionResponse, "--- RESPONSE 200")
	if err == nil {
		t.Fatal("Write should surface exec errors")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

// The repository must satisfy exchange.Sink so it can be wired straight
// into the capture transport.
var _ exchange.Sink = (*postgres.ExchangeLogRepo)(nil)

/* ──────────────────────────────── 2. DeleteOlderThan ──────────────────────────────── */

func TestExchangeLogRepo_DeleteOlderThan(t *testing.T) {
	repo, mock, cleanup := newExchangeLogRepo(t)
	defer cleanup()

	cutoff := time.Now().Add(-14 * 24 * time.Hour)
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM exchange_logs WHERE captured_at < $1`)).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 42))

	n, err := repo.DeleteOlderThan(context.Background(), cutoff)
	if err != nil {
		t.Fatalf("DeleteOlderThan err=%v", err)
	}
	if n != 42 {
		t.Fatalf("DeleteOlderThan expected 42 rows, got %d", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestExchangeLogRepo_DeleteOlderThan_NoRows(t *testing.T) {
	repo, mock, cleanup := newExchangeLogRepo(t)
	defer cleanup()

	cutoff := time.Now()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM exchange_logs`)).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := repo.DeleteOlderThan(context.Background(), cutoff)
	if err != nil {
		t.Fatalf("DeleteOlderThan err=%v", err)
	}
	if n != 0 {
		t.Fatalf("DeleteOlderThan expected 0 rows, got %d", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestExchangeLogRepo_DeleteOlderThan_ResultError(t *testing.T) {
	repo, mock, cleanup := newExchangeLogRepo(t)
	defer cleanup()

	cutoff := time.Now()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM exchange_logs`)).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewErrorResult(errors.New("rows affected unsupported")))

	if _, err := repo.DeleteOlderThan(context.Background(), cutoff); err == nil {
		t.Fatal("DeleteOlderThan should surface RowsAffected errors")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

/* ──────────────────────────────── 3. Count ──────────────────────────────── */

func TestExchangeLogRepo_Count(t *testing.T) {
	repo, mock, cleanup := newExchangeLogRepo(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM exchange_logs`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(7)))

	got, err := repo.Count(context.Background())
	if err != nil {
		t.Fatalf("Count err=%v", err)
	}
	if got != 7 {
		t.Fatalf("Count expected 7, got %d", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
