package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"person-api/internal/domain/entity"
	"person-api/internal/observability/metrics"
	"person-api/internal/repository"
	"person-api/internal/resilience/circuitbreaker"
)

type PersonRepo struct{ cb *circuitbreaker.DBCircuitBreaker }

// NewPersonRepo creates a person repository that runs its queries through
// the shared database circuit breaker.
func NewPersonRepo(cb *circuitbreaker.DBCircuitBreaker) repository.PersonRepository {
	return &PersonRepo{cb: cb}
}

// scanPerson is a helper function to scan a person row
func scanPerson(rows *sql.Rows) (*entity.Person, error) {
	var person entity.Person
	if err := rows.Scan(
		&person.ID, &person.Name, &person.LastName,
		&person.Gender, &person.Probability, &person.Count,
		&person.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &person, nil
}

func (repo *PersonRepo) Create(ctx context.Context, person *entity.Person) error {
	const query = `
INSERT INTO persons (name, last_name, gender, probability, count)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at`
	start := time.Now()
	rows, err := repo.cb.QueryContext(ctx, query,
		person.Name, person.LastName,
		person.Gender, person.Probability, person.Count,
	)
	metrics.RecordDBQuery("insert_person", time.Since(start))
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	defer func() { _ = rows.Close() }()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return fmt.Errorf("Create: %w", err)
		}
		return fmt.Errorf("Create: no row returned")
	}
	if err := rows.Scan(&person.ID, &person.CreatedAt); err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *PersonRepo) Get(ctx context.Context, id int64) (*entity.Person, error) {
	const query = `
SELECT id, name, last_name, gender, probability, count, created_at
FROM persons
WHERE id = $1
LIMIT 1`
	start := time.Now()
	rows, err := repo.cb.QueryContext(ctx, query, id)
	metrics.RecordDBQuery("select_person", time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	defer func() { _ = rows.Close() }()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("Get: %w", err)
		}
		return nil, nil
	}
	return scanPerson(rows)
}

func (repo *PersonRepo) List(ctx context.Context) ([]*entity.Person, error) {
	const query = `
SELECT id, name, last_name, gender, probability, count, created_at
FROM persons
ORDER BY created_at DESC, id DESC`
	start := time.Now()
	rows, err := repo.cb.QueryContext(ctx, query)
	metrics.RecordDBQuery("list_persons", time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	persons := make([]*entity.Person, 0, 50)
	for rows.Next() {
		person, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("List: %w", err)
		}
		persons = append(persons, person)
	}
	return persons, rows.Err()
}

func (repo *PersonRepo) ListPaginated(ctx context.Context, offset, limit int) ([]*entity.Person, error) {
	const query = `
SELECT id, name, last_name, gender, probability, count, created_at
FROM persons
ORDER BY created_at DESC, id DESC
LIMIT $1 OFFSET $2`
	start := time.Now()
	rows, err := repo.cb.QueryContext(ctx, query, limit, offset)
	metrics.RecordDBQuery("list_persons_paginated", time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("ListPaginated: %w", err)
	}
	defer func() { _ = rows.Close() }()

	persons := make([]*entity.Person, 0, limit)
	for rows.Next() {
		person, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("ListPaginated: %w", err)
		}
		persons = append(persons, person)
	}
	return persons, rows.Err()
}

func (repo *PersonRepo) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM persons`
	start := time.Now()
	rows, err := repo.cb.QueryContext(ctx, query)
	metrics.RecordDBQuery("count_persons", time.Since(start))
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
