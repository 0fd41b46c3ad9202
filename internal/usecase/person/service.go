package person

import (
	"context"
	"fmt"

	"person-api/internal/common/pagination"
	"person-api/internal/domain/entity"
	"person-api/internal/observability/metrics"
	"person-api/internal/repository"
)

// CreateInput represents the input parameters for creating a new person.
type CreateInput struct {
	Name     string
	LastName string
}

// Guess carries the gender data the lookup service returned for a name.
// A nil Gender means the service did not recognize the name; the person
// is still stored in that case.
type Guess struct {
	Gender      *string
	Probability *float64
	Count       int64
}

// Enricher looks up gender data for a first name.
type Enricher interface {
	Enrich(ctx context.Context, name string) (Guess, error)
}

// Service provides person management use cases.
// It validates input, enriches new records through the external lookup
// service and delegates persistence to the repository.
type Service struct {
	Repo     repository.PersonRepository
	Enricher Enricher
}

// PaginatedResult represents the result of a paginated query.
// It contains both the data and pagination metadata.
type PaginatedResult struct {
	Data       []*entity.Person
	Pagination pagination.Metadata
}

// Create validates the input, enriches it with gender data and stores the
// resulting person. The returned entity has its generated ID and creation
// timestamp filled in.
// Returns a ValidationError if any input field is invalid.
// An enrichment failure aborts the creation; the error chain keeps the
// lookup client's classification so callers can map it to a status code.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Person, error) {
	person := &entity.Person{Name: in.Name, LastName: in.LastName}
	if err := person.Validate(); err != nil {
		return nil, err
	}

	guess, err := s.Enricher.Enrich(ctx, person.Name)
	if err != nil {
		return nil, fmt.Errorf("enrich person: %w", err)
	}
	person.Gender = guess.Gender
	person.Probability = guess.Probability
	person.Count = guess.Count

	if err := s.Repo.Create(ctx, person); err != nil {
		return nil, fmt.Errorf("create person: %w", err)
	}

	metrics.RecordPersonCreated(person.Gender != nil)
	return person, nil
}

// Get retrieves a single person by ID.
// Returns ErrInvalidPersonID if the ID is not positive.
// Returns ErrPersonNotFound if the person does not exist.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Person, error) {
	if id <= 0 {
		return nil, ErrInvalidPersonID
	}

	person, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get person: %w", err)
	}
	if person == nil {
		return nil, ErrPersonNotFound
	}
	return person, nil
}

// List retrieves all persons from the repository.
// Returns an error if the repository operation fails.
func (s *Service) List(ctx context.Context) ([]*entity.Person, error) {
	persons, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list persons: %w", err)
	}
	return persons, nil
}

// ListPaginated retrieves persons with pagination support.
// It calculates the appropriate offset, retrieves the data and total count,
// and returns a PaginatedResult with both data and metadata.
func (s *Service) ListPaginated(ctx context.Context, params pagination.Params) (*PaginatedResult, error) {
	offset := pagination.CalculateOffset(params.Page, params.Limit)

	total, err := s.Repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count persons: %w", err)
	}

	persons, err := s.Repo.ListPaginated(ctx, offset, params.Limit)
	if err != nil {
		return nil, fmt.Errorf("list persons paginated: %w", err)
	}

	totalPages := pagination.CalculateTotalPages(total, params.Limit)

	return &PaginatedResult{
		Data: persons,
		Pagination: pagination.Metadata{
			Total:      total,
			Page:       params.Page,
			Limit:      params.Limit,
			TotalPages: totalPages,
		},
	}, nil
}
