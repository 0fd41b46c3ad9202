package repository

import (
	"context"

	"person-api/internal/domain/entity"
)

type PersonRepository interface {
	// Create stores a new person record and fills in the generated ID
	// and creation timestamp.
	Create(ctx context.Context, person *entity.Person) error
	Get(ctx context.Context, id int64) (*entity.Person, error)
	List(ctx context.Context) ([]*entity.Person, error)
	// ListPaginated retrieves person records ordered by creation time DESC.
	// Parameters:
	//   - offset: Number of rows to skip (calculated from page number)
	//   - limit: Maximum number of rows to return
	ListPaginated(ctx context.Context, offset, limit int) ([]*entity.Person, error)
	// Count returns the total number of person records.
	// This is used for calculating pagination metadata (total pages, etc.).
	Count(ctx context.Context) (int64, error)
}
