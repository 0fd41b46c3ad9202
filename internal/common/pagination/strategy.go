package pagination

// PaginationStrategy abstracts how Params translate into a database
// query and back into response metadata. Offset paging is the only
// implementation; a cursor-based strategy would plug in here once
// listings grow past the point where OFFSET scans hurt.
type PaginationStrategy interface {
	// CalculateQuery returns the query parameters for the page.
	CalculateQuery(params Params) QueryParams

	// BuildMetadata constructs response metadata from query results.
	// hasMore only matters to cursor strategies; offset paging derives
	// everything from the total.
	BuildMetadata(params Params, total int64, hasMore bool) Metadata
}

// QueryParams is what a strategy hands the repository layer.
type QueryParams struct {
	Offset int     // Offset paging
	Limit  int     // All strategies
	Cursor *string // Cursor paging, unused today
	After  *string // Keyset paging, unused today
}

// OffsetStrategy implements classic LIMIT/OFFSET pagination.
type OffsetStrategy struct{}

func (s OffsetStrategy) CalculateQuery(params Params) QueryParams {
	return QueryParams{
		Offset: CalculateOffset(params.Page, params.Limit),
		Limit:  params.Limit,
	}
}

func (s OffsetStrategy) BuildMetadata(params Params, total int64, hasMore bool) Metadata {
	return Metadata{
		Total:      total,
		Page:       params.Page,
		Limit:      params.Limit,
		TotalPages: CalculateTotalPages(total, params.Limit),
	}
}

// CalculateOffset maps a 1-based page number onto a row offset:
// page 1 starts at row 0, page 2 at row limit, and so on.
func CalculateOffset(page, limit int) int {
	return (page - 1) * limit
}

// CalculateTotalPages returns ceil(total/limit), with a floor of one
// page so an empty listing still renders as page 1 of 1.
func CalculateTotalPages(total int64, limit int) int {
	if total == 0 {
		return 1
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
