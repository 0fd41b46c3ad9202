package pagination

// Metadata is the pagination block included in list responses.
type Metadata struct {
	Total      int64 `json:"total"`       // Items across all pages
	Page       int   `json:"page"`        // Current page, 1-based
	Limit      int   `json:"limit"`       // Items per page
	TotalPages int   `json:"total_pages"` // ceil(Total/Limit), at least 1
}

// Response pairs one page of items with its pagination metadata.
//
//	resp := pagination.NewResponse(dtos, meta)
//	// resp marshals as {"data":[...],"pagination":{...}}
type Response[T any] struct {
	Data       []T      `json:"data"`
	Pagination Metadata `json:"pagination"`
}

// NewResponse builds a Response from one page of data and its metadata.
func NewResponse[T any](data []T, metadata Metadata) Response[T] {
	return Response[T]{
		Data:       data,
		Pagination: metadata,
	}
}
