package person

import (
	"log/slog"
	"net/http"

	"person-api/internal/common/pagination"
	personUC "person-api/internal/usecase/person"
)

// Register registers all person-related HTTP handlers with the given mux.
// It sets up routes for creating a person, retrieving one by ID and
// listing stored records.
func Register(mux *http.ServeMux, svc personUC.Service, paginationCfg pagination.Config, logger *slog.Logger) {
	mux.Handle("POST /person", CreateHandler{svc})
	mux.Handle("GET  /person/", GetHandler{svc})
	mux.Handle("GET  /persons", ListHandler{
		Svc:           svc,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	})
}
