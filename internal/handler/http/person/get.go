package person

import (
	"errors"
	"net/http"

	"person-api/internal/handler/http/pathutil"
	"person-api/internal/handler/http/respond"
	personUC "person-api/internal/usecase/person"
)

type GetHandler struct{ Svc personUC.Service }

// ServeHTTP retrieves a single person.
// @Summary      Get person
// @Description  Returns the person with the given ID, including enrichment data
// @Tags         persons
// @Produce      json
// @Param        id path int true "Person ID"
// @Success      200 {object} DTO "Person"
// @Failure      400 {string} string "Bad request - invalid person ID"
// @Failure      404 {string} string "Not found - person not found"
// @Failure      500 {string} string "Server error"
// @Router       /person/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/person/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	p, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, personUC.ErrInvalidPersonID) {
			code = http.StatusBadRequest
		} else if errors.Is(err, personUC.ErrPersonNotFound) {
			code = http.StatusNotFound
		}
		respond.SafeError(w, code, err)
		return
	}

	respond.JSON(w, http.StatusOK, fromEntity(p))
}
