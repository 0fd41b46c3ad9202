package person

import (
	"encoding/json"
	"errors"
	"net/http"

	"person-api/internal/domain/entity"
	"person-api/internal/handler/http/respond"
	"person-api/internal/infra/genderize"
	personUC "person-api/internal/usecase/person"
)

type CreateHandler struct{ Svc personUC.Service }

// ServeHTTP creates a person record.
// @Summary      Create person
// @Description  Validates the input, enriches it with gender data from the external lookup service and stores the record
// @Tags         persons
// @Accept       json
// @Produce      json
// @Param        person body object true "Person name fields"
// @Success      200 {object} DTO "Created person"
// @Failure      400 {string} string "Bad request - invalid input or lookup failure"
// @Failure      500 {string} string "Server error"
// @Router       /person [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		LastName string `json:"lastName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Name == "" || req.LastName == "" {
		respond.SafeError(w, http.StatusBadRequest,
			errors.New("name and lastName are required"))
		return
	}

	created, err := h.Svc.Create(r.Context(), personUC.CreateInput{
		Name:     req.Name,
		LastName: req.LastName,
	})
	if err != nil {
		var callErr *genderize.CallError
		var valErr *entity.ValidationError
		switch {
		case errors.As(err, &callErr):
			// The classification message is client-safe; transport detail
			// stays in the logs and the exchange sink.
			respond.SafeErrorV2(w, http.StatusBadRequest,
				respond.NewAppError(http.StatusBadRequest, callErr.Message, err))
		case errors.As(err, &valErr):
			respond.SafeError(w, http.StatusBadRequest, err)
		default:
			respond.SafeError(w, http.StatusInternalServerError, err)
		}
		return
	}

	respond.JSON(w, http.StatusOK, fromEntity(created))
}
