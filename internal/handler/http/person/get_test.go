package person_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"person-api/internal/domain/entity"
	"person-api/internal/handler/http/person"
	personUC "person-api/internal/usecase/person"
)

/* ───────── Stubs ───────── */

type stubGetRepo struct {
	person *entity.Person
	getErr error
}

func (s *stubGetRepo) Get(_ context.Context, id int64) (*entity.Person, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	if s.person != nil && s.person.ID == id {
		return s.person, nil
	}
	return nil, nil
}

// Remaining methods satisfy the repository interface but are unused here.
func (s *stubGetRepo) Create(_ context.Context, _ *entity.Person) error {
	return nil
}
func (s *stubGetRepo) List(_ context.Context) ([]*entity.Person, error) {
	return nil, nil
}
func (s *stubGetRepo) ListPaginated(_ context.Context, _, _ int) ([]*entity.Person, error) {
	return nil, nil
}
func (s *stubGetRepo) Count(_ context.Context) (int64, error) {
	return 0, nil
}

/* ───────── Tests ───────── */

func TestGetHandler_Success(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	stub := &stubGetRepo{
		person: &entity.Person{
			ID:          1,
			Name:        "Riccardo",
			LastName:    "Rossi",
			Gender:      strptr("male"),
			Probability: f64ptr(0.98),
			Count:       120,
			CreatedAt:   now,
		},
	}

	handler := person.GetHandler{Svc: personUC.Service{Repo: stub}}

	req := httptest.NewRequest(http.MethodGet, "/person/1", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusOK)
	}

	var result person.DTO
	if err := json.NewDecoder(rr.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if result.ID != 1 {
		t.Errorf("result.ID = %d, want 1", result.ID)
	}
	if result.Name != "Riccardo" {
		t.Errorf("result.Name = %q, want %q", result.Name, "Riccardo")
	}
	if result.LastName != "Rossi" {
		t.Errorf("result.LastName = %q, want %q", result.LastName, "Rossi")
	}
	if result.Gender == nil || *result.Gender != "male" {
		t.Errorf("result.Gender = %v, want male", result.Gender)
	}
	if result.Probability == nil || *result.Probability != 0.98 {
		t.Errorf("result.Probability = %v, want 0.98", result.Probability)
	}
	if !result.CreatedAt.Equal(now) {
		t.Errorf("result.CreatedAt = %v, want %v", result.CreatedAt, now)
	}
}

func TestGetHandler_InvalidID(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{
			name: "zero id",
			path: "/person/0",
		},
		{
			name: "negative id",
			path: "/person/-1",
		},
		{
			name: "non-numeric id",
			path: "/person/abc",
		},
		{
			name: "empty id",
			path: "/person/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubGetRepo{}
			handler := person.GetHandler{Svc: personUC.Service{Repo: stub}}

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status code = %d, want %d", rr.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestGetHandler_NotFound(t *testing.T) {
	stub := &stubGetRepo{}
	handler := person.GetHandler{Svc: personUC.Service{Repo: stub}}

	req := httptest.NewRequest(http.MethodGet, "/person/999", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestGetHandler_DatabaseError(t *testing.T) {
	stub := &stubGetRepo{
		getErr: errors.New("database connection error"),
	}
	handler := person.GetHandler{Svc: personUC.Service{Repo: stub}}

	req := httptest.NewRequest(http.MethodGet, "/person/1", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
}

func TestGetHandler_UnrecognizedName(t *testing.T) {
	// Records stored without enrichment data come back without gender
	// and probability fields
	stub := &stubGetRepo{
		person: &entity.Person{
			ID:       5,
			Name:     "Zxqw",
			LastName: "Unknown",
		},
	}
	handler := person.GetHandler{Svc: personUC.Service{Repo: stub}}

	req := httptest.NewRequest(http.MethodGet, "/person/5", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusOK)
	}

	var result person.DTO
	if err := json.NewDecoder(rr.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.Gender != nil {
		t.Errorf("result.Gender = %v, want nil", *result.Gender)
	}
	if result.Count != 0 {
		t.Errorf("result.Count = %d, want 0", result.Count)
	}
}
