package person_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"person-api/internal/common/pagination"
	"person-api/internal/domain/entity"
	personUC "person-api/internal/usecase/person"
)

/* ───────── Stubs ───────── */

// Minimal in-memory PersonRepository.
type stubRepo struct {
	data   map[int64]*entity.Person
	nextID int64
	err    error // forces every method to fail when set
}

func newStub() *stubRepo {
	return &stubRepo{data: map[int64]*entity.Person{}, nextID: 1}
}

func (s *stubRepo) Create(_ context.Context, p *entity.Person) error {
	if s.err != nil {
		return s.err
	}
	p.ID = s.nextID
	p.CreatedAt = time.Now()
	s.nextID++
	s.data[p.ID] = p
	return nil
}

func (s *stubRepo) Get(_ context.Context, id int64) (*entity.Person, error) {
	return s.data[id], s.err
}

func (s *stubRepo) List(_ context.Context) ([]*entity.Person, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*entity.Person
	for _, v := range s.data {
		out = append(out, v)
	}
	return out, nil
}

func (s *stubRepo) ListPaginated(_ context.Context, offset, limit int) ([]*entity.Person, error) {
	if s.err != nil {
		return nil, s.err
	}
	var all []*entity.Person
	for _, v := range s.data {
		all = append(all, v)
	}
	if offset >= len(all) {
		return []*entity.Person{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (s *stubRepo) Count(_ context.Context) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	return int64(len(s.data)), nil
}

// stubEnricher returns a fixed guess and records how it was called.
type stubEnricher struct {
	guess    personUC.Guess
	err      error
	calls    int
	lastName string
}

func (e *stubEnricher) Enrich(_ context.Context, name string) (personUC.Guess, error) {
	e.calls++
	e.lastName = name
	if e.err != nil {
		return personUC.Guess{}, e.err
	}
	return e.guess, nil
}

func strptr(s string) *string   { return &s }
func f64ptr(f float64) *float64 { return &f }

/* ───────── 1. Create: validation ───────── */

func TestService_Create_validation(t *testing.T) {
	tests := []struct {
		name  string
		input personUC.CreateInput
	}{
		{"empty name", personUC.CreateInput{Name: "", LastName: "Rossi"}},
		{"empty last name", personUC.CreateInput{Name: "Riccardo", LastName: ""}},
		{"control characters", personUC.CreateInput{Name: "Ric\x00cardo", LastName: "Rossi"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enricher := &stubEnricher{}
			svc := personUC.Service{Repo: newStub(), Enricher: enricher}

			_, err := svc.Create(context.Background(), tt.input)
			if err == nil {
				t.Fatal("want validation error, got nil")
			}
			var vErr *entity.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("want ValidationError, got %v", err)
			}
			if enricher.calls != 0 {
				t.Fatalf("enricher called %d times for invalid input", enricher.calls)
			}
		})
	}
}

/* ───────── 2. Create: enrichment applied ───────── */

func TestService_Create_success(t *testing.T) {
	stub := newStub()
	enricher := &stubEnricher{guess: personUC.Guess{
		Gender: strptr("male"), Probability: f64ptr(0.98), Count: 120,
	}}
	svc := personUC.Service{Repo: stub, Enricher: enricher}

	got, err := svc.Create(context.Background(), personUC.CreateInput{
		Name: "Riccardo", LastName: "Rossi",
	})
	if err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if got.ID == 0 {
		t.Fatal("Create did not fill in the generated ID")
	}
	if enricher.lastName != "Riccardo" {
		t.Fatalf("enricher called with %q, want Riccardo", enricher.lastName)
	}
	if got.Gender == nil || *got.Gender != "male" {
		t.Fatalf("gender not applied: %+v", got)
	}
	if got.Probability == nil || *got.Probability != 0.98 {
		t.Fatalf("probability not applied: %+v", got)
	}
	if got.Count != 120 {
		t.Fatalf("count not applied: %+v", got)
	}
	if len(stub.data) != 1 {
		t.Fatalf("want 1 person stored, got %d", len(stub.data))
	}
}

/* ───────── 3. Create: unknown name still stored ───────── */

func TestService_Create_unknownName(t *testing.T) {
	stub := newStub()
	svc := personUC.Service{Repo: stub, Enricher: &stubEnricher{}}

	got, err := svc.Create(context.Background(), personUC.CreateInput{
		Name: "Zzyzx", LastName: "Smith",
	})
	if err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if got.Gender != nil || got.Probability != nil {
		t.Fatalf("want nil enrichment fields, got %+v", got)
	}
	if len(stub.data) != 1 {
		t.Fatalf("want 1 person stored, got %d", len(stub.data))
	}
}

/* ───────── 4. Create: enrichment failure aborts ───────── */

func TestService_Create_enrichmentError(t *testing.T) {
	stub := newStub()
	lookupErr := errors.New("lookup blew up")
	svc := personUC.Service{Repo: stub, Enricher: &stubEnricher{err: lookupErr}}

	_, err := svc.Create(context.Background(), personUC.CreateInput{
		Name: "Riccardo", LastName: "Rossi",
	})
	if !errors.Is(err, lookupErr) {
		t.Fatalf("want wrapped lookup error, got %v", err)
	}
	if len(stub.data) != 0 {
		t.Fatalf("person stored despite enrichment failure: %d", len(stub.data))
	}
}

/* ───────── 5. Create: repository failure ───────── */

func TestService_Create_repoError(t *testing.T) {
	stub := newStub()
	stub.err = errors.New("db down")
	svc := personUC.Service{Repo: stub, Enricher: &stubEnricher{}}

	_, err := svc.Create(context.Background(), personUC.CreateInput{
		Name: "Riccardo", LastName: "Rossi",
	})
	if err == nil {
		t.Fatal("want repository error, got nil")
	}
}

/* ───────── 6. Get ───────── */

func TestService_Get(t *testing.T) {
	tests := []struct {
		name      string
		id        int64
		setupRepo func(*stubRepo)
		wantErr   error
	}{
		{
			name:      "invalid id - zero",
			id:        0,
			setupRepo: func(s *stubRepo) {},
			wantErr:   personUC.ErrInvalidPersonID,
		},
		{
			name:      "invalid id - negative",
			id:        -1,
			setupRepo: func(s *stubRepo) {},
			wantErr:   personUC.ErrInvalidPersonID,
		},
		{
			name:      "person not found",
			id:        999,
			setupRepo: func(s *stubRepo) {},
			wantErr:   personUC.ErrPersonNotFound,
		},
		{
			name: "person found",
			id:   1,
			setupRepo: func(s *stubRepo) {
				s.data[1] = &entity.Person{ID: 1, Name: "Riccardo", LastName: "Rossi"}
			},
		},
		{
			name: "repository error",
			id:   1,
			setupRepo: func(s *stubRepo) {
				s.err = errors.New("database error")
			},
			wantErr: errors.New("get person"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := newStub()
			tt.setupRepo(stub)
			svc := personUC.Service{Repo: stub, Enricher: &stubEnricher{}}

			got, err := svc.Get(context.Background(), tt.id)

			if tt.wantErr != nil {
				if err == nil {
					t.Fatalf("Get() error = nil, wantErr %v", tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Get() unexpected error = %v", err)
			}
			if got.ID != tt.id {
				t.Fatalf("Get() got ID = %d, want %d", got.ID, tt.id)
			}
		})
	}
}

func TestService_Get_sentinels(t *testing.T) {
	svc := personUC.Service{Repo: newStub(), Enricher: &stubEnricher{}}

	if _, err := svc.Get(context.Background(), 0); !errors.Is(err, personUC.ErrInvalidPersonID) {
		t.Fatalf("want ErrInvalidPersonID, got %v", err)
	}
	if _, err := svc.Get(context.Background(), 42); !errors.Is(err, personUC.ErrPersonNotFound) {
		t.Fatalf("want ErrPersonNotFound, got %v", err)
	}
}

/* ───────── 7. List ───────── */

func TestService_List(t *testing.T) {
	tests := []struct {
		name      string
		setupRepo func(*stubRepo)
		wantCount int
		wantErr   bool
	}{
		{
			name:      "empty list",
			setupRepo: func(s *stubRepo) {},
			wantCount: 0,
		},
		{
			name: "multiple persons",
			setupRepo: func(s *stubRepo) {
				s.data[1] = &entity.Person{ID: 1, Name: "Riccardo", LastName: "Rossi"}
				s.data[2] = &entity.Person{ID: 2, Name: "Maria", LastName: "Bianchi"}
			},
			wantCount: 2,
		},
		{
			name: "repository error",
			setupRepo: func(s *stubRepo) {
				s.err = errors.New("database error")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := newStub()
			tt.setupRepo(stub)
			svc := personUC.Service{Repo: stub, Enricher: &stubEnricher{}}

			persons, err := svc.List(context.Background())

			if (err != nil) != tt.wantErr {
				t.Fatalf("List() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && len(persons) != tt.wantCount {
				t.Fatalf("List() got %d persons, want %d", len(persons), tt.wantCount)
			}
		})
	}
}

/* ───────── 8. ListPaginated ───────── */

func TestService_ListPaginated(t *testing.T) {
	tests := []struct {
		name           string
		params         pagination.Params
		seed           int
		wantDataCount  int
		wantTotal      int64
		wantTotalPages int
	}{
		{
			name:           "first page",
			params:         pagination.Params{Page: 1, Limit: 10},
			seed:           15,
			wantDataCount:  10,
			wantTotal:      15,
			wantTotalPages: 2,
		},
		{
			name:           "second page",
			params:         pagination.Params{Page: 2, Limit: 10},
			seed:           15,
			wantDataCount:  5,
			wantTotal:      15,
			wantTotalPages: 2,
		},
		{
			name:           "empty result",
			params:         pagination.Params{Page: 1, Limit: 10},
			seed:           0,
			wantDataCount:  0,
			wantTotal:      0,
			wantTotalPages: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := newStub()
			for i := 0; i < tt.seed; i++ {
				stub.data[int64(i+1)] = &entity.Person{
					ID: int64(i + 1), Name: "Riccardo", LastName: "Rossi",
				}
			}
			svc := personUC.Service{Repo: stub, Enricher: &stubEnricher{}}

			result, err := svc.ListPaginated(context.Background(), tt.params)
			if err != nil {
				t.Fatalf("ListPaginated() unexpected error = %v", err)
			}

			if len(result.Data) != tt.wantDataCount {
				t.Errorf("Data count = %d, want %d", len(result.Data), tt.wantDataCount)
			}
			if result.Pagination.Total != tt.wantTotal {
				t.Errorf("Pagination.Total = %d, want %d", result.Pagination.Total, tt.wantTotal)
			}
			if result.Pagination.Page != tt.params.Page {
				t.Errorf("Pagination.Page = %d, want %d", result.Pagination.Page, tt.params.Page)
			}
			if result.Pagination.TotalPages != tt.wantTotalPages {
				t.Errorf("Pagination.TotalPages = %d, want %d", result.Pagination.TotalPages, tt.wantTotalPages)
			}
		})
	}
}

func TestService_ListPaginated_Error(t *testing.T) {
	stub := newStub()
	stub.err = errors.New("database error")
	svc := personUC.Service{Repo: stub, Enricher: &stubEnricher{}}

	if _, err := svc.ListPaginated(context.Background(), pagination.Params{Page: 1, Limit: 10}); err == nil {
		t.Fatal("ListPaginated() error = nil, want error")
	}
}
