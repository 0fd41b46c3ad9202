// Package fixtures provides reusable test data generators for integration tests.
// This package eliminates test data duplication and ensures consistent test content
// across different test suites.
package fixtures

import (
	"encoding/json"
	"time"

	"person-api/internal/domain/entity"
)

// referenceTime anchors generated timestamps so comparisons stay
// deterministic across runs.
var referenceTime = time.Date(2025, time.October, 26, 12, 0, 0, 0, time.UTC)

// PersonOptions configures the generated person record.
type PersonOptions struct {
	// ID is the record identifier. Zero leaves it unset, which suits
	// insert-style tests where the store assigns the ID.
	ID int64

	// Name and LastName fall back to "Riccardo" and "Rossi" when empty.
	Name     string
	LastName string

	// Gender is the enrichment verdict. An empty string produces an
	// unenriched record: nil Gender, nil Probability, zero Count.
	Gender      string
	Probability float64
	Count       int64

	// CreatedAt falls back to a fixed reference time.
	CreatedAt time.Time
}

// GeneratePerson builds a person record from the provided options,
// filling unset fields with deterministic defaults.
//
// Example:
//
//	p := fixtures.GeneratePerson(fixtures.PersonOptions{
//	    ID: 7,
//	    Gender: "male",
//	    Probability: 0.98,
//	    Count: 120,
//	})
func GeneratePerson(opts PersonOptions) *entity.Person {
	if opts.Name == "" {
		opts.Name = "Riccardo"
	}
	if opts.LastName == "" {
		opts.LastName = "Rossi"
	}
	if opts.CreatedAt.IsZero() {
		opts.CreatedAt = referenceTime
	}

	p := &entity.Person{
		ID:        opts.ID,
		Name:      opts.Name,
		LastName:  opts.LastName,
		Count:     opts.Count,
		CreatedAt: opts.CreatedAt,
	}
	if opts.Gender != "" {
		gender := opts.Gender
		probability := opts.Probability
		p.Gender = &gender
		p.Probability = &probability
	}
	return p
}

// GenerateEnrichedPerson generates a record with every enrichment field set.
// This is useful for testing the happy path where the lookup service knows
// the name.
//
// Example:
//
//	p := fixtures.GenerateEnrichedPerson()
//	// Returns Riccardo Rossi, male with probability 0.98, count 120
func GenerateEnrichedPerson() *entity.Person {
	return GeneratePerson(PersonOptions{
		ID:          1,
		Gender:      "male",
		Probability: 0.98,
		Count:       120,
	})
}

// GenerateUnenrichedPerson generates a record for a name the lookup service
// has never seen. Gender and Probability are nil and Count is zero.
//
// Example:
//
//	p := fixtures.GenerateUnenrichedPerson()
//	// Returns Zzyzx Smith with nil enrichment fields
func GenerateUnenrichedPerson() *entity.Person {
	return GeneratePerson(PersonOptions{
		ID:       2,
		Name:     "Zzyzx",
		LastName: "Smith",
	})
}

// seedProfiles are cycled by GeneratePersons so generated lists look
// realistic without becoming random. The last entry is deliberately
// unenriched.
var seedProfiles = []PersonOptions{
	{Name: "Riccardo", LastName: "Rossi", Gender: "male", Probability: 0.98, Count: 120},
	{Name: "Giulia", LastName: "Bianchi", Gender: "female", Probability: 0.97, Count: 300},
	{Name: "Noah", LastName: "Keller", Gender: "male", Probability: 0.95, Count: 512},
	{Name: "Olivia", LastName: "Martin", Gender: "female", Probability: 0.99, Count: 871},
	{Name: "Zzyzx", LastName: "Smith"},
}

// GeneratePersons generates n person records with sequential IDs starting
// at 1. Profiles cycle through a fixed table and timestamps ascend with
// the IDs, so pagination tests can rely on both.
//
// Example:
//
//	persons := fixtures.GeneratePersons(25)
//	// persons[10].ID == 11
func GeneratePersons(n int) []*entity.Person {
	persons := make([]*entity.Person, 0, n)
	for i := 0; i < n; i++ {
		opts := seedProfiles[i%len(seedProfiles)]
		opts.ID = int64(i + 1)
		opts.CreatedAt = referenceTime.Add(time.Duration(i) * time.Minute)
		persons = append(persons, GeneratePerson(opts))
	}
	return persons
}

// LookupBodyOptions configures the generated lookup service response body.
type LookupBodyOptions struct {
	// Name is echoed back by the service; empty falls back to "riccardo".
	Name string

	// Gender empty renders the JSON null the service returns for names
	// it has never seen.
	Gender      string
	Probability float64
	Count       int64
}

// GenerateLookupBody generates the gender service's JSON response body,
// for use in httptest handlers standing in for the external service.
//
// Example:
//
//	body := fixtures.GenerateLookupBody(fixtures.LookupBodyOptions{
//	    Name: "riccardo",
//	    Gender: "male",
//	    Probability: 0.98,
//	    Count: 5,
//	})
//	// Returns {"name":"riccardo","gender":"male","probability":0.98,"count":5}
func GenerateLookupBody(opts LookupBodyOptions) string {
	if opts.Name == "" {
		opts.Name = "riccardo"
	}

	payload := struct {
		Name        string  `json:"name"`
		Gender      *string `json:"gender"`
		Probability float64 `json:"probability"`
		Count       int64   `json:"count"`
	}{
		Name:        opts.Name,
		Probability: opts.Probability,
		Count:       opts.Count,
	}
	if opts.Gender != "" {
		payload.Gender = &opts.Gender
	}

	// Marshalling a flat struct of strings and numbers cannot fail
	body, _ := json.Marshal(payload)
	return string(body)
}

// GenerateUnknownLookupBody generates the service's null-gender response
// for a name it has never seen.
//
// Example:
//
//	body := fixtures.GenerateUnknownLookupBody("zzyzx")
//	// Returns {"name":"zzyzx","gender":null,"probability":0,"count":0}
func GenerateUnknownLookupBody(name string) string {
	return GenerateLookupBody(LookupBodyOptions{Name: name})
}
