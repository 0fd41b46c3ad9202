package genderize

import (
	"context"

	"person-api/internal/usecase/person"
)

// Enricher adapts the lookup client to the person use case interface.
type Enricher struct {
	Client *Client
}

// Enrich looks up gender data for the given first name and converts the
// result into the use case's value type.
func (e Enricher) Enrich(ctx context.Context, name string) (person.Guess, error) {
	guess, err := e.Client.Lookup(ctx, name)
	if err != nil {
		return person.Guess{}, err
	}
	return person.Guess{
		Gender:      guess.Gender,
		Probability: guess.Probability,
		Count:       guess.Count,
	}, nil
}
