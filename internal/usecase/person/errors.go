// Package person provides use cases for managing person records.
// It implements business logic for creating and querying persons, including
// gender enrichment through the external lookup service.
package person

import "errors"

// Sentinel errors for person use case operations.
var (
	// ErrPersonNotFound indicates that the requested person was not found.
	// This error is typically returned when attempting to retrieve a person
	// that does not exist in the repository.
	ErrPersonNotFound = errors.New("person not found")

	// ErrInvalidPersonID indicates that the provided person ID is invalid.
	// Person IDs must be positive integers.
	ErrInvalidPersonID = errors.New("invalid person ID")
)
