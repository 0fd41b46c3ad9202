// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as Person, along with their
// validation rules and domain-specific errors.
package entity

import "time"

// Person represents an enriched person record in the system.
// Name and LastName come from client input; Gender, Probability and Count are
// filled in from the external gender-guessing service. Gender and Probability are
// pointers because the external service returns null for names it has never seen.
type Person struct {
	ID          int64
	Name        string
	LastName    string
	Gender      *string
	Probability *float64
	Count       int64
	CreatedAt   time.Time
}
