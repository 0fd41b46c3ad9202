package entity

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// maxNameLength defines the maximum allowed length for name fields.
const maxNameLength = 100

// ValidateName validates a single person name component such as a first or last name.
// It checks that the value is non-empty, does not exceed the maximum length, and
// contains no control characters. Returns a ValidationError describing the first
// violated rule.
func ValidateName(field, value string) error {
	if value == "" {
		return &ValidationError{Field: field, Message: field + " is required"}
	}

	if utf8.RuneCountInString(value) > maxNameLength {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%s must not exceed %d characters", field, maxNameLength),
		}
	}

	for _, r := range value {
		if unicode.IsControl(r) {
			return &ValidationError{
				Field:   field,
				Message: field + " must not contain control characters",
			}
		}
	}

	return nil
}

// Validate validates the Person entity fields that originate from client input
// or the external enrichment service.
func (p *Person) Validate() error {
	if err := ValidateName("name", p.Name); err != nil {
		return err
	}
	if err := ValidateName("last_name", p.LastName); err != nil {
		return err
	}

	if p.Probability != nil && (*p.Probability < 0 || *p.Probability > 1) {
		return &ValidationError{
			Field:   "probability",
			Message: "probability must be between 0 and 1",
		}
	}

	if p.Count < 0 {
		return &ValidationError{Field: "count", Message: "count must not be negative"}
	}

	return nil
}
