package entity

import "fmt"

// ValidationError reports which field of an entity failed validation and
// why. Handlers match it with errors.As to turn domain rejections into
// 400 responses without inspecting error strings.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}
