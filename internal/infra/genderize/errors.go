package genderize

import "fmt"

// FailureKind classifies a terminal lookup failure.
type FailureKind string

const (
	// FailureStatus means the service answered with a non-success
	// status and the retry budget did not turn it around.
	FailureStatus FailureKind = "status"

	// FailureTimeout means the call ran out of time, either a single
	// request timeout that persisted through retries or the caller's
	// deadline expiring.
	FailureTimeout FailureKind = "timeout"

	// FailureInternal covers everything else: transport faults,
	// malformed response payloads, unexpected client errors.
	FailureInternal FailureKind = "internal"
)

// CallError is the terminal outcome of a failed lookup. Message is safe
// to surface to API clients; upstream details stay in the logs.
type CallError struct {
	Kind    FailureKind
	Status  int // HTTP status for FailureStatus, zero otherwise
	Message string
}

func (e *CallError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s (%s %d)", e.Message, e.Kind, e.Status)
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Kind)
}
