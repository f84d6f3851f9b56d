package services

import "fmt"

// ErrorKind classifies service failures so handlers can map them to HTTP
// codes in one place.
type ErrorKind string

const (
	ErrValidation    ErrorKind = "validation"
	ErrStateConflict ErrorKind = "state_conflict"
	ErrNotFound      ErrorKind = "not_found"
)

// Error is a structured service error. Field is set for validation errors
// so the caller knows which input failed.
type Error struct {
	Kind    ErrorKind
	Field   string
	Message string
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// ValidationError reports a malformed or missing input.
func ValidationError(field, message string) *Error {
	return &Error{Kind: ErrValidation, Field: field, Message: message}
}

// StateConflictError reports an illegal or concurrently-invalidated transition.
func StateConflictError(message string) *Error {
	return &Error{Kind: ErrStateConflict, Message: message}
}

// NotFoundError reports a missing record.
func NotFoundError(message string) *Error {
	return &Error{Kind: ErrNotFound, Message: message}
}
