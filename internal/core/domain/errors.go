package domain

import (
	"errors"
	"strings"
)

var (
	ErrUnauthenticated       = errors.New("unauthenticated")
	ErrTokenMalformed        = errors.New("token malformed")
	ErrTokenExpired          = errors.New("token expired")
	ErrTokenInvalidSignature = errors.New("token signature invalid")

	ErrForbidden = errors.New("access forbidden")

	ErrUpstreamUnavailable   = errors.New("upstream unavailable")
	ErrGithubProfileNotFound = errors.New("github profile not found")

	// ErrGuardFailed is returned by repositories when a conditional update
	// matched no document. Callers re-read the document to decide why.
	ErrGuardFailed = errors.New("update guard did not match")
)

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"msg"`
}

// ValidationError collects every field that failed validation for a request.
type ValidationError struct {
	Fields []FieldError
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, "; ")
}

// Add appends a field failure and returns e for chaining.
func (e *ValidationError) Add(field, message string) *ValidationError {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
	return e
}
