// Package errs defines the error taxonomy surfaced by the document engine.
//
// Only ValidationError, UsageError and EncodingError reach callers. Lookup
// misses and asset failures are recovered where they happen.
package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError represents a client-fault validation failure with field paths
type ValidationError struct {
	Errors []FieldError `json:"errors"`
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// Add appends a field error.
func (ve *ValidationError) Add(field, message string) {
	ve.Errors = append(ve.Errors, FieldError{Field: field, Message: message})
}

// OrNil returns ve when it holds at least one field error, nil otherwise.
func (ve *ValidationError) OrNil() error {
	if ve == nil || len(ve.Errors) == 0 {
		return nil
	}
	return ve
}

// NewValidationError builds a ValidationError with a single field error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Errors: []FieldError{{Field: field, Message: message}}}
}

// UsageError means the payload matched none of the known document shapes
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("usage error: %s", e.Message)
}

// EncodingError means the binary document could not be produced
type EncodingError struct {
	Message string
	Cause   error
}

func (e *EncodingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("encoding error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("encoding error: %s", e.Message)
}

func (e *EncodingError) Unwrap() error {
	return e.Cause
}

// Exit codes for CLI callers
const (
	ExitOK          = 0
	ExitServerFault = 1
	ExitClientFault = 2
)

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		usageErr      *UsageError
		validationErr *ValidationError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &usageErr):
		return http.StatusBadRequest
	case errors.As(err, &validationErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// IsClientFault reports whether err was caused by the caller's input.
func IsClientFault(err error) bool {
	status := HTTPStatus(err)
	return status >= 400 && status < 500
}

// ExitCode maps err onto a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case IsClientFault(err):
		return ExitClientFault
	default:
		return ExitServerFault
	}
}
