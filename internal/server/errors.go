// Package server provides the HTTP API for document generation.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/docforge/internal/errs"
)

// ErrBodyTooLarge indicates the request body exceeded the configured limit
type ErrBodyTooLarge struct {
	Limit int64
}

func (e *ErrBodyTooLarge) Error() string {
	return fmt.Sprintf("request body exceeds %d bytes", e.Limit)
}

// ErrEmptyBody indicates a request without a payload
type ErrEmptyBody struct{}

func (e *ErrEmptyBody) Error() string {
	return "request body is empty"
}

// ErrorResponse is the JSON body of every failed request
type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  []errs.FieldError `json:"fields,omitempty"`
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		tooLarge *ErrBodyTooLarge
		empty    *ErrEmptyBody
	)
	switch {
	case err == nil:
		return http.StatusInternalServerError
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &empty):
		return http.StatusBadRequest
	default:
		return errs.HTTPStatus(err)
	}
}

// errorBody builds the response for err. Server faults carry a generic
// message so internal details stay in the logs.
func errorBody(err error) ErrorResponse {
	var (
		validation *errs.ValidationError
		usage      *errs.UsageError
		tooLarge   *ErrBodyTooLarge
		empty      *ErrEmptyBody
	)
	switch {
	case errors.As(err, &validation):
		return ErrorResponse{Error: "validation_failed", Message: "payload failed validation", Fields: validation.Errors}
	case errors.As(err, &usage):
		return ErrorResponse{Error: "unrecognized_payload", Message: usage.Message}
	case errors.As(err, &tooLarge):
		return ErrorResponse{Error: "payload_too_large", Message: tooLarge.Error()}
	case errors.As(err, &empty):
		return ErrorResponse{Error: "empty_body", Message: empty.Error()}
	default:
		return ErrorResponse{Error: "generation_failed", Message: "document could not be generated"}
	}
}
