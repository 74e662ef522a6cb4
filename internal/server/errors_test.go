package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/jonathan/docforge/internal/errs"
	"github.com/stretchr/testify/assert"
)

func TestErrBodyTooLarge(t *testing.T) {
	err := &ErrBodyTooLarge{Limit: 1024}
	assert.Equal(t, "request body exceeds 1024 bytes", err.Error())
	assert.Equal(t, http.StatusRequestEntityTooLarge, HTTPStatus(err))
}

func TestErrEmptyBody(t *testing.T) {
	err := &ErrEmptyBody{}
	assert.Equal(t, "request body is empty", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "ValidationError",
			err:      errs.NewValidationError("clientEmail", "is required"),
			expected: http.StatusUnprocessableEntity,
		},
		{
			name:     "UsageError",
			err:      &errs.UsageError{Message: "no shape"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "wrapped UsageError",
			err:      fmt.Errorf("classify: %w", &errs.UsageError{Message: "no shape"}),
			expected: http.StatusBadRequest,
		},
		{
			name:     "EncodingError",
			err:      &errs.EncodingError{Message: "boom"},
			expected: http.StatusInternalServerError,
		},
		{
			name:     "Unknown error",
			err:      assert.AnError,
			expected: http.StatusInternalServerError,
		},
		{
			name:     "Nil error",
			err:      nil,
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestErrorBody(t *testing.T) {
	ve := errs.NewValidationError("services", "must not be empty")
	body := errorBody(ve)
	assert.Equal(t, "validation_failed", body.Error)
	assert.Equal(t, ve.Errors, body.Fields)

	body = errorBody(&errs.EncodingError{Message: "font table corrupt", Cause: assert.AnError})
	assert.Equal(t, "generation_failed", body.Error)
	assert.NotContains(t, body.Message, "font table")
}
