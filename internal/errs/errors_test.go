package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	ve := &ValidationError{}
	assert.NoError(t, ve.OrNil())

	ve.Add("clientEmail", "Does not match format 'email'")
	ve.Add("services", "Array must have at least 1 items")

	err := ve.OrNil()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "1. clientEmail: Does not match format 'email'")
	assert.Contains(t, err.Error(), "2. services")
	assert.Equal(t, http.StatusUnprocessableEntity, HTTPStatus(err))
	assert.Equal(t, ExitClientFault, ExitCode(err))
}

func TestUsageError(t *testing.T) {
	err := &UsageError{Message: "payload is not a JSON object"}
	assert.Equal(t, "usage error: payload is not a JSON object", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
	assert.True(t, IsClientFault(err))
}

func TestEncodingError(t *testing.T) {
	cause := errors.New("corrupt image stream")
	err := &EncodingError{Message: "pdf output failed", Cause: cause}
	assert.Equal(t, "encoding error: pdf output failed: corrupt image stream", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(err))
	assert.Equal(t, ExitServerFault, ExitCode(err))
}

func TestHTTPStatus_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("classify: %w", NewValidationError("budget", "must be one of the following"))
	assert.Equal(t, http.StatusUnprocessableEntity, HTTPStatus(wrapped))
	assert.Equal(t, http.StatusOK, HTTPStatus(nil))
	assert.Equal(t, ExitOK, ExitCode(nil))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}
