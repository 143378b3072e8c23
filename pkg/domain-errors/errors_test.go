package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasCode(t *testing.T) {
	err := New(CodeNotFound, "contact not found")
	assert.True(t, HasCode(err, CodeNotFound))
	assert.False(t, HasCode(err, CodeForbidden))
	assert.False(t, HasCode(errors.New("plain"), CodeNotFound))
	assert.False(t, HasCode(nil, CodeNotFound))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeInternal, "failed to load contact")

	require.True(t, HasCode(err, CodeInternal))
	assert.True(t, errors.Is(err, cause))
	// Client-safe message excludes the cause; Error() includes it for logs.
	assert.Equal(t, "failed to load contact", Message(err))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestHasCodeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("handler: %w", New(CodeForbidden, "not allowed"))
	assert.True(t, HasCode(err, CodeForbidden))
}

func TestMessageForUnclassifiedError(t *testing.T) {
	assert.Equal(t, "an error occurred on the server", Message(errors.New("pq: relation missing")))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeValidation, http.StatusBadRequest},
		{CodeBadRequest, http.StatusBadRequest},
		{CodeInvalidInput, http.StatusBadRequest},
		{CodeConflict, http.StatusBadRequest},
		{CodeInvariantViolation, http.StatusBadRequest},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeForbidden, http.StatusForbidden},
		{CodeNotFound, http.StatusNotFound},
		{CodeInternal, http.StatusInternalServerError},
		{Code("unknown"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.code), string(tt.code))
	}
}
