package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromStatus(t *testing.T) {
	tests := []struct {
		status   int
		expected ErrorType
	}{
		{http.StatusUnauthorized, ErrorTypeAuth},
		{http.StatusForbidden, ErrorTypeAuth},
		{http.StatusNotFound, ErrorTypeNotFound},
		{http.StatusTooManyRequests, ErrorTypeRateLimit},
		{http.StatusInternalServerError, ErrorTypeUpstream},
		{http.StatusBadGateway, ErrorTypeUpstream},
		{http.StatusBadRequest, ErrorTypeUpstream},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			err := FromStatus(tt.status)
			assert.Equal(t, tt.expected, err.Type)
			assert.Equal(t, tt.status, err.Code)
		})
	}
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "upstream error (code 500): boom", New(ErrorTypeUpstream, 500, "boom").Error())
	assert.Equal(t, "config error: no user specified", ErrNoUserSpecified.Error())
}

func TestTypeOfWrapped(t *testing.T) {
	cause := errors.New("dial tcp: no such host")
	err := fmt.Errorf("fetch page: %w", Wrap(ErrorTypeNetwork, cause, "network error"))

	assert.Equal(t, ErrorTypeNetwork, TypeOf(err))
	assert.True(t, Is(err, ErrorTypeNetwork))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, ErrorType(""), TypeOf(cause))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(ErrorTypeNetwork))
	assert.False(t, IsRetryable(ErrorTypeRateLimit))
	assert.False(t, IsRetryable(ErrorTypeAuth))
	assert.False(t, IsRetryable(ErrorTypeUpstream))
	assert.False(t, IsRetryable(ErrorTypeConfig))
}
