package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainErrorKeepsDomainErrors(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewConflict("stale version", nil))

	domainErr := ToDomainError(err)
	require.NotNil(t, domainErr)
	assert.Equal(t, CodeConflict, domainErr.Code)
	assert.Equal(t, http.StatusConflict, domainErr.HTTPStatus)
}

func TestToDomainErrorFallsBackToInternal(t *testing.T) {
	domainErr := ToDomainError(errors.New("boom"))
	assert.Equal(t, CodeInternal, domainErr.Code)
	assert.Equal(t, http.StatusInternalServerError, domainErr.HTTPStatus)
	assert.Nil(t, ToDomainError(nil))
}

func TestAuthErrorStatuses(t *testing.T) {
	cases := map[string]int{
		CodeInvalidCredentials: http.StatusUnauthorized,
		CodeEmailInUse:         http.StatusConflict,
		CodeWeakPassword:       http.StatusBadRequest,
		CodeMalformedEmail:     http.StatusBadRequest,
	}
	for code, status := range cases {
		t.Run(code, func(t *testing.T) {
			assert.Equal(t, status, ToDomainError(NewAuthError(code, "x")).HTTPStatus)
		})
	}
}

func TestPersistenceErrorIsRetryable(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewPersistenceError(cause)

	assert.True(t, HasCode(err, CodePersistence))
	assert.ErrorIs(t, err, cause)
	assert.True(t, ToDomainError(err).Retryable())
	assert.False(t, ToDomainError(NewValidationError("bad", nil)).Retryable())
}
