package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_IsMatchesByType(t *testing.T) {
	err := fmt.Errorf("analyze: %w", NewEmptyInputError())

	assert.True(t, errors.Is(err, ErrEmptyInput))
	assert.False(t, errors.Is(err, ErrUnauthenticated))
	assert.True(t, IsEmptyInput(err))
}

func TestNewPersistenceError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewPersistenceError("create", cause)

	assert.True(t, errors.Is(err, ErrPersistence))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, http.StatusBadGateway, err.HTTPStatus)
	assert.Contains(t, err.Error(), "create")
	assert.Contains(t, err.Error(), "connection refused")
	assert.NotEmpty(t, err.StackTrace)
}

func TestNewUnauthenticatedError_DefaultMessage(t *testing.T) {
	err := NewUnauthenticatedError("")
	assert.Equal(t, "authentication required", err.Message)
	assert.Equal(t, http.StatusUnauthorized, err.HTTPStatus)
	assert.True(t, IsUnauthenticated(err))
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil, "ctx"))

	wrapped := Wrap(NewValidationError("bad"), "request")
	appErr := GetAppError(wrapped)
	require.NotNil(t, appErr)
	assert.Equal(t, "request: bad", appErr.Message)

	plain := Wrap(errors.New("boom"), "request")
	assert.True(t, IsType(plain, ErrorTypeInternal))
	assert.True(t, IsAppError(plain))
}
