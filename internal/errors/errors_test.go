package errors

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("spiral assessment requires drawing points")
	require.NotNil(t, err)

	assert.Equal(t, CategoryValidation, err.Category)
	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus)
	assert.Equal(t, "[VALIDATION_ERROR] spiral assessment requires drawing points", err.Error())
}

func TestNewInternalError_WrapsCause(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := NewInternalError("failed to persist assessment", cause)
	require.NotNil(t, err)

	assert.Equal(t, CategoryInternal, err.Category)
	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus)
	assert.ErrorIs(t, err, cause)
}

func TestNewUnauthorizedError(t *testing.T) {
	cause := fmt.Errorf("token is expired")
	err := NewUnauthorizedError("invalid session token", cause)
	require.NotNil(t, err)

	assert.Equal(t, CategoryAuth, err.Category)
	assert.Equal(t, http.StatusUnauthorized, err.HTTPStatus)
	assert.Equal(t, "[UNAUTHENTICATED] invalid session token", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestNewUnavailableError(t *testing.T) {
	err := NewUnavailableError("recommendation generator unavailable", nil)
	require.NotNil(t, err)

	assert.Equal(t, CategoryUnavailable, err.Category)
	assert.Equal(t, http.StatusServiceUnavailable, err.HTTPStatus)
}

func TestToAppError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCat    ErrorCategory
		wantStatus int
	}{
		{
			name: "invalid-argument errbuilder maps to 400",
			err: errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("tapping assessment requires a positive duration"),
			wantCat:    CategoryValidation,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "unauthenticated errbuilder maps to 401",
			err: errbuilder.New().
				WithCode(errbuilder.CodeUnauthenticated).
				WithMsg("invalid session token"),
			wantCat:    CategoryAuth,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "unavailable errbuilder maps to 503",
			err: errbuilder.New().
				WithCode(errbuilder.CodeUnavailable).
				WithMsg("dependency down"),
			wantCat:    CategoryUnavailable,
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "context deadline maps to timeout",
			err:        context.DeadlineExceeded,
			wantCat:    CategoryTimeout,
			wantStatus: http.StatusGatewayTimeout,
		},
		{
			name:       "plain error maps to internal",
			err:        fmt.Errorf("boom"),
			wantCat:    CategoryInternal,
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := ToAppError(tt.err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.wantCat, appErr.Category)
			assert.Equal(t, tt.wantStatus, appErr.HTTPStatus)
		})
	}
}

func TestToAppError_PassesThroughAppError(t *testing.T) {
	orig := NewRateLimitError("60")
	assert.Same(t, orig, ToAppError(orig))
}

func TestToAppError_Nil(t *testing.T) {
	assert.Nil(t, ToAppError(nil))
}
