package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		err    *AppError
		status int
	}{
		{NewValidationError("bad"), http.StatusBadRequest},
		{NewUnauthorizedError(""), http.StatusUnauthorized},
		{NewInsufficientPermissionsError("reload the catalog"), http.StatusForbidden},
		{NewRecipeNotFoundError("42"), http.StatusNotFound},
		{NewInsufficientProfileError(nil), http.StatusUnprocessableEntity},
		{NewAppError(CodeTooManyRequests, "slow down", ""), http.StatusTooManyRequests},
		{NewDatabaseError("load profile", stderrors.New("boom")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.err.Code), func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.StatusCode())
		})
	}
}

func TestWrapAndCodeLookup(t *testing.T) {
	cause := stderrors.New("connection refused")
	dbErr := NewDatabaseError("save profile", cause)
	wrapped := fmt.Errorf("profile service: %w", dbErr)

	assert.True(t, Is(wrapped, CodeDatabaseError))
	assert.Equal(t, CodeDatabaseError, GetCode(wrapped))
	assert.Same(t, dbErr, Wrap(wrapped, "ignored"))
	assert.ErrorIs(t, dbErr, cause)

	plain := Wrap(cause, "unexpected")
	assert.Equal(t, CodeInternal, plain.Code)
	assert.Equal(t, CodeInternal, GetCode(cause))
	assert.Nil(t, Wrap(nil, "nothing"))
}

func TestToErrorResponse(t *testing.T) {
	err := NewRecipeNotFoundError("7")

	resp := ToErrorResponse(err, "req-1")

	assert.Equal(t, CodeRecipeNotFound, resp.Error.Code)
	assert.Equal(t, "req-1", resp.Error.RequestID)
	assert.Equal(t, "7", resp.Error.Metadata["recipe_id"])
	assert.NotEmpty(t, resp.Error.Timestamp)
}
