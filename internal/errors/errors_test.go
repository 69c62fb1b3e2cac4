package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", Invalid("title is required"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"wrapped conflict", fmt.Errorf("register: %w", ErrUserAlreadyExists), http.StatusConflict, "USER_ALREADY_EXISTS"},
		{"category conflict", ErrCategoryExists, http.StatusConflict, "CATEGORY_ALREADY_EXISTS"},
		{"post not found", ErrPostNotFound, http.StatusNotFound, "POST_NOT_FOUND"},
		{"credentials", ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"forbidden", ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"unknown", fmt.Errorf("dial tcp: refused"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.status, httpErr.StatusCode)
			assert.Equal(t, tt.code, httpErr.Code)
		})
	}
}

func TestMapErrorToHTTP_HidesInternalDetail(t *testing.T) {
	httpErr := MapErrorToHTTP(fmt.Errorf("query users: connection reset"))
	assert.Equal(t, "internal server error", httpErr.ToErrorResponse().Error)
}

func TestValidationErrorMessage(t *testing.T) {
	httpErr := MapErrorToHTTP(Invalid("Post ID is required"))
	assert.Equal(t, "Post ID is required", httpErr.Message)
}
