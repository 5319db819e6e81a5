package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", MakeUpperCaseWithUnderscores("Bad Request"))
	assert.Equal(t, "NOT_FOUND", MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound)))
}

func TestNotFound(t *testing.T) {
	err := NotFound("recipe")
	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.Equal(t, "RECIPE_NOT_FOUND", err.Code)
	assert.Equal(t, "Recipe not found", err.Message)
	assert.True(t, err.Override)
}

func TestHTTPErrorMatchesThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("loading recipe: %w", NewUnauthorizedError("Unauthorized user", true))

	var httpErr *HTTPError
	require.True(t, errors.As(wrapped, &httpErr))
	assert.Equal(t, http.StatusUnauthorized, httpErr.Status)
	assert.True(t, errors.Is(wrapped, &HTTPError{}))
}

func TestNotFoundMultiWordEntity(t *testing.T) {
	err := NotFound("Recipe Follower")
	assert.Equal(t, "RECIPE_FOLLOWER_NOT_FOUND", err.Code)
	assert.Equal(t, "Recipe Follower not found", err.Message)
}

func TestBadRequestCustomCode(t *testing.T) {
	code := "USER_ALREADY_EXISTS"
	err := NewBadRequestError("taken", true, &code, []FieldError{{Field: "username", Error: "taken"}}, nil)

	assert.Equal(t, code, err.Code)
	assert.Len(t, err.Errors, 1)
	assert.Equal(t, "BAD_REQUEST", NewBadRequestError("x", false, nil, nil, nil).Code)
}
