package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/recipebook/internal/errs"
	"github.com/deppfellow/recipebook/internal/testinfra"
	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc.def", "abc.def", true},
		{"bearer abc", "abc", true},
		{"Bearer ", "", false},
		{"Basic dXNlcjpwdw==", "", false},
		{"abc", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		token, ok := bearerToken(tt.header)
		assert.Equal(t, tt.ok, ok, tt.header)
		assert.Equal(t, tt.token, token, tt.header)
	}
}

func TestStatusFromError(t *testing.T) {
	assert.Equal(t, http.StatusOK, statusFromError(nil, http.StatusOK))
	assert.Equal(t, http.StatusUnauthorized, statusFromError(errs.NewUnauthorizedError("no", true), http.StatusOK))
	assert.Equal(t, http.StatusMethodNotAllowed, statusFromError(echo.ErrMethodNotAllowed, http.StatusOK))
	assert.Equal(t, http.StatusBadRequest, statusFromError(&pgconn.PgError{Code: "23505", TableName: "users"}, http.StatusOK))
	assert.Equal(t, http.StatusInternalServerError, statusFromError(errors.New("boom"), http.StatusOK))
}

func TestRequireAuthSetsUserID(t *testing.T) {
	srv := testinfra.NewServer(t)
	token, err := srv.Tokens.Issue(7, "anna")
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	c := e.NewContext(req, httptest.NewRecorder())

	var seen int64
	err = NewAuthMiddleware(srv).RequireAuth(func(c echo.Context) error {
		seen, _ = GetUserID(c)
		return nil
	})(c)
	require.NoError(t, err)
	assert.Equal(t, int64(7), seen)
}

func TestRequireAuthRejectsMissingToken(t *testing.T) {
	srv := testinfra.NewServer(t)

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	err := NewAuthMiddleware(srv).RequireAuth(func(echo.Context) error {
		t.Fatal("handler must not run")
		return nil
	})(c)

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusUnauthorized, httpErr.Status)
}

func TestGlobalErrorHandlerHidesInternalErrors(t *testing.T) {
	srv := testinfra.NewServer(t)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	NewGlobalMiddlewares(srv).GlobalErrorHandler(errors.New("dial tcp 10.0.0.1: refused"), c)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "INTERNAL_SERVER_ERROR", body.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.0.1")
}
