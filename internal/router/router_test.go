package router

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/recipebook/internal/errs"
	"github.com/deppfellow/recipebook/internal/handler"
	"github.com/deppfellow/recipebook/internal/model"
	"github.com/deppfellow/recipebook/internal/server"
	"github.com/deppfellow/recipebook/internal/service"
	"github.com/deppfellow/recipebook/internal/testinfra"
	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testAPI struct {
	t      *testing.T
	router *echo.Echo
}

func newAPIWithServer(t *testing.T, srv *server.Server) *testAPI {
	t.Helper()

	db := testinfra.NewMemDB()
	services := service.NewServices(srv, service.Stores{
		Users:      db.Users(),
		Categories: db.Categories(),
		Recipes:    db.Recipes(),
		Comments:   db.Comments(),
	}, &testinfra.Enqueuer{})

	return &testAPI{t: t, router: NewRouter(srv, handler.NewHandlers(srv, services))}
}

func newAPI(t *testing.T) *testAPI {
	return newAPIWithServer(t, testinfra.NewServer(t))
}

func (a *testAPI) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}

	var req *http.Request
	if reader != nil {
		req = httptest.NewRequest(method, path, reader)
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

// signUp registers a user and returns its id and a bearer token.
func (a *testAPI) signUp(username string) (int64, string) {
	a.t.Helper()

	rec := a.do(http.MethodPost, "/api/register", "", map[string]string{
		"username": username,
		"password": "correct horse",
	})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	user := decode[model.User](a.t, rec)

	rec = a.do(http.MethodPost, "/api/login", "", map[string]string{
		"username": username,
		"password": "correct horse",
	})
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())
	return user.ID, decode[model.TokenResponse](a.t, rec).Token
}

func (a *testAPI) createRecipe(authorID int64, likes int64) model.Recipe {
	a.t.Helper()

	rec := a.do(http.MethodPost, "/api/categories", "", map[string]string{"name": "Soups"})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	category := decode[model.Category](a.t, rec)

	rec = a.do(http.MethodPost, "/api/recipes", "", map[string]any{
		"title":       "Borscht",
		"description": "Beet soup",
		"ingredients": "beets, cabbage",
		"steps":       "boil",
		"likes":       likes,
		"front_image": "borscht.png",
		"category":    category.ID,
		"author":      authorID,
	})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[model.Recipe](a.t, rec)
}

func TestRegisterNeverEchoesPassword(t *testing.T) {
	api := newAPI(t)

	rec := api.do(http.MethodPost, "/api/register", "", map[string]string{
		"username": "anna",
		"email":    "anna@example.com",
		"password": "correct horse",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotContains(t, rec.Body.String(), "correct horse")

	body := decode[map[string]any](t, rec)
	assert.Equal(t, "anna", body["username"])
	assert.Equal(t, "anna@example.com", body["email"])
}

func TestRegisterValidationAndDuplicates(t *testing.T) {
	api := newAPI(t)

	rec := api.do(http.MethodPost, "/api/register", "", map[string]string{"username": "anna", "password": "short"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	httpErr := decode[errs.HTTPError](t, rec)
	require.NotEmpty(t, httpErr.Errors)
	assert.Equal(t, "password", httpErr.Errors[0].Field)

	api.signUp("anna")
	rec = api.do(http.MethodPost, "/api/register", "", map[string]string{"username": "anna", "password": "correct horse"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "USER_ALREADY_EXISTS", decode[errs.HTTPError](t, rec).Code)
}

func TestRegisterRejectsPasswordOverBcryptLimit(t *testing.T) {
	api := newAPI(t)

	for _, password := range []string{strings.Repeat("p", 100), strings.Repeat("é", 40)} {
		rec := api.do(http.MethodPost, "/api/register", "", map[string]string{
			"username": "longpw",
			"password": password,
		})
		require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		httpErr := decode[errs.HTTPError](t, rec)
		require.Len(t, httpErr.Errors, 1)
		assert.Equal(t, "password", httpErr.Errors[0].Field)
	}

	rec := api.do(http.MethodPost, "/api/register", "", map[string]string{
		"username": "longpw",
		"password": strings.Repeat("p", 72),
	})
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestLoginWithWrongPassword(t *testing.T) {
	api := newAPI(t)
	api.signUp("anna")

	rec := api.do(http.MethodPost, "/api/login", "", map[string]string{"username": "anna", "password": "not it at all"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Unable to log in with provided credentials.", decode[errs.HTTPError](t, rec).Message)
}

func TestGetUser(t *testing.T) {
	api := newAPI(t)
	userID, _ := api.signUp("anna")

	rec := api.do(http.MethodGet, fmt.Sprintf("/api/users/%d", userID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "anna", decode[model.User](t, rec).Username)

	rec = api.do(http.MethodGet, "/api/users/999", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "USER_NOT_FOUND", decode[errs.HTTPError](t, rec).Code)
}

func TestRecipeRoundTripAndDelete(t *testing.T) {
	api := newAPI(t)
	authorID, _ := api.signUp("anna")
	created := api.createRecipe(authorID, 0)

	path := fmt.Sprintf("/api/recipes/%d", created.ID)
	rec := api.do(http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[model.Recipe](t, rec)
	assert.Equal(t, created, got)
	assert.NotNil(t, got.Followers)

	rec = api.do(http.MethodDelete, path, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[model.DeletedResponse](t, rec).Deleted)

	rec = api.do(http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	httpErr := decode[errs.HTTPError](t, rec)
	assert.Equal(t, "RECIPE_NOT_FOUND", httpErr.Code)
	assert.Equal(t, "Recipe not found", httpErr.Message)
}

func TestUpdateRecipe(t *testing.T) {
	api := newAPI(t)
	authorID, _ := api.signUp("anna")
	created := api.createRecipe(authorID, 0)

	rec := api.do(http.MethodPut, fmt.Sprintf("/api/recipes/%d", created.ID), "", map[string]any{
		"title":       "Cold borscht",
		"description": "Served cold",
		"ingredients": "beets, kefir",
		"steps":       "chill",
		"front_image": "cold.png",
		"category":    created.CategoryID,
		"author":      authorID,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[model.Recipe](t, rec)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Cold borscht", updated.Title)

	rec = api.do(http.MethodPut, "/api/recipes/999", "", map[string]any{
		"title":       "x",
		"description": "x",
		"ingredients": "x",
		"steps":       "x",
		"front_image": "x",
		"category":    created.CategoryID,
		"author":      authorID,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateRecipeKeepsLikes(t *testing.T) {
	api := newAPI(t)
	authorID, token := api.signUp("anna")
	created := api.createRecipe(authorID, 0)

	for range 3 {
		rec := api.do(http.MethodPut, fmt.Sprintf("/api/recipes/%d/like", created.ID), token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	body := map[string]any{
		"title":       "Borscht v2",
		"description": "Beet soup",
		"ingredients": "beets",
		"steps":       "boil",
		"front_image": "borscht.png",
		"category":    created.CategoryID,
		"author":      authorID,
	}
	rec := api.do(http.MethodPut, fmt.Sprintf("/api/recipes/%d", created.ID), "", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, int64(3), decode[model.Recipe](t, rec).Likes)

	body["likes"] = 0
	rec = api.do(http.MethodPut, fmt.Sprintf("/api/recipes/%d", created.ID), "", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, int64(3), decode[model.Recipe](t, rec).Likes)

	rec = api.do(http.MethodGet, fmt.Sprintf("/api/recipes/%d", created.ID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(3), decode[model.Recipe](t, rec).Likes)
}

func TestCreateRecipeValidation(t *testing.T) {
	api := newAPI(t)

	rec := api.do(http.MethodPost, "/api/recipes", "", map[string]any{"title": "No body"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	fields := map[string]bool{}
	for _, fe := range decode[errs.HTTPError](t, rec).Errors {
		fields[fe.Field] = true
	}
	assert.True(t, fields["description"])
	assert.True(t, fields["front_image"])
	assert.True(t, fields["category"])
}

func TestCreateRecipeUnknownAuthor(t *testing.T) {
	api := newAPI(t)

	rec := api.do(http.MethodPost, "/api/categories", "", map[string]string{"name": "Soups"})
	category := decode[model.Category](t, rec)

	rec = api.do(http.MethodPost, "/api/recipes", "", map[string]any{
		"title":       "Borscht",
		"description": "d",
		"ingredients": "i",
		"steps":       "s",
		"front_image": "f.png",
		"category":    category.ID,
		"author":      404,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "AUTHOR_NOT_FOUND", decode[errs.HTTPError](t, rec).Code)
}

func TestInvalidPathParameter(t *testing.T) {
	api := newAPI(t)

	for _, path := range []string{"/api/recipes/abc", "/api/recipes/0", "/api/categories/-1"} {
		rec := api.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
	}
}

func TestLikeAndFollowRequireAuth(t *testing.T) {
	api := newAPI(t)
	authorID, _ := api.signUp("anna")
	recipe := api.createRecipe(authorID, 0)

	for _, action := range []string{"like", "follow"} {
		path := fmt.Sprintf("/api/recipes/%d/%s", recipe.ID, action)
		for _, token := range []string{"", "not-a-jwt"} {
			rec := api.do(http.MethodPut, path, token, nil)
			require.Equal(t, http.StatusUnauthorized, rec.Code, path)
			assert.Equal(t, "Unauthorized user", decode[errs.HTTPError](t, rec).Message)
		}
	}

	rec := api.do(http.MethodGet, "/api/recipes/followed", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLikeIncrementsByOnePerCall(t *testing.T) {
	api := newAPI(t)
	authorID, token := api.signUp("anna")
	recipe := api.createRecipe(authorID, 7)
	path := fmt.Sprintf("/api/recipes/%d/like", recipe.ID)

	for want := int64(8); want <= 10; want++ {
		rec := api.do(http.MethodPut, path, token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		resp := decode[model.LikeResponse](t, rec)
		assert.Equal(t, want, resp.Likes)
		assert.Equal(t, fmt.Sprintf("Recipe %d successfully liked", recipe.ID), resp.Message)
	}

	rec := api.do(http.MethodPut, "/api/recipes/999/like", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFollowToggles(t *testing.T) {
	api := newAPI(t)
	authorID, _ := api.signUp("anna")
	followerID, token := api.signUp("boris")
	recipe := api.createRecipe(authorID, 0)
	path := fmt.Sprintf("/api/recipes/%d/follow", recipe.ID)

	rec := api.do(http.MethodPut, path, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[model.FollowResponse](t, rec)
	assert.True(t, resp.Following)
	assert.Equal(t, fmt.Sprintf("User %d successfully followed recipe %d", followerID, recipe.ID), resp.Message)

	rec = api.do(http.MethodGet, "/api/recipes/followed", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]model.Recipe](t, rec), 1)

	rec = api.do(http.MethodPut, path, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[model.FollowResponse](t, rec).Following)

	rec = api.do(http.MethodGet, fmt.Sprintf("/api/recipes/%d", recipe.ID), "", nil)
	assert.Empty(t, decode[model.Recipe](t, rec).Followers)

	rec = api.do(http.MethodPut, "/api/recipes/999/follow", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTopTenIsNotARecipeID(t *testing.T) {
	api := newAPI(t)
	authorID, _ := api.signUp("anna")
	api.createRecipe(authorID, 1)
	api.createRecipe(authorID, 9)

	rec := api.do(http.MethodGet, "/api/recipes/top_ten", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	top := decode[[]model.Recipe](t, rec)
	require.Len(t, top, 2)
	assert.Equal(t, int64(9), top[0].Likes)
}

func TestCommentsUnderRecipe(t *testing.T) {
	api := newAPI(t)
	authorID, _ := api.signUp("anna")
	recipe := api.createRecipe(authorID, 0)
	base := fmt.Sprintf("/api/recipes/%d/comments", recipe.ID)

	rec := api.do(http.MethodPost, base, "", map[string]any{"author": authorID})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	comment := decode[model.Comment](t, rec)
	assert.Equal(t, recipe.ID, comment.RecipeID)
	assert.Equal(t, model.DefaultCommentTitle, comment.Title)

	rec = api.do(http.MethodPut, fmt.Sprintf("%s/%d", base, comment.ID), "", map[string]string{"title": "Great"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Great", decode[model.Comment](t, rec).Title)

	rec = api.do(http.MethodGet, base, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]model.Comment](t, rec), 1)

	rec = api.do(http.MethodDelete, fmt.Sprintf("%s/%d", base, comment.ID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(http.MethodGet, fmt.Sprintf("%s/%d", base, comment.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCategoryRecipes(t *testing.T) {
	api := newAPI(t)
	authorID, _ := api.signUp("anna")
	recipe := api.createRecipe(authorID, 0)

	rec := api.do(http.MethodGet, fmt.Sprintf("/api/categories/%d/recipes", recipe.CategoryID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]model.Recipe](t, rec), 1)

	rec = api.do(http.MethodGet, "/api/categories/999/recipes", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]model.Recipe](t, rec))
}

func TestUnknownRoute(t *testing.T) {
	api := newAPI(t)

	rec := api.do(http.MethodGet, "/api/nothing-here", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", decode[errs.HTTPError](t, rec).Message)
}

func TestMalformedJSON(t *testing.T) {
	api := newAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/api/categories", bytes.NewBufferString(`{"name":`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	api.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSystemRoutes(t *testing.T) {
	api := newAPI(t)

	rec := api.do(http.MethodGet, "/status", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", decode[map[string]any](t, rec)["status"])

	rec = api.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "recipebook_http_requests_total")
}

func TestRequestIDIsEchoed(t *testing.T) {
	api := newAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	api.router.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestLoginIsRateLimited(t *testing.T) {
	srv := testinfra.NewServer(t)
	srv.Config.RateLimit.Enabled = true
	srv.Config.RateLimit.RequestsPerSecond = 0.001
	srv.Config.RateLimit.Burst = 1
	api := newAPIWithServer(t, srv)

	creds := map[string]string{"username": "ghost", "password": "whatever"}
	rec := api.do(http.MethodPost, "/api/login", "", creds)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodPost, "/api/login", "", creds)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "TOO_MANY_REQUESTS", decode[errs.HTTPError](t, rec).Code)
}
