package handler

import (
	"github.com/deppfellow/recipebook/internal/errs"
	"github.com/deppfellow/recipebook/internal/middleware"
	"github.com/deppfellow/recipebook/internal/model"
	"github.com/deppfellow/recipebook/internal/server"
	"github.com/deppfellow/recipebook/internal/service"
	"github.com/labstack/echo/v4"
)

type RecipeHandler struct {
	Handler
	recipeService *service.RecipeService
}

func NewRecipeHandler(s *server.Server, recipeService *service.RecipeService) *RecipeHandler {
	return &RecipeHandler{
		Handler:       NewHandler(s),
		recipeService: recipeService,
	}
}

// currentUser returns the id set by RequireAuth. Routes using it are always
// mounted behind that middleware, so a miss is still answered with 401.
func currentUser(c echo.Context) (int64, error) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return 0, errs.NewUnauthorizedError("Unauthorized user", true)
	}
	return userID, nil
}

func (h *RecipeHandler) List(c echo.Context, _ *model.EmptyRequest) ([]model.Recipe, error) {
	return h.recipeService.List(c.Request().Context())
}

func (h *RecipeHandler) TopTen(c echo.Context, _ *model.EmptyRequest) ([]model.Recipe, error) {
	return h.recipeService.TopTen(c.Request().Context())
}

func (h *RecipeHandler) Followed(c echo.Context, _ *model.EmptyRequest) ([]model.Recipe, error) {
	userID, err := currentUser(c)
	if err != nil {
		return nil, err
	}
	return h.recipeService.Followed(c.Request().Context(), userID)
}

func (h *RecipeHandler) Create(c echo.Context, req *model.CreateRecipeRequest) (*model.Recipe, error) {
	return h.recipeService.Create(c.Request().Context(), req)
}

func (h *RecipeHandler) Get(c echo.Context, req *model.RecipeIDRequest) (*model.Recipe, error) {
	return h.recipeService.Get(c.Request().Context(), req.RecipeID)
}

func (h *RecipeHandler) Update(c echo.Context, req *model.UpdateRecipeRequest) (*model.Recipe, error) {
	return h.recipeService.Update(c.Request().Context(), req)
}

func (h *RecipeHandler) Delete(c echo.Context, req *model.RecipeIDRequest) (*model.DeletedResponse, error) {
	return h.recipeService.Delete(c.Request().Context(), req.RecipeID)
}

func (h *RecipeHandler) Like(c echo.Context, req *model.RecipeIDRequest) (*model.LikeResponse, error) {
	return h.recipeService.Like(c.Request().Context(), req.RecipeID)
}

func (h *RecipeHandler) ToggleFollow(c echo.Context, req *model.RecipeIDRequest) (*model.FollowResponse, error) {
	userID, err := currentUser(c)
	if err != nil {
		return nil, err
	}
	return h.recipeService.ToggleFollow(c.Request().Context(), req.RecipeID, userID)
}
