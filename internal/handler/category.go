package handler

import (
	"github.com/deppfellow/recipebook/internal/model"
	"github.com/deppfellow/recipebook/internal/server"
	"github.com/deppfellow/recipebook/internal/service"
	"github.com/labstack/echo/v4"
)

type CategoryHandler struct {
	Handler
	categoryService *service.CategoryService
}

func NewCategoryHandler(s *server.Server, categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		Handler:         NewHandler(s),
		categoryService: categoryService,
	}
}

func (h *CategoryHandler) List(c echo.Context, _ *model.EmptyRequest) ([]model.Category, error) {
	return h.categoryService.List(c.Request().Context())
}

func (h *CategoryHandler) Create(c echo.Context, req *model.CreateCategoryRequest) (*model.Category, error) {
	return h.categoryService.Create(c.Request().Context(), req)
}

func (h *CategoryHandler) Get(c echo.Context, req *model.CategoryIDRequest) (*model.Category, error) {
	return h.categoryService.Get(c.Request().Context(), req.CategoryID)
}

func (h *CategoryHandler) Update(c echo.Context, req *model.UpdateCategoryRequest) (*model.Category, error) {
	return h.categoryService.Update(c.Request().Context(), req)
}

func (h *CategoryHandler) Delete(c echo.Context, req *model.CategoryIDRequest) (*model.DeletedResponse, error) {
	return h.categoryService.Delete(c.Request().Context(), req.CategoryID)
}

func (h *CategoryHandler) Recipes(c echo.Context, req *model.CategoryIDRequest) ([]model.Recipe, error) {
	return h.categoryService.Recipes(c.Request().Context(), req.CategoryID)
}
