package service

import (
	"context"

	"github.com/deppfellow/recipebook/internal/model"
)

type CategoryService struct {
	categories CategoryStore
	recipes    RecipeStore
}

func NewCategoryService(categories CategoryStore, recipes RecipeStore) *CategoryService {
	return &CategoryService{categories: categories, recipes: recipes}
}

func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.categories.List(ctx)
}

func (s *CategoryService) Create(ctx context.Context, req *model.CreateCategoryRequest) (*model.Category, error) {
	return s.categories.Create(ctx, req.Name)
}

func (s *CategoryService) Get(ctx context.Context, id int64) (*model.Category, error) {
	return s.categories.GetByID(ctx, id)
}

func (s *CategoryService) Update(ctx context.Context, req *model.UpdateCategoryRequest) (*model.Category, error) {
	return s.categories.Update(ctx, req.CategoryID, req.Name)
}

func (s *CategoryService) Delete(ctx context.Context, id int64) (*model.DeletedResponse, error) {
	if err := s.categories.Delete(ctx, id); err != nil {
		return nil, err
	}
	return &model.DeletedResponse{Deleted: true}, nil
}

// Recipes lists the recipes of a category; an unknown category has none.
func (s *CategoryService) Recipes(ctx context.Context, id int64) ([]model.Recipe, error) {
	return s.recipes.ListByCategory(ctx, id)
}
