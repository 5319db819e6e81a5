package service

import (
	"context"
	"fmt"

	"github.com/deppfellow/recipebook/internal/lib/metrics"
	"github.com/deppfellow/recipebook/internal/model"
	"github.com/rs/zerolog"
)

type RecipeService struct {
	recipes RecipeStore
}

func NewRecipeService(recipes RecipeStore) *RecipeService {
	return &RecipeService{recipes: recipes}
}

func (s *RecipeService) List(ctx context.Context) ([]model.Recipe, error) {
	return s.recipes.List(ctx)
}

// TopTen returns the most liked recipes, highest count first.
func (s *RecipeService) TopTen(ctx context.Context) ([]model.Recipe, error) {
	return s.recipes.ListTopLiked(ctx, model.TopRecipesLimit)
}

func (s *RecipeService) Followed(ctx context.Context, userID int64) ([]model.Recipe, error) {
	return s.recipes.ListFollowedBy(ctx, userID)
}

func (s *RecipeService) Get(ctx context.Context, id int64) (*model.Recipe, error) {
	return s.recipes.GetByID(ctx, id)
}

func (s *RecipeService) Create(ctx context.Context, req *model.CreateRecipeRequest) (*model.Recipe, error) {
	recipe, err := s.recipes.Create(ctx, req.RecipeInput, req.Likes)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Str("event", "recipe_created").
		Int64("recipe_id", recipe.ID).
		Int64("category_id", recipe.CategoryID).
		Msg("recipe created")

	return recipe, nil
}

func (s *RecipeService) Update(ctx context.Context, req *model.UpdateRecipeRequest) (*model.Recipe, error) {
	return s.recipes.Update(ctx, req.RecipeID, req.RecipeInput)
}

func (s *RecipeService) Delete(ctx context.Context, id int64) (*model.DeletedResponse, error) {
	if err := s.recipes.Delete(ctx, id); err != nil {
		return nil, err
	}
	return &model.DeletedResponse{Deleted: true}, nil
}

// Like adds exactly one like to the recipe.
func (s *RecipeService) Like(ctx context.Context, recipeID int64) (*model.LikeResponse, error) {
	likes, err := s.recipes.IncrementLikes(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	metrics.RecipeLikesTotal.Inc()

	return &model.LikeResponse{
		Message: fmt.Sprintf("Recipe %d successfully liked", recipeID),
		Likes:   likes,
	}, nil
}

// ToggleFollow flips whether userID follows the recipe.
func (s *RecipeService) ToggleFollow(ctx context.Context, recipeID, userID int64) (*model.FollowResponse, error) {
	following, err := s.recipes.ToggleFollower(ctx, recipeID, userID)
	if err != nil {
		return nil, err
	}

	metrics.RecordFollowToggle(following)

	verb := "unfollowed"
	if following {
		verb = "followed"
	}

	return &model.FollowResponse{
		Message:   fmt.Sprintf("User %d successfully %s recipe %d", userID, verb, recipeID),
		Following: following,
	}, nil
}
