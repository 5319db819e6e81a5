package model

import (
	"github.com/deppfellow/recipebook/internal/validation"
)

// TopRecipesLimit caps the top_ten listing.
const TopRecipesLimit = 10

type Recipe struct {
	ID          int64  `json:"id" db:"id"`
	Title       string `json:"title" db:"title"`
	Description string `json:"description" db:"description"`
	Ingredients string `json:"ingredients" db:"ingredients"`
	Steps       string `json:"steps" db:"steps"`
	Likes       int64  `json:"likes" db:"likes"`
	FrontImage  string `json:"front_image" db:"front_image"`
	FirstImage  string `json:"first_image" db:"first_image"`
	SecondImage string `json:"second_image" db:"second_image"`
	ThirdImage  string `json:"third_image" db:"third_image"`
	CategoryID  int64  `json:"category" db:"category_id"`
	AuthorID    int64  `json:"author" db:"author_id"`
	Followers   []User `json:"followers" db:"-"`
}

// RecipeInput is the writable part of a recipe, shared by create and update.
// Likes are not part of it: after creation they only change through a like.
type RecipeInput struct {
	Title       string `json:"title" validate:"required,max=250"`
	Description string `json:"description" validate:"required,max=1000"`
	Ingredients string `json:"ingredients" validate:"required,max=1000"`
	Steps       string `json:"steps" validate:"required,max=1000"`
	FrontImage  string `json:"front_image" validate:"required,max=1000"`
	FirstImage  string `json:"first_image" validate:"max=1000"`
	SecondImage string `json:"second_image" validate:"max=1000"`
	ThirdImage  string `json:"third_image" validate:"max=1000"`
	CategoryID  int64  `json:"category" validate:"gt=0"`
	AuthorID    int64  `json:"author" validate:"gt=0"`
}

type CreateRecipeRequest struct {
	RecipeInput
	// Likes seeds the counter; it defaults to zero.
	Likes int64 `json:"likes" validate:"min=0"`
}

func (r *CreateRecipeRequest) Validate() error {
	return validation.Struct(r)
}

type UpdateRecipeRequest struct {
	RecipeID int64 `json:"-" param:"recipe_id" validate:"gt=0"`
	RecipeInput
}

func (r *UpdateRecipeRequest) Validate() error {
	return validation.Struct(r)
}

// RecipeIDRequest addresses a single recipe by path parameter.
type RecipeIDRequest struct {
	RecipeID int64 `json:"-" param:"recipe_id" validate:"gt=0"`
}

func (r *RecipeIDRequest) Validate() error {
	return validation.Struct(r)
}

type FollowResponse struct {
	Message   string `json:"message"`
	Following bool   `json:"following"`
}

type LikeResponse struct {
	Message string `json:"message"`
	Likes   int64  `json:"likes"`
}
