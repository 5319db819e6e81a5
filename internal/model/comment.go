package model

import "github.com/deppfellow/recipebook/internal/validation"

const (
	DefaultCommentTitle = "default title"
	DefaultCommentText  = "default text"
)

type Comment struct {
	ID       int64  `json:"id" db:"id"`
	Title    string `json:"title" db:"title"`
	Text     string `json:"text" db:"text"`
	RecipeID int64  `json:"recipe" db:"recipe_id"`
	AuthorID int64  `json:"author" db:"author_id"`
}

type CreateCommentRequest struct {
	RecipeID int64  `json:"-" param:"recipe_id" validate:"gt=0"`
	Title    string `json:"title" validate:"max=100"`
	Text     string `json:"text" validate:"max=1000"`
	AuthorID int64  `json:"author" validate:"gt=0"`
}

func (r *CreateCommentRequest) Validate() error {
	return validation.Struct(r)
}

// Normalize fills omitted title and text with their defaults.
func (r *CreateCommentRequest) Normalize() {
	if r.Title == "" {
		r.Title = DefaultCommentTitle
	}
	if r.Text == "" {
		r.Text = DefaultCommentText
	}
}

// CommentIDRequest addresses one comment under its recipe.
type CommentIDRequest struct {
	RecipeID  int64 `json:"-" param:"recipe_id" validate:"gt=0"`
	CommentID int64 `json:"-" param:"comment_id" validate:"gt=0"`
}

func (r *CommentIDRequest) Validate() error {
	return validation.Struct(r)
}

// UpdateCommentRequest is a partial update of title and text.
type UpdateCommentRequest struct {
	RecipeID  int64   `json:"-" param:"recipe_id" validate:"gt=0"`
	CommentID int64   `json:"-" param:"comment_id" validate:"gt=0"`
	Title     *string `json:"title" validate:"omitempty,max=100"`
	Text      *string `json:"text" validate:"omitempty,max=1000"`
}

func (r *UpdateCommentRequest) Validate() error {
	return validation.Struct(r)
}
