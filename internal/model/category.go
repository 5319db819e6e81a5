package model

import "github.com/deppfellow/recipebook/internal/validation"

type Category struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

func (r *CreateCategoryRequest) Validate() error {
	return validation.Struct(r)
}

// CategoryIDRequest addresses a single category by path parameter.
type CategoryIDRequest struct {
	CategoryID int64 `json:"-" param:"category_id" validate:"gt=0"`
}

func (r *CategoryIDRequest) Validate() error {
	return validation.Struct(r)
}

// UpdateCategoryRequest is a partial update; a nil Name keeps the stored value.
type UpdateCategoryRequest struct {
	CategoryID int64   `json:"-" param:"category_id" validate:"gt=0"`
	Name       *string `json:"name" validate:"omitempty,min=1,max=100"`
}

func (r *UpdateCategoryRequest) Validate() error {
	return validation.Struct(r)
}
