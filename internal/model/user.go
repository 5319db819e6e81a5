// Package model holds the domain entities and the request payloads that
// carry them across the HTTP boundary.
package model

import (
	"time"

	"github.com/deppfellow/recipebook/internal/validation"
)

// User is a registered account. PasswordHash never leaves the service.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	IsSuperuser  bool      `json:"is_superuser" db:"is_superuser"`
	DateJoined   time.Time `json:"date_joined" db:"date_joined"`
	PasswordHash string    `json:"-" db:"password_hash"`
}

type RegisterRequest struct {
	Username  string `json:"username" validate:"required,max=150,username"`
	Email     string `json:"email" validate:"omitempty,max=254,email"`
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" validate:"max=150"`
	// bcrypt rejects input longer than 72 bytes.
	Password string `json:"password" validate:"required,min=8,maxbytes=72"`
}

func (r *RegisterRequest) Validate() error {
	return validation.Struct(r)
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	return validation.Struct(r)
}

type TokenResponse struct {
	Token string `json:"token"`
}

type GetUserRequest struct {
	UserID int64 `json:"-" param:"user_id" validate:"gt=0"`
}

func (r *GetUserRequest) Validate() error {
	return validation.Struct(r)
}
