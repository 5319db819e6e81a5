// Package repository holds the SQL for every entity.
//
// Repositories run plain SQL against the shared pgx pool and return model
// types. A missing row is reported as pgx.ErrNoRows tagged with its table
// (sqlerr.WithTable) so the error handler can answer "<Entity> not found".
package repository

import (
	"context"

	"github.com/deppfellow/recipebook/internal/server"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	User     *UserRepository
	Category *CategoryRepository
	Recipe   *RecipeRepository
	Comment  *CommentRepository
}

// NewRepositories builds every repository on the server's connection pool.
func NewRepositories(s *server.Server) *Repositories {
	return New(s.DB.Pool)
}

// New builds every repository on pool.
func New(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:     NewUserRepository(pool),
		Category: NewCategoryRepository(pool),
		Recipe:   NewRecipeRepository(pool),
		Comment:  NewCommentRepository(pool),
	}
}

// querier is the subset of pgxpool.Pool and pgx.Tx used by the repositories.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
