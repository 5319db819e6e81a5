package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/recipebook/internal/model"
	"github.com/deppfellow/recipebook/internal/sqlerr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	commentsTable  = "comments"
	commentColumns = "id, title, text, recipe_id, author_id"
)

type CommentRepository struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

// ListByRecipe returns an empty list for an unknown recipe.
func (r *CommentRepository) ListByRecipe(ctx context.Context, recipeID int64) ([]model.Comment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE recipe_id = $1 ORDER BY id`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("list comments recipe_id=%d: %w", recipeID, err)
	}

	comments, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Comment])
	if err != nil {
		return nil, fmt.Errorf("list comments recipe_id=%d: %w", recipeID, err)
	}
	return comments, nil
}

func (r *CommentRepository) Create(ctx context.Context, c model.Comment) (*model.Comment, error) {
	rows, err := r.pool.Query(ctx, `
		INSERT INTO comments (title, text, recipe_id, author_id)
		VALUES ($1, $2, $3, $4)
		RETURNING `+commentColumns,
		c.Title, c.Text, c.RecipeID, c.AuthorID,
	)
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}
	return collectComment(rows, "insert comment")
}

func (r *CommentRepository) GetByID(ctx context.Context, recipeID, commentID int64) (*model.Comment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE id = $1 AND recipe_id = $2`, commentID, recipeID)
	if err != nil {
		return nil, fmt.Errorf("get comment id=%d: %w", commentID, err)
	}
	return collectComment(rows, fmt.Sprintf("get comment id=%d", commentID))
}

// Update changes title and text when given; nil keeps the stored value.
func (r *CommentRepository) Update(ctx context.Context, recipeID, commentID int64, title, text *string) (*model.Comment, error) {
	rows, err := r.pool.Query(ctx, `
		UPDATE comments SET title = COALESCE($3, title), text = COALESCE($4, text)
		WHERE id = $1 AND recipe_id = $2
		RETURNING `+commentColumns,
		commentID, recipeID, title, text,
	)
	if err != nil {
		return nil, fmt.Errorf("update comment id=%d: %w", commentID, err)
	}
	return collectComment(rows, fmt.Sprintf("update comment id=%d", commentID))
}

func (r *CommentRepository) Delete(ctx context.Context, recipeID, commentID int64) error {
	return deleteByID(ctx, r.pool, commentsTable,
		`DELETE FROM comments WHERE id = $1 AND recipe_id = $2`, commentID, recipeID)
}

func collectComment(rows pgx.Rows, op string) (*model.Comment, error) {
	comment, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Comment])
	if err != nil {
		return nil, sqlerr.WithTable(commentsTable, fmt.Errorf("%s: %w", op, err))
	}
	return comment, nil
}
