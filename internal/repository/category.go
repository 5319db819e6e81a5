package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/recipebook/internal/model"
	"github.com/deppfellow/recipebook/internal/sqlerr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const categoriesTable = "categories"

type CategoryRepository struct {
	pool *pgxpool.Pool
}

func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

func (r *CategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	categories, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Category])
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (r *CategoryRepository) Create(ctx context.Context, name string) (*model.Category, error) {
	rows, err := r.pool.Query(ctx, `INSERT INTO categories (name) VALUES ($1) RETURNING id, name`, name)
	if err != nil {
		return nil, fmt.Errorf("insert category: %w", err)
	}
	return collectCategory(rows, "insert category")
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM categories WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get category id=%d: %w", id, err)
	}
	return collectCategory(rows, fmt.Sprintf("get category id=%d", id))
}

// Update changes the name when one is given; a nil name only re-reads the row.
func (r *CategoryRepository) Update(ctx context.Context, id int64, name *string) (*model.Category, error) {
	rows, err := r.pool.Query(ctx, `
		UPDATE categories SET name = COALESCE($2, name)
		WHERE id = $1
		RETURNING id, name`,
		id, name,
	)
	if err != nil {
		return nil, fmt.Errorf("update category id=%d: %w", id, err)
	}
	return collectCategory(rows, fmt.Sprintf("update category id=%d", id))
}

// Delete removes the category and, by cascade, its recipes.
func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.pool, categoriesTable, `DELETE FROM categories WHERE id = $1`, id)
}

func collectCategory(rows pgx.Rows, op string) (*model.Category, error) {
	category, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Category])
	if err != nil {
		return nil, sqlerr.WithTable(categoriesTable, fmt.Errorf("%s: %w", op, err))
	}
	return category, nil
}

// deleteByID runs a single-row DELETE and reports pgx.ErrNoRows when
// nothing matched.
func deleteByID(ctx context.Context, q querier, table, query string, args ...any) error {
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return sqlerr.WithTable(table, fmt.Errorf("delete from %s %v: %w", table, args, pgx.ErrNoRows))
	}
	return nil
}
