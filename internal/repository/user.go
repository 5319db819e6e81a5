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
	usersTable   = "users"
	userColumns  = "id, username, email, first_name, last_name, is_superuser, date_joined, password_hash"
	userSelectBy = "SELECT " + userColumns + " FROM users WHERE "
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create inserts user and returns the stored row, including id and date_joined.
func (r *UserRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	rows, err := r.pool.Query(ctx, `
		INSERT INTO users (username, email, first_name, last_name, is_superuser, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+userColumns,
		user.Username, user.Email, user.FirstName, user.LastName, user.IsSuperuser, user.PasswordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("insert user %q: %w", user.Username, err)
	}

	created, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.User])
	if err != nil {
		return nil, fmt.Errorf("insert user %q: %w", user.Username, err)
	}
	return created, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return r.getOne(ctx, userSelectBy+"id = $1", id)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getOne(ctx, userSelectBy+"username = $1", username)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*model.User, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("get user %v: %w", arg, err)
	}

	user, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.User])
	if err != nil {
		return nil, sqlerr.WithTable(usersTable, fmt.Errorf("get user %v: %w", arg, err))
	}
	return user, nil
}
