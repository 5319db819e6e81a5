package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/recipebook/internal/model"
	"github.com/deppfellow/recipebook/internal/sqlerr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	recipesTable  = "recipes"
	recipeColumns = "r.id, r.title, r.description, r.ingredients, r.steps, r.likes, r.front_image, " +
		"r.first_image, r.second_image, r.third_image, r.category_id, r.author_id"
	recipeReturning = "id, title, description, ingredients, steps, likes, front_image, " +
		"first_image, second_image, third_image, category_id, author_id"
)

type RecipeRepository struct {
	pool *pgxpool.Pool
}

func NewRecipeRepository(pool *pgxpool.Pool) *RecipeRepository {
	return &RecipeRepository{pool: pool}
}

func (r *RecipeRepository) List(ctx context.Context) ([]model.Recipe, error) {
	return r.list(ctx, "list recipes",
		`SELECT `+recipeColumns+` FROM recipes r ORDER BY r.id`)
}

// ListByCategory returns an empty list for an unknown category.
func (r *RecipeRepository) ListByCategory(ctx context.Context, categoryID int64) ([]model.Recipe, error) {
	return r.list(ctx, fmt.Sprintf("list recipes category_id=%d", categoryID),
		`SELECT `+recipeColumns+` FROM recipes r WHERE r.category_id = $1 ORDER BY r.id`, categoryID)
}

// ListTopLiked returns up to limit recipes, most liked first, ties by id.
func (r *RecipeRepository) ListTopLiked(ctx context.Context, limit int) ([]model.Recipe, error) {
	return r.list(ctx, "list top recipes",
		`SELECT `+recipeColumns+` FROM recipes r ORDER BY r.likes DESC, r.id LIMIT $1`, limit)
}

func (r *RecipeRepository) ListFollowedBy(ctx context.Context, userID int64) ([]model.Recipe, error) {
	return r.list(ctx, fmt.Sprintf("list recipes followed by user_id=%d", userID), `
		SELECT `+recipeColumns+`
		FROM recipes r
		JOIN recipe_followers rf ON rf.recipe_id = r.id
		WHERE rf.user_id = $1
		ORDER BY r.id`, userID)
}

func (r *RecipeRepository) GetByID(ctx context.Context, id int64) (*model.Recipe, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+recipeColumns+` FROM recipes r WHERE r.id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get recipe id=%d: %w", id, err)
	}
	return r.collectOne(ctx, rows, fmt.Sprintf("get recipe id=%d", id))
}

func (r *RecipeRepository) Create(ctx context.Context, in model.RecipeInput, likes int64) (*model.Recipe, error) {
	rows, err := r.pool.Query(ctx, `
		INSERT INTO recipes (title, description, ingredients, steps, likes, front_image,
			first_image, second_image, third_image, category_id, author_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+recipeReturning,
		in.Title, in.Description, in.Ingredients, in.Steps, likes, in.FrontImage,
		in.FirstImage, in.SecondImage, in.ThirdImage, in.CategoryID, in.AuthorID,
	)
	if err != nil {
		return nil, fmt.Errorf("insert recipe: %w", err)
	}
	return r.collectOne(ctx, rows, "insert recipe")
}

// Update replaces every writable field of the recipe. The like counter is
// left as it is.
func (r *RecipeRepository) Update(ctx context.Context, id int64, in model.RecipeInput) (*model.Recipe, error) {
	rows, err := r.pool.Query(ctx, `
		UPDATE recipes SET
			title = $2, description = $3, ingredients = $4, steps = $5,
			front_image = $6, first_image = $7, second_image = $8, third_image = $9,
			category_id = $10, author_id = $11
		WHERE id = $1
		RETURNING `+recipeReturning,
		id, in.Title, in.Description, in.Ingredients, in.Steps, in.FrontImage,
		in.FirstImage, in.SecondImage, in.ThirdImage, in.CategoryID, in.AuthorID,
	)
	if err != nil {
		return nil, fmt.Errorf("update recipe id=%d: %w", id, err)
	}
	return r.collectOne(ctx, rows, fmt.Sprintf("update recipe id=%d", id))
}

func (r *RecipeRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.pool, recipesTable, `DELETE FROM recipes WHERE id = $1`, id)
}

// IncrementLikes adds one like in a single statement and returns the new count.
func (r *RecipeRepository) IncrementLikes(ctx context.Context, id int64) (int64, error) {
	var likes int64
	err := r.pool.QueryRow(ctx,
		`UPDATE recipes SET likes = likes + 1 WHERE id = $1 RETURNING likes`, id,
	).Scan(&likes)
	if err != nil {
		return 0, sqlerr.WithTable(recipesTable, fmt.Errorf("like recipe id=%d: %w", id, err))
	}
	return likes, nil
}

// ToggleFollower removes the follow when present and adds it otherwise.
// It reports whether the user follows the recipe afterwards.
func (r *RecipeRepository) ToggleFollower(ctx context.Context, recipeID, userID int64) (bool, error) {
	var following bool

	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		// Locking the recipe row serializes concurrent toggles on it.
		var id int64
		err := tx.QueryRow(ctx, `SELECT id FROM recipes WHERE id = $1 FOR UPDATE`, recipeID).Scan(&id)
		if err != nil {
			return sqlerr.WithTable(recipesTable, fmt.Errorf("lock recipe id=%d: %w", recipeID, err))
		}

		tag, err := tx.Exec(ctx,
			`DELETE FROM recipe_followers WHERE recipe_id = $1 AND user_id = $2`, recipeID, userID)
		if err != nil {
			return fmt.Errorf("unfollow recipe id=%d: %w", recipeID, err)
		}
		if tag.RowsAffected() > 0 {
			following = false
			return nil
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO recipe_followers (recipe_id, user_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING`, recipeID, userID)
		if err != nil {
			return fmt.Errorf("follow recipe id=%d: %w", recipeID, err)
		}
		following = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return following, nil
}

func (r *RecipeRepository) list(ctx context.Context, op, query string, args ...any) ([]model.Recipe, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	recipes, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Recipe])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := r.attachFollowers(ctx, recipes); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return recipes, nil
}

func (r *RecipeRepository) collectOne(ctx context.Context, rows pgx.Rows, op string) (*model.Recipe, error) {
	recipe, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.Recipe])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sqlerr.WithTable(recipesTable, fmt.Errorf("%s: %w", op, err))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	recipes := []model.Recipe{recipe}
	if err := r.attachFollowers(ctx, recipes); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &recipes[0], nil
}

// attachFollowers loads the followers of all recipes with one query.
func (r *RecipeRepository) attachFollowers(ctx context.Context, recipes []model.Recipe) error {
	if len(recipes) == 0 {
		return nil
	}

	ids := make([]int64, len(recipes))
	index := make(map[int64]int, len(recipes))
	for i := range recipes {
		recipes[i].Followers = []model.User{}
		ids[i] = recipes[i].ID
		index[recipes[i].ID] = i
	}

	rows, err := r.pool.Query(ctx, `
		SELECT rf.recipe_id, u.id, u.username, u.email, u.first_name, u.last_name,
			u.is_superuser, u.date_joined
		FROM recipe_followers rf
		JOIN users u ON u.id = rf.user_id
		WHERE rf.recipe_id = ANY($1)
		ORDER BY rf.recipe_id, u.id`, ids)
	if err != nil {
		return fmt.Errorf("load followers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var recipeID int64
		var u model.User
		if err := rows.Scan(&recipeID, &u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName,
			&u.IsSuperuser, &u.DateJoined); err != nil {
			return fmt.Errorf("scan follower: %w", err)
		}
		i := index[recipeID]
		recipes[i].Followers = append(recipes[i].Followers, u)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load followers: %w", err)
	}
	return nil
}
