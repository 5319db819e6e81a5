//go:build integration

package repository_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/deppfellow/recipebook/internal/database"
	"github.com/deppfellow/recipebook/internal/model"
	"github.com/deppfellow/recipebook/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupRepositories(t *testing.T) *repository.Repositories {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:alpine",
		postgres.WithDatabase("recipebook"),
		postgres.WithUsername("recipes"),
		postgres.WithPassword("recipes"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	logger := zerolog.Nop()
	require.NoError(t, database.MigrateDSN(ctx, &logger, dsn))

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return repository.New(pool)
}

func seed(t *testing.T, repos *repository.Repositories) (*model.User, *model.Category) {
	t.Helper()
	ctx := context.Background()

	user, err := repos.User.Create(ctx, &model.User{Username: "anna", Email: "anna@example.com", PasswordHash: "x"})
	require.NoError(t, err)

	category, err := repos.Category.Create(ctx, "Breakfast")
	require.NoError(t, err)

	return user, category
}

func recipeInput(title string, categoryID, authorID int64) model.RecipeInput {
	return model.RecipeInput{
		Title:       title,
		Description: "desc",
		Ingredients: "ingredients",
		Steps:       "steps",
		FrontImage:  "front.jpg",
		CategoryID:  categoryID,
		AuthorID:    authorID,
	}
}

func TestRepositories(t *testing.T) {
	repos := setupRepositories(t)
	ctx := context.Background()
	user, category := seed(t, repos)

	t.Run("duplicate username is a unique violation", func(t *testing.T) {
		_, err := repos.User.Create(ctx, &model.User{Username: "anna", PasswordHash: "y"})
		var pgErr *pgconn.PgError
		require.True(t, errors.As(err, &pgErr))
		assert.Equal(t, "23505", pgErr.Code)
	})

	t.Run("recipe round trip", func(t *testing.T) {
		created, err := repos.Recipe.Create(ctx, recipeInput("Pancakes", category.ID, user.ID), 0)
		require.NoError(t, err)
		assert.Equal(t, int64(0), created.Likes)
		assert.Equal(t, "", created.SecondImage)
		assert.Empty(t, created.Followers)

		fetched, err := repos.Recipe.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, fetched)
	})

	t.Run("likes increment atomically", func(t *testing.T) {
		recipe, err := repos.Recipe.Create(ctx, recipeInput("Waffles", category.ID, user.ID), 0)
		require.NoError(t, err)

		var wg sync.WaitGroup
		for range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := repos.Recipe.IncrementLikes(ctx, recipe.ID)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		fetched, err := repos.Recipe.GetByID(ctx, recipe.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(20), fetched.Likes)

		updated, err := repos.Recipe.Update(ctx, recipe.ID, recipeInput("Belgian waffles", category.ID, user.ID))
		require.NoError(t, err)
		assert.Equal(t, "Belgian waffles", updated.Title)
		assert.Equal(t, int64(20), updated.Likes)

		_, err = repos.Recipe.IncrementLikes(ctx, 999999)
		assert.ErrorIs(t, err, pgx.ErrNoRows)
	})

	t.Run("follow toggles", func(t *testing.T) {
		recipe, err := repos.Recipe.Create(ctx, recipeInput("Omelette", category.ID, user.ID), 0)
		require.NoError(t, err)

		following, err := repos.Recipe.ToggleFollower(ctx, recipe.ID, user.ID)
		require.NoError(t, err)
		assert.True(t, following)

		fetched, err := repos.Recipe.GetByID(ctx, recipe.ID)
		require.NoError(t, err)
		require.Len(t, fetched.Followers, 1)
		assert.Equal(t, user.ID, fetched.Followers[0].ID)

		followed, err := repos.Recipe.ListFollowedBy(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, followed, 1)
		assert.Equal(t, recipe.ID, followed[0].ID)

		following, err = repos.Recipe.ToggleFollower(ctx, recipe.ID, user.ID)
		require.NoError(t, err)
		assert.False(t, following)

		_, err = repos.Recipe.ToggleFollower(ctx, 999999, user.ID)
		assert.ErrorIs(t, err, pgx.ErrNoRows)
	})

	t.Run("top liked ordering", func(t *testing.T) {
		top, err := repos.Recipe.ListTopLiked(ctx, model.TopRecipesLimit)
		require.NoError(t, err)
		require.NotEmpty(t, top)
		for i := 1; i < len(top); i++ {
			assert.GreaterOrEqual(t, top[i-1].Likes, top[i].Likes)
		}
	})

	t.Run("comments", func(t *testing.T) {
		recipe, err := repos.Recipe.Create(ctx, recipeInput("Porridge", category.ID, user.ID), 0)
		require.NoError(t, err)

		comment, err := repos.Comment.Create(ctx, model.Comment{
			Title: "Nice", Text: "Creamy", RecipeID: recipe.ID, AuthorID: user.ID,
		})
		require.NoError(t, err)

		text := "Very creamy"
		updated, err := repos.Comment.Update(ctx, recipe.ID, comment.ID, nil, &text)
		require.NoError(t, err)
		assert.Equal(t, "Nice", updated.Title)
		assert.Equal(t, text, updated.Text)

		require.NoError(t, repos.Comment.Delete(ctx, recipe.ID, comment.ID))
		_, err = repos.Comment.GetByID(ctx, recipe.ID, comment.ID)
		assert.ErrorIs(t, err, pgx.ErrNoRows)
	})

	t.Run("deleting a category cascades", func(t *testing.T) {
		other, err := repos.Category.Create(ctx, "Dessert")
		require.NoError(t, err)
		recipe, err := repos.Recipe.Create(ctx, recipeInput("Flan", other.ID, user.ID), 0)
		require.NoError(t, err)

		require.NoError(t, repos.Category.Delete(ctx, other.ID))

		_, err = repos.Recipe.GetByID(ctx, recipe.ID)
		assert.ErrorIs(t, err, pgx.ErrNoRows)

		err = repos.Category.Delete(ctx, other.ID)
		assert.ErrorIs(t, err, pgx.ErrNoRows)

		byCategory, err := repos.Recipe.ListByCategory(ctx, other.ID)
		require.NoError(t, err)
		assert.Empty(t, byCategory)
	})
}
