package service

import (
	"context"

	"github.com/deppfellow/recipebook/internal/model"
	"github.com/hibiken/asynq"
)

// The store interfaces are satisfied by the pgx repositories. A missing
// record is reported as an error wrapping pgx.ErrNoRows.

type UserStore interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}

type CategoryStore interface {
	List(ctx context.Context) ([]model.Category, error)
	Create(ctx context.Context, name string) (*model.Category, error)
	GetByID(ctx context.Context, id int64) (*model.Category, error)
	Update(ctx context.Context, id int64, name *string) (*model.Category, error)
	Delete(ctx context.Context, id int64) error
}

type RecipeStore interface {
	List(ctx context.Context) ([]model.Recipe, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]model.Recipe, error)
	ListTopLiked(ctx context.Context, limit int) ([]model.Recipe, error)
	ListFollowedBy(ctx context.Context, userID int64) ([]model.Recipe, error)
	GetByID(ctx context.Context, id int64) (*model.Recipe, error)
	Create(ctx context.Context, in model.RecipeInput, likes int64) (*model.Recipe, error)
	Update(ctx context.Context, id int64, in model.RecipeInput) (*model.Recipe, error)
	Delete(ctx context.Context, id int64) error
	IncrementLikes(ctx context.Context, id int64) (int64, error)
	ToggleFollower(ctx context.Context, recipeID, userID int64) (bool, error)
}

type CommentStore interface {
	ListByRecipe(ctx context.Context, recipeID int64) ([]model.Comment, error)
	Create(ctx context.Context, c model.Comment) (*model.Comment, error)
	GetByID(ctx context.Context, recipeID, commentID int64) (*model.Comment, error)
	Update(ctx context.Context, recipeID, commentID int64, title, text *string) (*model.Comment, error)
	Delete(ctx context.Context, recipeID, commentID int64) error
}

// TaskEnqueuer is satisfied by *asynq.Client.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Stores groups the persistence dependencies of the services.
type Stores struct {
	Users      UserStore
	Categories CategoryStore
	Recipes    RecipeStore
	Comments   CommentStore
}
