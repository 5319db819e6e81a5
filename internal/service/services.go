// Package service contains the business logic.
//
// It sits between the handler and repository layers: handlers pass in
// validated requests, services apply the rules and call the stores.
package service

import (
	"github.com/deppfellow/recipebook/internal/lib/job"
	"github.com/deppfellow/recipebook/internal/repository"
	"github.com/deppfellow/recipebook/internal/server"
)

type Services struct {
	Auth     *AuthService
	Category *CategoryService
	Recipe   *RecipeService
	Comment  *CommentService
	Job      *job.JobService
}

// NewService wires the services onto the pgx repositories and the job client.
func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	stores := Stores{
		Users:      repos.User,
		Categories: repos.Category,
		Recipes:    repos.Recipe,
		Comments:   repos.Comment,
	}

	var enqueuer TaskEnqueuer
	if s.Job != nil {
		enqueuer = s.Job.Client
	}

	services := NewServices(s, stores, enqueuer)
	services.Job = s.Job
	return services, nil
}

// NewServices builds the services on arbitrary stores. A nil enqueuer
// disables background tasks.
func NewServices(s *server.Server, stores Stores, enqueuer TaskEnqueuer) *Services {
	return &Services{
		Auth:     NewAuthService(s, stores.Users, enqueuer),
		Category: NewCategoryService(stores.Categories, stores.Recipes),
		Recipe:   NewRecipeService(stores.Recipes),
		Comment:  NewCommentService(stores.Comments),
	}
}
