package handler

import (
	"github.com/deppfellow/recipebook/internal/server"
	"github.com/deppfellow/recipebook/internal/service"
)

type Handlers struct {
	Health   *HealthHandler
	OpenAPI  *OpenAPIHandler
	Auth     *AuthHandler
	Category *CategoryHandler
	Recipe   *RecipeHandler
	Comment  *CommentHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(s),
		OpenAPI:  NewOpenAPIHandler(s),
		Auth:     NewAuthHandler(s, services.Auth),
		Category: NewCategoryHandler(s, services.Category),
		Recipe:   NewRecipeHandler(s, services.Recipe),
		Comment:  NewCommentHandler(s, services.Comment),
	}
}
