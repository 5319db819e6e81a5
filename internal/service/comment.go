package service

import (
	"context"

	"github.com/deppfellow/recipebook/internal/model"
)

type CommentService struct {
	comments CommentStore
}

func NewCommentService(comments CommentStore) *CommentService {
	return &CommentService{comments: comments}
}

// List returns the comments of a recipe; an unknown recipe has none.
func (s *CommentService) List(ctx context.Context, recipeID int64) ([]model.Comment, error) {
	return s.comments.ListByRecipe(ctx, recipeID)
}

func (s *CommentService) Create(ctx context.Context, req *model.CreateCommentRequest) (*model.Comment, error) {
	req.Normalize()
	return s.comments.Create(ctx, model.Comment{
		Title:    req.Title,
		Text:     req.Text,
		RecipeID: req.RecipeID,
		AuthorID: req.AuthorID,
	})
}

func (s *CommentService) Get(ctx context.Context, req *model.CommentIDRequest) (*model.Comment, error) {
	return s.comments.GetByID(ctx, req.RecipeID, req.CommentID)
}

func (s *CommentService) Update(ctx context.Context, req *model.UpdateCommentRequest) (*model.Comment, error) {
	return s.comments.Update(ctx, req.RecipeID, req.CommentID, req.Title, req.Text)
}

func (s *CommentService) Delete(ctx context.Context, req *model.CommentIDRequest) (*model.DeletedResponse, error) {
	if err := s.comments.Delete(ctx, req.RecipeID, req.CommentID); err != nil {
		return nil, err
	}
	return &model.DeletedResponse{Deleted: true}, nil
}
