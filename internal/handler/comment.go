package handler

import (
	"github.com/deppfellow/recipebook/internal/model"
	"github.com/deppfellow/recipebook/internal/server"
	"github.com/deppfellow/recipebook/internal/service"
	"github.com/labstack/echo/v4"
)

type CommentHandler struct {
	Handler
	commentService *service.CommentService
}

func NewCommentHandler(s *server.Server, commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{
		Handler:        NewHandler(s),
		commentService: commentService,
	}
}

func (h *CommentHandler) List(c echo.Context, req *model.RecipeIDRequest) ([]model.Comment, error) {
	return h.commentService.List(c.Request().Context(), req.RecipeID)
}

func (h *CommentHandler) Create(c echo.Context, req *model.CreateCommentRequest) (*model.Comment, error) {
	return h.commentService.Create(c.Request().Context(), req)
}

func (h *CommentHandler) Get(c echo.Context, req *model.CommentIDRequest) (*model.Comment, error) {
	return h.commentService.Get(c.Request().Context(), req)
}

func (h *CommentHandler) Update(c echo.Context, req *model.UpdateCommentRequest) (*model.Comment, error) {
	return h.commentService.Update(c.Request().Context(), req)
}

func (h *CommentHandler) Delete(c echo.Context, req *model.CommentIDRequest) (*model.DeletedResponse, error) {
	return h.commentService.Delete(c.Request().Context(), req)
}
