package handler

import (
	"github.com/deppfellow/recipebook/internal/model"
	"github.com/deppfellow/recipebook/internal/server"
	"github.com/deppfellow/recipebook/internal/service"
	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	Handler
	authService *service.AuthService
}

func NewAuthHandler(s *server.Server, authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		Handler:     NewHandler(s),
		authService: authService,
	}
}

func (h *AuthHandler) Register(c echo.Context, req *model.RegisterRequest) (*model.User, error) {
	return h.authService.Register(c.Request().Context(), req)
}

func (h *AuthHandler) Login(c echo.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	return h.authService.Login(c.Request().Context(), req)
}

func (h *AuthHandler) GetUser(c echo.Context, req *model.GetUserRequest) (*model.User, error) {
	return h.authService.GetUser(c.Request().Context(), req.UserID)
}
