// Package router assembles the echo instance: global middleware, the
// /api routes and the system routes.
package router

import (
	"net/http"

	"github.com/deppfellow/recipebook/internal/handler"
	"github.com/deppfellow/recipebook/internal/middleware"
	"github.com/deppfellow/recipebook/internal/server"
	"github.com/labstack/echo/v4"
)

func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	mw := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.JSONSerializer = jsonSerializer{}
	router.HTTPErrorHandler = mw.Global.GlobalErrorHandler

	router.Use(
		mw.Global.Recover(),
		middleware.RequestID(),
		mw.Tracing.NewRelicMiddleware(),
		mw.Tracing.EnhanceTracing(),
		mw.ContextEnhancer.EnhanceContext(),
		mw.Metrics.Record(),
		mw.Global.RequestLogger(),
		mw.Global.CORS(),
		mw.Global.Secure(),
	)

	registerSystemRoutes(router, h)

	api := router.Group("/api")
	registerAuthRoutes(api, h, mw)
	registerCategoryRoutes(api, h)
	registerRecipeRoutes(api, h, mw)
	registerCommentRoutes(api, h)

	return router
}

func registerAuthRoutes(api *echo.Group, h *handler.Handlers, mw *middleware.Middlewares) {
	limit := mw.RateLimit.Limit()

	api.POST("/register", handler.Handle(h.Auth.Handler, h.Auth.Register, http.StatusCreated), limit)
	api.POST("/login", handler.Handle(h.Auth.Handler, h.Auth.Login, http.StatusOK), limit)
	api.GET("/users/:user_id", handler.Handle(h.Auth.Handler, h.Auth.GetUser, http.StatusOK))
}

func registerCategoryRoutes(api *echo.Group, h *handler.Handlers) {
	ch := h.Category
	categories := api.Group("/categories")

	categories.GET("", handler.Handle(ch.Handler, ch.List, http.StatusOK))
	categories.POST("", handler.Handle(ch.Handler, ch.Create, http.StatusCreated))
	categories.GET("/:category_id", handler.Handle(ch.Handler, ch.Get, http.StatusOK))
	categories.PUT("/:category_id", handler.Handle(ch.Handler, ch.Update, http.StatusOK))
	categories.DELETE("/:category_id", handler.Handle(ch.Handler, ch.Delete, http.StatusOK))
	categories.GET("/:category_id/recipes", handler.Handle(ch.Handler, ch.Recipes, http.StatusOK))
}

func registerRecipeRoutes(api *echo.Group, h *handler.Handlers, mw *middleware.Middlewares) {
	rh := h.Recipe
	recipes := api.Group("/recipes")

	recipes.GET("", handler.Handle(rh.Handler, rh.List, http.StatusOK))
	recipes.POST("", handler.Handle(rh.Handler, rh.Create, http.StatusCreated))

	// Static segments win over :recipe_id in echo's router.
	recipes.GET("/top_ten", handler.Handle(rh.Handler, rh.TopTen, http.StatusOK))
	recipes.GET("/followed", handler.Handle(rh.Handler, rh.Followed, http.StatusOK), mw.Auth.RequireAuth)

	recipes.GET("/:recipe_id", handler.Handle(rh.Handler, rh.Get, http.StatusOK))
	recipes.PUT("/:recipe_id", handler.Handle(rh.Handler, rh.Update, http.StatusOK))
	recipes.DELETE("/:recipe_id", handler.Handle(rh.Handler, rh.Delete, http.StatusOK))
	recipes.PUT("/:recipe_id/like", handler.Handle(rh.Handler, rh.Like, http.StatusOK), mw.Auth.RequireAuth)
	recipes.PUT("/:recipe_id/follow", handler.Handle(rh.Handler, rh.ToggleFollow, http.StatusOK), mw.Auth.RequireAuth)
}

func registerCommentRoutes(api *echo.Group, h *handler.Handlers) {
	cm := h.Comment
	comments := api.Group("/recipes/:recipe_id/comments")

	comments.GET("", handler.Handle(cm.Handler, cm.List, http.StatusOK))
	comments.POST("", handler.Handle(cm.Handler, cm.Create, http.StatusCreated))
	comments.GET("/:comment_id", handler.Handle(cm.Handler, cm.Get, http.StatusOK))
	comments.PUT("/:comment_id", handler.Handle(cm.Handler, cm.Update, http.StatusOK))
	comments.DELETE("/:comment_id", handler.Handle(cm.Handler, cm.Delete, http.StatusOK))
}
