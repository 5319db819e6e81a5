package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/deppfellow/recipebook/internal/middleware"
	"github.com/deppfellow/recipebook/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

type checkResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

type healthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]checkResult `json:"checks"`
}

// CheckHealth pings every enabled dependency and answers 503 if any fails.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checksCfg := h.server.Config.Observability.HealthChecks

	probes := map[string]func(ctx context.Context) error{}
	if h.server.DB != nil && checksCfg.CheckEnabled("database") {
		probes["database"] = h.server.DB.Pool.Ping
	}
	if h.server.Redis != nil && checksCfg.CheckEnabled("redis") {
		probes["redis"] = func(ctx context.Context) error {
			return h.server.Redis.Ping(ctx).Err()
		}
	}

	response := healthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      make(map[string]checkResult, len(probes)),
	}

	for name, probe := range probes {
		result := h.runCheck(c.Request().Context(), &logger, name, checksCfg.Timeout, probe)
		if result.Status != "healthy" {
			response.Status = "unhealthy"
		}
		response.Checks[name] = result
	}

	if response.Status != "healthy" {
		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")
	return c.JSON(http.StatusOK, response)
}

func (h *HealthHandler) runCheck(
	parent context.Context,
	logger *zerolog.Logger,
	name string,
	timeout time.Duration,
	probe func(ctx context.Context) error,
) checkResult {
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	start := time.Now()
	err := probe(ctx)
	elapsed := time.Since(start)

	if err == nil {
		return checkResult{Status: "healthy", ResponseTime: elapsed.String()}
	}

	logger.Error().
		Err(err).
		Str("check", name).
		Dur("response_time", elapsed).
		Msg("health check failed")

	if app := h.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("HealthCheckError", map[string]any{
			"check_type":       name,
			"operation":        "health_check",
			"error_type":       name + "_unhealthy",
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    err.Error(),
		})
	}

	return checkResult{Status: "unhealthy", ResponseTime: elapsed.String(), Error: err.Error()}
}
