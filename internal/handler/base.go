// Package handler adapts services to echo routes.
//
// Every JSON endpoint goes through Handle, which binds and validates a fresh
// request value, runs the service call and writes the result, logging and
// tracing each phase.
package handler

import (
	"time"

	"github.com/deppfellow/recipebook/internal/middleware"
	"github.com/deppfellow/recipebook/internal/server"
	"github.com/deppfellow/recipebook/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
)

type Handler struct {
	server *server.Server
}

func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// HandlerFunc is the business part of an endpoint: it receives the
// validated request and returns the value to serialize.
type HandlerFunc[Req validation.Validatable, Res any] func(c echo.Context, req Req) (Res, error)

// request constrains PReq to be a pointer to Req that can validate itself,
// so Handle can allocate a zero Req for every call.
type request[Req any] interface {
	*Req
	validation.Validatable
}

// Handle builds an echo handler that answers with status and the JSON
// encoding of fn's result.
func Handle[Req any, PReq request[Req], Res any](h Handler, fn HandlerFunc[PReq, Res], status int) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := PReq(new(Req))
		result, err := handleRequest(c, req, fn)
		if err != nil {
			return err
		}
		return c.JSON(status, result)
	}
}

func handleRequest[Req validation.Validatable, Res any](c echo.Context, req Req, fn HandlerFunc[Req, Res]) (Res, error) {
	var zero Res

	start := time.Now()
	route := c.Path()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
	}

	logger := middleware.GetLogger(c).With().
		Str("operation", "handler").
		Str("route", route).
		Logger()

	logger.Debug().Msg("handling request")

	validationStart := time.Now()
	if err := validation.BindAndValidate(c, req); err != nil {
		validationDuration := time.Since(validationStart)

		logger.Warn().
			Err(err).
			Dur("validation_duration", validationDuration).
			Msg("request validation failed")

		if txn != nil {
			txn.AddAttribute("validation.status", "failed")
			txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
		}

		return zero, err
	}
	validationDuration := time.Since(validationStart)

	if txn != nil {
		txn.AddAttribute("validation.status", "success")
		txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
	}

	handlerStart := time.Now()
	result, err := fn(c, req)
	handlerDuration := time.Since(handlerStart)

	if err != nil {
		logger.Debug().
			Err(err).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", time.Since(start)).
			Msg("handler execution failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("handler.status", "error")
			txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		}
		return zero, err
	}

	if txn != nil {
		txn.AddAttribute("handler.status", "success")
		txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		txn.AddAttribute("total.duration_ms", time.Since(start).Milliseconds())
	}

	logger.Debug().
		Dur("handler_duration", handlerDuration).
		Dur("validation_duration", validationDuration).
		Dur("total_duration", time.Since(start)).
		Msg("request completed successfully")

	return result, nil
}
