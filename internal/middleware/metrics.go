package middleware

import (
	"time"

	"github.com/deppfellow/recipebook/internal/lib/metrics"
	"github.com/labstack/echo/v4"
)

// MetricsMiddleware records Prometheus request counters and latencies,
// labelled by route template rather than raw path.
type MetricsMiddleware struct{}

func NewMetricsMiddleware() *MetricsMiddleware {
	return &MetricsMiddleware{}
}

func (m *MetricsMiddleware) Record() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			metrics.TrackActiveRequest(true)
			defer metrics.TrackActiveRequest(false)

			err := next(c)

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			status := statusFromError(err, c.Response().Status)
			metrics.RecordAPIRequest(c.Request().Method, route, status, time.Since(start))

			return err
		}
	}
}
