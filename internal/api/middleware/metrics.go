package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/notaspace/notaspace-client/internal/api/metrics"
)

// Metrics counts agent requests by route template and status code. Errors
// are rendered here so the recorded code is the one the client receives.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := next(c); err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			metrics.AgentRequestsTotal.WithLabelValues(route, strconv.Itoa(c.Response().Status)).Inc()
			return nil
		}
	}
}
