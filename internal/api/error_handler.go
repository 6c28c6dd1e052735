package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/notaspace/notaspace-client/internal/core/domain"
)

// errorResponse is the canonical error envelope for all agent errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler maps domain and backend errors to status codes and
// renders {"error": "<message>"}. Unexpected errors are logged and hidden.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Client-side gates.
	switch {
	case errors.Is(err, domain.ErrIdentityChannel), errors.Is(err, domain.ErrCodeIncomplete):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrCooldownActive):
		return http.StatusTooManyRequests, err.Error()
	case errors.Is(err, domain.ErrPageNotLoaded):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrTokenSave), errors.Is(err, domain.ErrDataConversion):
		log.Error().Err(err).Msg("session token could not be stored")
		return http.StatusInternalServerError, "failed to store session token"
	case errors.Is(err, context.Canceled):
		return 499, "request canceled"
	}

	// Backend pipeline failures.
	if ae := domain.AsAPIError(err); ae != nil {
		return resolveAPIError(ae, log, c)
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

// resolveAPIError passes backend 4xx answers through and reports everything
// else as a gateway problem.
func resolveAPIError(ae *domain.APIError, log zerolog.Logger, c echo.Context) (int, string) {
	switch ae.Kind {
	case domain.KindServer, domain.KindHTTP:
		if ae.StatusCode >= 400 && ae.StatusCode < 500 {
			return ae.StatusCode, ae.Error()
		}
		return http.StatusBadGateway, ae.Error()
	case domain.KindNetwork:
		return http.StatusServiceUnavailable, ae.Error()
	case domain.KindInvalidResponse, domain.KindDecoding:
		return http.StatusBadGateway, ae.Error()
	default:
		log.Error().Err(ae).Str("path", c.Path()).Msg("request could not be built")
		return http.StatusInternalServerError, ae.Error()
	}
}
