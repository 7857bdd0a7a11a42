package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mercadito/commerce-api/internal/core/domain"
)

// messageResponse is the canonical error envelope: {"mensaje": "<message>"}.
type messageResponse struct {
	Mensaje string `json:"mensaje"`
}

// fieldErrorsResponse renders per-field validation failures.
type fieldErrorsResponse struct {
	Errors domain.FieldErrors `json:"errors"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Renders field-rule violations as {"errors": {campo: mensaje}} with 400.
//   - Maps known domain errors to their HTTP status codes and the
//     {"mensaje": "<message>"} envelope.
//   - Logs unexpected errors internally without leaking details to clients.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var fe domain.FieldErrors
		if errors.As(err, &fe) {
			_ = c.JSON(http.StatusBadRequest, fieldErrorsResponse{Errors: fe})
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, messageResponse{Mensaje: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors carry their client-facing message.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrWeakPassword),
		errors.Is(err, domain.ErrUploadType),
		errors.Is(err, domain.ErrUploadTooLarge),
		errors.Is(err, domain.ErrUploadTooMany):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrRoleNotAllowed):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, err.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Ocurrió un error"
}
