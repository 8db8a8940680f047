package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/quicknotes/notes-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Errors  []domain.FieldError `json:"errors,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps validation and domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"success":false,"message":...,"errors":...}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg, fields := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Message: msg, Errors: fields})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string, []domain.FieldError) {
	// Echo's own errors: bind failures, and the router's 404 for
	// unmatched paths.
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code == http.StatusNotFound {
			return he.Code, "Not Found - " + c.Request().URL.Path, nil
		}
		return he.Code, fmt.Sprintf("%v", he.Message), nil
	}

	// Structured field errors from entities and services.
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ve.Error(), ve.Fields
	}

	// Known domain errors, deterministic codes and messages.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials", nil
	case errors.Is(err, domain.ErrUsernameTaken):
		return http.StatusBadRequest, "Username already exists", nil
	case errors.Is(err, domain.ErrNoteNotFound):
		return http.StatusNotFound, "Note not found", nil
	case errors.Is(err, domain.ErrImageNotFound):
		return http.StatusNotFound, "Image not found", nil
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Internal server error", nil
}
