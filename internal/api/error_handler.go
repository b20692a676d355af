package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/olufemi424/cpa-automation/internal/core/domain"
)

// errorBody is the error half of the canonical response envelope.
type errorBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// errorEnvelope is the uniform shape for all API failures:
// {"success": false, "error": {"message", "code"}, "timestamp"}.
type errorEnvelope struct {
	Success   bool      `json:"success"`
	Error     errorBody `json:"error"`
	Timestamp string    `json:"timestamp"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to stable machine-readable codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders the consistent JSON envelope for every failure.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, code, msg := resolveError(err, log, c)
		_ = c.JSON(status, errorEnvelope{
			Success:   false,
			Error:     errorBody{Message: msg, Code: code},
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (status int, code, msg string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, httpCode(he.Code), fmt.Sprintf("%v", he.Message)
	}

	// Field-level validation failures carry the failing field.
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, "VALIDATION_ERROR", ve.Error()
	}

	switch {
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "UNAUTHORIZED", "invalid credentials"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN", "you don't have permission to access this resource"
	case errors.Is(err, domain.ErrClientNotFound):
		return http.StatusNotFound, "NOT_FOUND", "client not found"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "NOT_FOUND", "user not found"
	case errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound, "NOT_FOUND", "task not found"
	case errors.Is(err, domain.ErrDocumentNotFound):
		return http.StatusNotFound, "NOT_FOUND", "document not found"
	case errors.Is(err, domain.ErrMessageNotFound):
		return http.StatusNotFound, "NOT_FOUND", "message not found"
	case errors.Is(err, domain.ErrInvalidStatus):
		return http.StatusBadRequest, "VALIDATION_ERROR", "invalid status value"
	case errors.Is(err, domain.ErrParentMismatch):
		return http.StatusBadRequest, "VALIDATION_ERROR", err.Error()
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusBadRequest, "VALIDATION_ERROR", err.Error()
	case errors.Is(err, domain.ErrFileTypeNotAllowed):
		return http.StatusBadRequest, "VALIDATION_ERROR", "invalid file type, only PDF, JPG, PNG and DOC files are allowed"
	case errors.Is(err, domain.ErrDuplicateEmail), errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "DUPLICATE_EMAIL", "email already in use"
	case errors.Is(err, domain.ErrLastAdmin):
		return http.StatusBadRequest, "LAST_ADMIN", err.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error"
}

func httpCode(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return "VALIDATION_ERROR"
	case http.StatusTooManyRequests:
		return "RATE_LIMIT_EXCEEDED"
	}
	return "INTERNAL_ERROR"
}
