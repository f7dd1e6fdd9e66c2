// Package httputil provides gin helpers for error responses and query parsing.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/fieldguard/internal/errors"
)

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type errorMapping struct {
	target     error
	statusCode int
	code       string
	message    string // empty means err.Error() is safe to expose
}

// Order matters: the first matching sentinel wins.
var errorMappings = []errorMapping{
	{apperrors.ErrNotFound, http.StatusNotFound, "not_found", "The requested resource was not found"},
	{apperrors.ErrConflict, http.StatusConflict, "conflict", "A conflict occurred with existing data"},
	{apperrors.ErrInvalidInput, http.StatusUnprocessableEntity, "invalid_input", ""},
	{apperrors.ErrUnauthorized, http.StatusUnauthorized, "unauthorized", "Invalid credentials"},
	{apperrors.ErrForbidden, http.StatusForbidden, "forbidden", "You don't have permission to access this resource"},
	{apperrors.ErrIntegrity, http.StatusInternalServerError, "internal_error", "An internal error occurred"},
	{apperrors.ErrConfiguration, http.StatusInternalServerError, "internal_error", "An internal error occurred"},
}

// HandleErrorGin maps domain errors to a status code and JSON body. Integrity and
// configuration failures are logged in full but answered with a generic message.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	mapping := errorMapping{
		statusCode: http.StatusInternalServerError,
		code:       "internal_error",
		message:    "An internal error occurred",
	}
	for _, m := range errorMappings {
		if apperrors.Is(err, m.target) {
			mapping = m
			break
		}
	}

	message := mapping.message
	if message == "" {
		message = err.Error()
	}

	if logger != nil {
		level := slog.LevelWarn
		if mapping.statusCode >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(c.Request.Context(), level, "request failed",
			slog.Int("status_code", mapping.statusCode),
			slog.String("error_code", mapping.code),
			slog.Any("error", err),
		)
	}

	c.JSON(mapping.statusCode, ErrorResponse{Error: mapping.code, Message: message})
}

// HandleBadRequestGin writes a 400 for malformed JSON or parameters.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: err.Error()})
}

// HandleValidationErrorGin writes a 422 for request validation failures.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("validation failed", slog.Any("error", err))
	}
	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation_error", Message: err.Error()})
}
