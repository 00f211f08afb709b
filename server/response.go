package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/blossomhq/blossom/internal/logger"
	"github.com/blossomhq/blossom/internal/model"
	"github.com/labstack/echo/v4"
)

// respond writes the standard success envelope with the payload fields
// merged in at the top level.
func respond(c echo.Context, status int, message string, payload echo.Map) error {
	body := echo.Map{
		"status":    "success",
		"message":   message,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	for k, v := range payload {
		body[k] = v
	}
	return c.JSON(status, body)
}

// respondError maps a domain error to its HTTP status and writes the
// error envelope. Unexpected errors are logged and surfaced as a generic
// message; internals never reach the client.
func respondError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	message := err.Error()

	switch {
	case errors.Is(err, model.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, model.ErrUnauthorized),
		errors.Is(err, model.ErrTokenExpired),
		errors.Is(err, model.ErrTokenMalformed):
		status = http.StatusUnauthorized
	case errors.Is(err, model.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, model.ErrConflict):
		status = http.StatusConflict
	default:
		logger.Error("unexpected error", logger.F("error", err))
		message = "Something went wrong in the garden. Please try again."
	}

	return c.JSON(status, echo.Map{
		"status":     "error",
		"error":      message,
		"suggestion": "Please check your data and try again",
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	})
}
