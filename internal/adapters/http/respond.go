package http

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/taskdeck/api/internal/domain/entities"
	"github.com/taskdeck/api/internal/infrastructure/logger"
)

// ContextUserKey is where the auth middleware stores the authenticated user id
const ContextUserKey = "user_id"

// respond writes the fixed success envelope with the given resource payload
func respond(c echo.Context, status int, payload echo.Map) error {
	body := echo.Map{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	return c.JSON(status, body)
}

// respondError writes the fixed failure envelope
func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, echo.Map{
		"success": false,
		"message": message,
	})
}

// respondServiceError maps a service error onto the envelope: field
// violations become 422 with the per-field map, missing/not-owned resources
// become 404, and anything else is logged and reported as an internal fault.
func respondServiceError(c echo.Context, log *logger.Logger, err error, failMessage string) error {
	var ve *entities.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"success": false,
			"message": "Validation failed",
			"errors":  ve.Fields,
		})
	case errors.Is(err, entities.ErrTaskNotFound):
		return respondError(c, http.StatusNotFound, "Task not found")
	case errors.Is(err, entities.ErrNoteNotFound):
		return respondError(c, http.StatusNotFound, "Note not found")
	default:
		log.Errorw(failMessage, "error", err, "path", c.Request().URL.Path)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"message": failMessage,
			"error":   err.Error(),
		})
	}
}

// currentUserID returns the authenticated user's id placed in the context by
// the auth middleware.
func currentUserID(c echo.Context) uuid.UUID {
	if id, ok := c.Get(ContextUserKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}
