package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/taskdeck/api/internal/infrastructure/logger"
	"github.com/taskdeck/api/internal/ports"
)

// NoteHandler handles task note requests
type NoteHandler struct {
	noteService ports.NoteService
	logger      *logger.Logger
}

// NewNoteHandler creates a new note handler
func NewNoteHandler(noteService ports.NoteService, logger *logger.Logger) *NoteHandler {
	return &NoteHandler{
		noteService: noteService,
		logger:      logger,
	}
}

// ListNotes handles GET /tasks/:id/notes
func (h *NoteHandler) ListNotes(c echo.Context) error {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusNotFound, "Task not found")
	}

	notes, err := h.noteService.ListNotes(c.Request().Context(), currentUserID(c), taskID)
	if err != nil {
		return respondServiceError(c, h.logger, err, "Failed to fetch notes")
	}

	return respond(c, http.StatusOK, echo.Map{
		"notes": notes,
	})
}

// CreateNote handles POST /tasks/:id/notes
func (h *NoteHandler) CreateNote(c echo.Context) error {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusNotFound, "Task not found")
	}

	var req ports.NoteRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request format")
	}

	note, err := h.noteService.CreateNote(c.Request().Context(), currentUserID(c), taskID, req)
	if err != nil {
		return respondServiceError(c, h.logger, err, "Failed to add note")
	}

	return respond(c, http.StatusCreated, echo.Map{
		"message": "Note added successfully",
		"note":    note,
	})
}

// UpdateNote handles PUT /tasks/:id/notes/:noteId
func (h *NoteHandler) UpdateNote(c echo.Context) error {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusNotFound, "Task not found")
	}

	noteID, err := uuid.Parse(c.Param("noteId"))
	if err != nil {
		return respondError(c, http.StatusNotFound, "Note not found")
	}

	var req ports.NoteRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request format")
	}

	note, err := h.noteService.UpdateNote(c.Request().Context(), currentUserID(c), taskID, noteID, req)
	if err != nil {
		return respondServiceError(c, h.logger, err, "Failed to update note")
	}

	return respond(c, http.StatusOK, echo.Map{
		"message": "Note updated successfully",
		"note":    note,
	})
}

// DeleteNote handles DELETE /tasks/:id/notes/:noteId
func (h *NoteHandler) DeleteNote(c echo.Context) error {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusNotFound, "Task not found")
	}

	noteID, err := uuid.Parse(c.Param("noteId"))
	if err != nil {
		return respondError(c, http.StatusNotFound, "Note not found")
	}

	if err := h.noteService.DeleteNote(c.Request().Context(), currentUserID(c), taskID, noteID); err != nil {
		return respondServiceError(c, h.logger, err, "Failed to delete note")
	}

	return respond(c, http.StatusOK, echo.Map{
		"message": "Note deleted successfully",
	})
}
