package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/api/internal/domain/entities"
	"github.com/taskdeck/api/internal/infrastructure/logger"
	"github.com/taskdeck/api/internal/ports"
)

type noteServiceMock struct {
	mock.Mock
}

func (m *noteServiceMock) ListNotes(ctx context.Context, userID, taskID uuid.UUID) ([]*entities.TaskNote, error) {
	args := m.Called(ctx, userID, taskID)

	var notes []*entities.TaskNote
	if value := args.Get(0); value != nil {
		notes = value.([]*entities.TaskNote)
	}
	return notes, args.Error(1)
}

func (m *noteServiceMock) CreateNote(ctx context.Context, userID, taskID uuid.UUID, req ports.NoteRequest) (*entities.TaskNote, error) {
	args := m.Called(ctx, userID, taskID, req)

	var note *entities.TaskNote
	if value := args.Get(0); value != nil {
		note = value.(*entities.TaskNote)
	}
	return note, args.Error(1)
}

func (m *noteServiceMock) UpdateNote(ctx context.Context, userID, taskID, noteID uuid.UUID, req ports.NoteRequest) (*entities.TaskNote, error) {
	args := m.Called(ctx, userID, taskID, noteID, req)

	var note *entities.TaskNote
	if value := args.Get(0); value != nil {
		note = value.(*entities.TaskNote)
	}
	return note, args.Error(1)
}

func (m *noteServiceMock) DeleteNote(ctx context.Context, userID, taskID, noteID uuid.UUID) error {
	args := m.Called(ctx, userID, taskID, noteID)
	return args.Error(0)
}

func TestNoteHandler_ListNotes_ForeignTask(t *testing.T) {
	userID := uuid.New()
	taskID := uuid.New()

	svc := new(noteServiceMock)
	svc.On("ListNotes", mock.Anything, userID, taskID).
		Return(nil, entities.ErrTaskNotFound).Once()

	h := NewNoteHandler(svc, logger.NewNop())

	c, rec := newTestContext(t, http.MethodGet, "/api/v1/tasks/"+taskID.String()+"/notes", "", userID)
	c.SetParamNames("id")
	c.SetParamValues(taskID.String())
	require.NoError(t, h.ListNotes(c))

	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	require.Equal(t, false, body["success"])
	require.Equal(t, "Task not found", body["message"])
	svc.AssertExpectations(t)
}

func TestNoteHandler_CreateNote(t *testing.T) {
	userID := uuid.New()
	taskID := uuid.New()
	created := &entities.TaskNote{
		ID:      uuid.New(),
		TaskID:  taskID,
		Content: "Book the hotel",
	}

	svc := new(noteServiceMock)
	svc.On("CreateNote", mock.Anything, userID, taskID, ports.NoteRequest{Content: "Book the hotel"}).
		Return(created, nil).Once()

	h := NewNoteHandler(svc, logger.NewNop())

	c, rec := newTestContext(t, http.MethodPost, "/api/v1/tasks/"+taskID.String()+"/notes",
		`{"content":"Book the hotel"}`, userID)
	c.SetParamNames("id")
	c.SetParamValues(taskID.String())
	require.NoError(t, h.CreateNote(c))

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	require.Equal(t, true, body["success"])
	require.Equal(t, "Note added successfully", body["message"])

	note := body["note"].(map[string]interface{})
	require.Equal(t, "Book the hotel", note["content"])
	svc.AssertExpectations(t)
}

func TestNoteHandler_UpdateNote_ValidationFailure(t *testing.T) {
	userID := uuid.New()
	taskID := uuid.New()
	noteID := uuid.New()

	svc := new(noteServiceMock)
	svc.On("UpdateNote", mock.Anything, userID, taskID, noteID, ports.NoteRequest{}).
		Return(nil, &entities.ValidationError{Fields: map[string][]string{
			"content": {"The content field is required."},
		}}).Once()

	h := NewNoteHandler(svc, logger.NewNop())

	c, rec := newTestContext(t, http.MethodPut, "/api/v1/tasks/"+taskID.String()+"/notes/"+noteID.String(),
		`{}`, userID)
	c.SetParamNames("id", "noteId")
	c.SetParamValues(taskID.String(), noteID.String())
	require.NoError(t, h.UpdateNote(c))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decodeBody(t, rec)
	require.Equal(t, false, body["success"])
	require.Equal(t, "Validation failed", body["message"])

	errs := body["errors"].(map[string]interface{})
	require.Contains(t, errs, "content")
	svc.AssertExpectations(t)
}

func TestNoteHandler_DeleteNote(t *testing.T) {
	userID := uuid.New()
	taskID := uuid.New()
	noteID := uuid.New()

	svc := new(noteServiceMock)
	svc.On("DeleteNote", mock.Anything, userID, taskID, noteID).Return(nil).Once()

	h := NewNoteHandler(svc, logger.NewNop())

	c, rec := newTestContext(t, http.MethodDelete, "/api/v1/tasks/"+taskID.String()+"/notes/"+noteID.String(), "", userID)
	c.SetParamNames("id", "noteId")
	c.SetParamValues(taskID.String(), noteID.String())
	require.NoError(t, h.DeleteNote(c))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	require.Equal(t, true, body["success"])
	require.Equal(t, "Note deleted successfully", body["message"])
	svc.AssertExpectations(t)
}

func TestNoteHandler_DeleteNote_MalformedNoteID(t *testing.T) {
	userID := uuid.New()
	taskID := uuid.New()

	svc := new(noteServiceMock)
	h := NewNoteHandler(svc, logger.NewNop())

	c, rec := newTestContext(t, http.MethodDelete, "/api/v1/tasks/"+taskID.String()+"/notes/42", "", userID)
	c.SetParamNames("id", "noteId")
	c.SetParamValues(taskID.String(), "42")
	require.NoError(t, h.DeleteNote(c))

	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	require.Equal(t, "Note not found", body["message"])
	svc.AssertNotCalled(t, "DeleteNote")
}
