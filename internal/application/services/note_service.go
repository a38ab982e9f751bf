package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/taskdeck/api/internal/domain/entities"
	"github.com/taskdeck/api/internal/infrastructure/logger"
	"github.com/taskdeck/api/internal/ports"
)

// NoteService handles note operations. Every operation resolves the parent
// task under the user's scope before touching the note, so a foreign task
// always surfaces as ErrTaskNotFound rather than a note-level error.
type NoteService struct {
	noteRepo ports.NoteRepository
	taskRepo ports.TaskRepository
	logger   *logger.Logger
}

// NewNoteService creates a new note service
func NewNoteService(noteRepo ports.NoteRepository, taskRepo ports.TaskRepository, logger *logger.Logger) *NoteService {
	return &NoteService{
		noteRepo: noteRepo,
		taskRepo: taskRepo,
		logger:   logger,
	}
}

// ListNotes returns all notes for a user-owned task, newest first
func (s *NoteService) ListNotes(ctx context.Context, userID, taskID uuid.UUID) ([]*entities.TaskNote, error) {
	if _, err := s.taskRepo.GetByID(ctx, userID, taskID); err != nil {
		return nil, err
	}

	notes, err := s.noteRepo.ListByTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	return notes, nil
}

// CreateNote attaches a new note to a user-owned task
func (s *NoteService) CreateNote(ctx context.Context, userID, taskID uuid.UUID, req ports.NoteRequest) (*entities.TaskNote, error) {
	if _, err := s.taskRepo.GetByID(ctx, userID, taskID); err != nil {
		return nil, err
	}

	if err := validateStruct(req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	note := &entities.TaskNote{
		ID:        uuid.New(),
		TaskID:    taskID,
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	s.logger.Infow("Note added", "note_id", note.ID, "task_id", taskID, "user_id", userID)

	return note, nil
}

// UpdateNote rewrites the content of a note under a user-owned task
func (s *NoteService) UpdateNote(ctx context.Context, userID, taskID, noteID uuid.UUID, req ports.NoteRequest) (*entities.TaskNote, error) {
	if _, err := s.taskRepo.GetByID(ctx, userID, taskID); err != nil {
		return nil, err
	}

	note, err := s.noteRepo.GetByID(ctx, taskID, noteID)
	if err != nil {
		return nil, err
	}

	if err := validateStruct(req); err != nil {
		return nil, err
	}

	note.Content = req.Content
	note.UpdatedAt = time.Now().UTC()

	if err := s.noteRepo.Update(ctx, note); err != nil {
		return nil, err
	}

	s.logger.Infow("Note updated", "note_id", note.ID, "task_id", taskID, "user_id", userID)

	return note, nil
}

// DeleteNote removes a note from a user-owned task
func (s *NoteService) DeleteNote(ctx context.Context, userID, taskID, noteID uuid.UUID) error {
	if _, err := s.taskRepo.GetByID(ctx, userID, taskID); err != nil {
		return err
	}

	if err := s.noteRepo.Delete(ctx, taskID, noteID); err != nil {
		return err
	}

	s.logger.Infow("Note deleted", "note_id", noteID, "task_id", taskID, "user_id", userID)

	return nil
}
