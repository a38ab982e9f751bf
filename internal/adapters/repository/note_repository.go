package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/taskdeck/api/internal/domain/entities"
	"github.com/taskdeck/api/internal/infrastructure/database"
)

// NoteRepository implements the task note repository interface on Postgres.
// All queries are scoped by task_id; callers resolve task ownership first.
type NoteRepository struct {
	db *database.DB
}

// NewNoteRepository creates a new note repository
func NewNoteRepository(db *database.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

// Create creates a new note under its task
func (r *NoteRepository) Create(ctx context.Context, note *entities.TaskNote) error {
	query := `
		INSERT INTO task_notes (id, task_id, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.DB.ExecContext(ctx, query,
		note.ID,
		note.TaskID,
		note.Content,
		note.CreatedAt,
		note.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}

	return nil
}

// GetByID retrieves a note belonging to the given task
func (r *NoteRepository) GetByID(ctx context.Context, taskID, id uuid.UUID) (*entities.TaskNote, error) {
	query := `
		SELECT id, task_id, content, created_at, updated_at
		FROM task_notes
		WHERE id = $1 AND task_id = $2
	`

	var note entities.TaskNote
	err := r.db.DB.QueryRowContext(ctx, query, id, taskID).Scan(
		&note.ID,
		&note.TaskID,
		&note.Content,
		&note.CreatedAt,
		&note.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	return &note, nil
}

// ListByTask retrieves all notes for a task, newest first
func (r *NoteRepository) ListByTask(ctx context.Context, taskID uuid.UUID) ([]*entities.TaskNote, error) {
	query := `
		SELECT id, task_id, content, created_at, updated_at
		FROM task_notes
		WHERE task_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.DB.QueryContext(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	notes := []*entities.TaskNote{}
	for rows.Next() {
		var note entities.TaskNote
		if err := rows.Scan(&note.ID, &note.TaskID, &note.Content, &note.CreatedAt, &note.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, &note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return notes, nil
}

// Update writes a note's content under its task scope
func (r *NoteRepository) Update(ctx context.Context, note *entities.TaskNote) error {
	query := `
		UPDATE task_notes
		SET content = $3, updated_at = $4
		WHERE id = $1 AND task_id = $2
	`

	result, err := r.db.DB.ExecContext(ctx, query,
		note.ID,
		note.TaskID,
		note.Content,
		note.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.ErrNoteNotFound
	}

	return nil
}

// Delete removes a note belonging to the given task
func (r *NoteRepository) Delete(ctx context.Context, taskID, id uuid.UUID) error {
	query := `DELETE FROM task_notes WHERE id = $1 AND task_id = $2`

	result, err := r.db.DB.ExecContext(ctx, query, id, taskID)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.ErrNoteNotFound
	}

	return nil
}
