package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/taskdeck/api/internal/domain/entities"
	"github.com/taskdeck/api/internal/infrastructure/database"
	"github.com/taskdeck/api/internal/ports"
)

const taskColumns = "id, user_id, title, description, priority, completed, completed_at, created_at, updated_at"

// TaskRepository implements the task repository interface on Postgres.
// Every query is scoped by user_id so a task is only reachable through its
// owner; a miss and a not-owned row are indistinguishable.
type TaskRepository struct {
	db *database.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *database.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create creates a new task
func (r *TaskRepository) Create(ctx context.Context, task *entities.Task) error {
	query := `
		INSERT INTO tasks (id, user_id, title, description, priority, completed, completed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.DB.ExecContext(ctx, query,
		task.ID,
		task.UserID,
		task.Title,
		task.Description,
		task.Priority,
		task.Completed,
		task.CompletedAt,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	if task.Notes == nil {
		task.Notes = []*entities.TaskNote{}
	}

	return nil
}

// GetByID retrieves a task owned by the given user, notes attached
func (r *TaskRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*entities.Task, error) {
	query := fmt.Sprintf(`SELECT %s FROM tasks WHERE id = $1 AND user_id = $2`, taskColumns)

	task, err := scanTask(r.db.DB.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	if err := r.attachNotes(ctx, []*entities.Task{task}); err != nil {
		return nil, err
	}

	return task, nil
}

// List retrieves the user's tasks newest first, notes attached
func (r *TaskRepository) List(ctx context.Context, userID uuid.UUID, filter ports.TaskListFilter) ([]*entities.Task, error) {
	conditions := []string{"user_id = $1"}
	args := []interface{}{userID}
	argIndex := 2

	switch filter.Filter {
	case entities.TaskFilterPending:
		conditions = append(conditions, "completed = false")
	case entities.TaskFilterCompleted:
		conditions = append(conditions, "completed = true")
	}

	if filter.Priority != nil {
		conditions = append(conditions, fmt.Sprintf("priority = $%d", argIndex))
		args = append(args, *filter.Priority)
		argIndex++
	}

	query := fmt.Sprintf(`
		SELECT %s FROM tasks
		WHERE %s
		ORDER BY created_at DESC
	`, taskColumns, strings.Join(conditions, " AND "))

	rows, err := r.db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []*entities.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	if err := r.attachNotes(ctx, tasks); err != nil {
		return nil, err
	}

	return tasks, nil
}

// Update writes all mutable columns of a task under the owner's scope
func (r *TaskRepository) Update(ctx context.Context, task *entities.Task) error {
	query := `
		UPDATE tasks
		SET title = $3, description = $4, priority = $5, completed = $6, completed_at = $7, updated_at = $8
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.db.DB.ExecContext(ctx, query,
		task.ID,
		task.UserID,
		task.Title,
		task.Description,
		task.Priority,
		task.Completed,
		task.CompletedAt,
		task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.ErrTaskNotFound
	}

	return nil
}

// Delete removes a task and cascades to its notes: children first, then the
// parent, in one transaction.
func (r *TaskRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return r.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		var taskID uuid.UUID
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM tasks WHERE id = $1 AND user_id = $2 FOR UPDATE`,
			id, userID,
		).Scan(&taskID)
		if err != nil {
			if err == sql.ErrNoRows {
				return entities.ErrTaskNotFound
			}
			return fmt.Errorf("failed to resolve task: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM task_notes WHERE task_id = $1`, taskID); err != nil {
			return fmt.Errorf("failed to delete task notes: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, taskID); err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}

		return nil
	})
}

// Toggle flips the completion flag and recomputes completed_at in a single
// statement, so the flip is atomic without a read-then-write round trip.
func (r *TaskRepository) Toggle(ctx context.Context, userID, id uuid.UUID) (*entities.Task, error) {
	query := fmt.Sprintf(`
		UPDATE tasks
		SET completed = NOT completed,
		    completed_at = CASE WHEN completed THEN NULL ELSE now() END,
		    updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING %s
	`, taskColumns)

	task, err := scanTask(r.db.DB.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to toggle task: %w", err)
	}

	if err := r.attachNotes(ctx, []*entities.Task{task}); err != nil {
		return nil, err
	}

	return task, nil
}

// Stats counts the entire owned collection regardless of any listing filter
func (r *TaskRepository) Stats(ctx context.Context, userID uuid.UUID) (*entities.TaskStats, error) {
	query := `
		SELECT COUNT(*) AS total,
		       COUNT(*) FILTER (WHERE NOT completed) AS pending,
		       COUNT(*) FILTER (WHERE completed) AS completed
		FROM tasks
		WHERE user_id = $1
	`

	var stats entities.TaskStats
	err := r.db.DB.QueryRowContext(ctx, query, userID).Scan(&stats.Total, &stats.Pending, &stats.Completed)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	return &stats, nil
}

// attachNotes batch-loads notes for the given tasks, newest first. Tasks
// without notes end up with an empty, non-nil slice so they serialize as [].
func (r *TaskRepository) attachNotes(ctx context.Context, tasks []*entities.Task) error {
	for _, task := range tasks {
		task.Notes = []*entities.TaskNote{}
	}
	if len(tasks) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(tasks))
	byID := make(map[uuid.UUID]*entities.Task, len(tasks))
	for _, task := range tasks {
		ids = append(ids, task.ID)
		byID[task.ID] = task
	}

	query := `
		SELECT id, task_id, content, created_at, updated_at
		FROM task_notes
		WHERE task_id = ANY($1)
		ORDER BY created_at DESC
	`

	rows, err := r.db.DB.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to load task notes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var note entities.TaskNote
		if err := rows.Scan(&note.ID, &note.TaskID, &note.Content, &note.CreatedAt, &note.UpdatedAt); err != nil {
			return fmt.Errorf("failed to scan note: %w", err)
		}
		if task, ok := byID[note.TaskID]; ok {
			task.Notes = append(task.Notes, &note)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("row iteration error: %w", err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(row rowScanner) (*entities.Task, error) {
	var task entities.Task
	err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Description,
		&task.Priority,
		&task.Completed,
		&task.CompletedAt,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &task, nil
}
