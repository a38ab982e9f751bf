package repository

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/api/internal/domain/entities"
	"github.com/taskdeck/api/internal/infrastructure/database"
)

const notesQueryPattern = `SELECT id, task_id, content, created_at, updated_at\s+FROM task_notes`

// The toggle statement must flip completed and recompute completed_at from
// the pre-update value in the same UPDATE.
const togglePattern = `UPDATE tasks\s+SET completed = NOT completed,\s+completed_at = CASE WHEN completed THEN NULL ELSE now\(\) END`

func newMockTaskRepo(t *testing.T) (*TaskRepository, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	return NewTaskRepository(&database.DB{DB: sqlxDB}), mock
}

func taskRow(id, userID uuid.UUID, completed bool, completedAt interface{}) *sqlmock.Rows {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(strings.Split(taskColumns, ", ")).
		AddRow(id.String(), userID.String(), "Buy milk", nil, "low", completed, completedAt, now, now)
}

func emptyNoteRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "task_id", "content", "created_at", "updated_at"})
}

func TestTaskRepository_Toggle_SelfInverse(t *testing.T) {
	repo, mock := newMockTaskRepo(t)

	userID := uuid.New()
	taskID := uuid.New()
	completedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	// First flip: pending -> completed, completed_at set
	mock.ExpectQuery(togglePattern).
		WithArgs(taskID, userID).
		WillReturnRows(taskRow(taskID, userID, true, completedAt))
	mock.ExpectQuery(notesQueryPattern).WillReturnRows(emptyNoteRows())

	// Second flip: completed -> pending, completed_at back to null
	mock.ExpectQuery(togglePattern).
		WithArgs(taskID, userID).
		WillReturnRows(taskRow(taskID, userID, false, nil))
	mock.ExpectQuery(notesQueryPattern).WillReturnRows(emptyNoteRows())

	task, err := repo.Toggle(context.Background(), userID, taskID)
	require.NoError(t, err)
	require.True(t, task.Completed)
	require.NotNil(t, task.CompletedAt)

	task, err = repo.Toggle(context.Background(), userID, taskID)
	require.NoError(t, err)
	require.False(t, task.Completed)
	require.Nil(t, task.CompletedAt)
	require.NotNil(t, task.Notes)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Toggle_NotOwned(t *testing.T) {
	repo, mock := newMockTaskRepo(t)

	userID := uuid.New()
	taskID := uuid.New()

	mock.ExpectQuery(togglePattern).
		WithArgs(taskID, userID).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Toggle(context.Background(), userID, taskID)
	require.ErrorIs(t, err, entities.ErrTaskNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Delete_CascadesNotesInOneTransaction(t *testing.T) {
	repo, mock := newMockTaskRepo(t)

	userID := uuid.New()
	taskID := uuid.New()

	// Ordered expectations: ownership lock, notes first, then the task,
	// all between one begin/commit pair.
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM tasks WHERE id = \$1 AND user_id = \$2 FOR UPDATE`).
		WithArgs(taskID, userID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(taskID.String()))
	mock.ExpectExec(`DELETE FROM task_notes WHERE task_id = \$1`).
		WithArgs(taskID).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE FROM tasks WHERE id = \$1`).
		WithArgs(taskID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), userID, taskID)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Delete_NotOwnedRollsBack(t *testing.T) {
	repo, mock := newMockTaskRepo(t)

	userID := uuid.New()
	taskID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM tasks WHERE id = \$1 AND user_id = \$2 FOR UPDATE`).
		WithArgs(taskID, userID).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), userID, taskID)
	require.ErrorIs(t, err, entities.ErrTaskNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Stats_CountsWholeCollection(t *testing.T) {
	repo, mock := newMockTaskRepo(t)

	userID := uuid.New()

	mock.ExpectQuery(`SELECT COUNT\(\*\) AS total,\s+COUNT\(\*\) FILTER \(WHERE NOT completed\) AS pending,\s+COUNT\(\*\) FILTER \(WHERE completed\) AS completed\s+FROM tasks\s+WHERE user_id = \$1`).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"total", "pending", "completed"}).AddRow(5, 3, 2))

	stats, err := repo.Stats(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, 5, stats.Total)
	require.Equal(t, 3, stats.Pending)
	require.Equal(t, 2, stats.Completed)
	require.NoError(t, mock.ExpectationsWereMet())
}
