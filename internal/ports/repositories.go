package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/taskdeck/api/internal/domain/entities"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// TaskRepository defines the interface for task data operations.
// Every method takes the owning user's id: scoping is a mandatory parameter,
// never an optional guard.
type TaskRepository interface {
	Create(ctx context.Context, task *entities.Task) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*entities.Task, error)
	List(ctx context.Context, userID uuid.UUID, filter TaskListFilter) ([]*entities.Task, error)
	Update(ctx context.Context, task *entities.Task) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Toggle(ctx context.Context, userID, id uuid.UUID) (*entities.Task, error)
	Stats(ctx context.Context, userID uuid.UUID) (*entities.TaskStats, error)
}

// NoteRepository defines the interface for task note data operations.
// Notes are scoped through their parent task; callers resolve task ownership
// before touching notes.
type NoteRepository interface {
	Create(ctx context.Context, note *entities.TaskNote) error
	GetByID(ctx context.Context, taskID, id uuid.UUID) (*entities.TaskNote, error)
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]*entities.TaskNote, error)
	Update(ctx context.Context, note *entities.TaskNote) error
	Delete(ctx context.Context, taskID, id uuid.UUID) error
}

// TaskListFilter narrows a task listing; the zero value lists everything
type TaskListFilter struct {
	Filter   entities.TaskFilter
	Priority *entities.Priority
}
