package entities

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrNoteNotFound       = errors.New("note not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
)

// Enums and types
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type TaskFilter string

const (
	TaskFilterAll       TaskFilter = "all"
	TaskFilterPending   TaskFilter = "pending"
	TaskFilterCompleted TaskFilter = "completed"
)

// User represents an account that owns tasks
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Task represents a user-owned unit of work
type Task struct {
	ID          uuid.UUID   `json:"id" db:"id"`
	UserID      uuid.UUID   `json:"user_id" db:"user_id"`
	Title       string      `json:"title" db:"title"`
	Description *string     `json:"description" db:"description"`
	Priority    Priority    `json:"priority" db:"priority"`
	Completed   bool        `json:"completed" db:"completed"`
	CompletedAt *time.Time  `json:"completed_at" db:"completed_at"`
	Notes       []*TaskNote `json:"notes"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`
}

// TaskNote represents a free-text annotation attached to a task
type TaskNote struct {
	ID        uuid.UUID `json:"id" db:"id"`
	TaskID    uuid.UUID `json:"task_id" db:"task_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// TaskStats aggregates the whole owned collection, independent of list filters
type TaskStats struct {
	Total     int `json:"total" db:"total"`
	Pending   int `json:"pending" db:"pending"`
	Completed int `json:"completed" db:"completed"`
}

// ValidationError carries per-field violations collected in one pass
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fmt.Sprintf("validation failed: %s", strings.Join(fields, ", "))
}

// Business logic methods for Task

// SetCompleted writes the completion flag and recomputes completed_at.
// Every write to Completed goes through here so the completed_at invariant
// holds for updates and toggles alike.
func (t *Task) SetCompleted(completed bool, now time.Time) {
	t.Completed = completed
	if completed {
		t.CompletedAt = &now
	} else {
		t.CompletedAt = nil
	}
}

// Utility methods
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

func (f TaskFilter) IsValid() bool {
	switch f {
	case TaskFilterAll, TaskFilterPending, TaskFilterCompleted:
		return true
	default:
		return false
	}
}
