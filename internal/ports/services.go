package ports

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/taskdeck/api/internal/domain/entities"
)

// AuthService interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// TaskService interface for task operations, scoped to the authenticated user
type TaskService interface {
	ListTasks(ctx context.Context, userID uuid.UUID, req ListTasksRequest) ([]*entities.Task, *entities.TaskStats, error)
	CreateTask(ctx context.Context, userID uuid.UUID, req CreateTaskRequest) (*entities.Task, error)
	GetTask(ctx context.Context, userID, taskID uuid.UUID) (*entities.Task, error)
	UpdateTask(ctx context.Context, userID, taskID uuid.UUID, req UpdateTaskRequest) (*entities.Task, error)
	DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error
	ToggleTask(ctx context.Context, userID, taskID uuid.UUID) (*entities.Task, error)
}

// NoteService interface for note operations, scoped through a user-owned task
type NoteService interface {
	ListNotes(ctx context.Context, userID, taskID uuid.UUID) ([]*entities.TaskNote, error)
	CreateNote(ctx context.Context, userID, taskID uuid.UUID, req NoteRequest) (*entities.TaskNote, error)
	UpdateNote(ctx context.Context, userID, taskID, noteID uuid.UUID, req NoteRequest) (*entities.TaskNote, error)
	DeleteNote(ctx context.Context, userID, taskID, noteID uuid.UUID) error
}

// Request/Response Types

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token     string         `json:"token"`
	TokenType string         `json:"token_type"`
	ExpiresIn int64          `json:"expires_in"`
	User      *entities.User `json:"user"`
}

// Claims carried inside a signed access token
type Claims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type ListTasksRequest struct {
	Filter   string `query:"filter"`
	Priority string `query:"priority"`
}

type CreateTaskRequest struct {
	Title       string  `json:"title" validate:"required,max=255"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Priority    string  `json:"priority" validate:"required,oneof=low medium high"`
}

// UpdateTaskRequest carries a partial update; absent fields stay untouched.
// Present fields obey the same constraints as CreateTaskRequest.
type UpdateTaskRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=255"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Priority    *string `json:"priority" validate:"omitempty,oneof=low medium high"`
	Completed   *bool   `json:"completed"`
}

type NoteRequest struct {
	Content string `json:"content" validate:"required,max=1000"`
}
