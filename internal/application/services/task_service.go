package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/taskdeck/api/internal/domain/entities"
	"github.com/taskdeck/api/internal/infrastructure/logger"
	"github.com/taskdeck/api/internal/ports"
)

// TaskService handles task operations scoped to the authenticated user
type TaskService struct {
	taskRepo ports.TaskRepository
	logger   *logger.Logger
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo ports.TaskRepository, logger *logger.Logger) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		logger:   logger,
	}
}

// ListTasks returns the user's tasks narrowed by filter/priority, plus stats
// computed over the entire owned collection. Unknown filter values fall back
// to "all" and an unknown priority simply matches nothing; listing never
// fails on bad query input.
func (s *TaskService) ListTasks(ctx context.Context, userID uuid.UUID, req ports.ListTasksRequest) ([]*entities.Task, *entities.TaskStats, error) {
	filter := ports.TaskListFilter{Filter: entities.TaskFilterAll}

	if f := entities.TaskFilter(req.Filter); f.IsValid() {
		filter.Filter = f
	}

	if req.Priority != "" {
		priority := entities.Priority(req.Priority)
		filter.Priority = &priority
	}

	tasks, err := s.taskRepo.List(ctx, userID, filter)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	stats, err := s.taskRepo.Stats(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	return tasks, stats, nil
}

// CreateTask validates input and persists a new, uncompleted task
func (s *TaskService) CreateTask(ctx context.Context, userID uuid.UUID, req ports.CreateTaskRequest) (*entities.Task, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	task := &entities.Task{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    entities.Priority(req.Priority),
		Completed:   false,
		CompletedAt: nil,
		Notes:       []*entities.TaskNote{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Infow("Task created", "task_id", task.ID, "user_id", userID)

	return task, nil
}

// GetTask retrieves one of the user's tasks with its notes
func (s *TaskService) GetTask(ctx context.Context, userID, taskID uuid.UUID) (*entities.Task, error) {
	return s.taskRepo.GetByID(ctx, userID, taskID)
}

// UpdateTask applies a partial update. Fields that are present are validated
// under the creation rules; writing Completed recomputes completed_at, while
// an update that omits it leaves completed_at untouched.
func (s *TaskService) UpdateTask(ctx context.Context, userID, taskID uuid.UUID, req ports.UpdateTaskRequest) (*entities.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if err := s.validateUpdate(req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = req.Description
	}
	if req.Priority != nil {
		task.Priority = entities.Priority(*req.Priority)
	}
	if req.Completed != nil {
		task.SetCompleted(*req.Completed, now)
	}

	task.UpdatedAt = now

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Infow("Task updated", "task_id", task.ID, "user_id", userID)

	return task, nil
}

// DeleteTask removes the task and all of its notes
func (s *TaskService) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	if err := s.taskRepo.Delete(ctx, userID, taskID); err != nil {
		return err
	}

	s.logger.Infow("Task deleted", "task_id", taskID, "user_id", userID)

	return nil
}

// ToggleTask flips the completion flag as one atomic operation
func (s *TaskService) ToggleTask(ctx context.Context, userID, taskID uuid.UUID) (*entities.Task, error) {
	task, err := s.taskRepo.Toggle(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("Task toggled", "task_id", task.ID, "user_id", userID, "completed", task.Completed)

	return task, nil
}

func (s *TaskService) validateUpdate(req ports.UpdateTaskRequest) error {
	ve := &entities.ValidationError{Fields: map[string][]string{}}

	if err := validateStruct(req); err != nil {
		var found *entities.ValidationError
		if !errors.As(err, &found) {
			return err
		}
		ve = found
	}

	// omitempty skips present-but-empty values, so catch them here
	requiredPresent(ve.Fields, "title", req.Title)
	requiredPresent(ve.Fields, "priority", req.Priority)

	if len(ve.Fields) > 0 {
		return ve
	}

	return nil
}
