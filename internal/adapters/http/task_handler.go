package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/taskdeck/api/internal/infrastructure/logger"
	"github.com/taskdeck/api/internal/ports"
)

// TaskHandler handles task-related requests
type TaskHandler struct {
	taskService ports.TaskService
	logger      *logger.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService ports.TaskService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

// ListTasks handles GET /tasks
func (h *TaskHandler) ListTasks(c echo.Context) error {
	req := ports.ListTasksRequest{
		Filter:   c.QueryParam("filter"),
		Priority: c.QueryParam("priority"),
	}

	tasks, stats, err := h.taskService.ListTasks(c.Request().Context(), currentUserID(c), req)
	if err != nil {
		return respondServiceError(c, h.logger, err, "Failed to fetch tasks")
	}

	return respond(c, http.StatusOK, echo.Map{
		"tasks": tasks,
		"stats": stats,
	})
}

// CreateTask handles POST /tasks
func (h *TaskHandler) CreateTask(c echo.Context) error {
	var req ports.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request format")
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), currentUserID(c), req)
	if err != nil {
		return respondServiceError(c, h.logger, err, "Failed to create task")
	}

	return respond(c, http.StatusCreated, echo.Map{
		"message": "Task created successfully",
		"task":    task,
	})
}

// GetTask handles GET /tasks/:id
func (h *TaskHandler) GetTask(c echo.Context) error {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusNotFound, "Task not found")
	}

	task, err := h.taskService.GetTask(c.Request().Context(), currentUserID(c), taskID)
	if err != nil {
		return respondServiceError(c, h.logger, err, "Failed to fetch task")
	}

	return respond(c, http.StatusOK, echo.Map{
		"task": task,
	})
}

// UpdateTask handles PUT/PATCH /tasks/:id
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusNotFound, "Task not found")
	}

	var req ports.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request format")
	}

	task, err := h.taskService.UpdateTask(c.Request().Context(), currentUserID(c), taskID, req)
	if err != nil {
		return respondServiceError(c, h.logger, err, "Failed to update task")
	}

	return respond(c, http.StatusOK, echo.Map{
		"message": "Task updated successfully",
		"task":    task,
	})
}

// DeleteTask handles DELETE /tasks/:id
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusNotFound, "Task not found")
	}

	if err := h.taskService.DeleteTask(c.Request().Context(), currentUserID(c), taskID); err != nil {
		return respondServiceError(c, h.logger, err, "Failed to delete task")
	}

	return respond(c, http.StatusOK, echo.Map{
		"message": "Task deleted successfully",
	})
}

// ToggleTask handles POST /tasks/:id/toggle
func (h *TaskHandler) ToggleTask(c echo.Context) error {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusNotFound, "Task not found")
	}

	task, err := h.taskService.ToggleTask(c.Request().Context(), currentUserID(c), taskID)
	if err != nil {
		return respondServiceError(c, h.logger, err, "Failed to update task status")
	}

	return respond(c, http.StatusOK, echo.Map{
		"message": "Task status updated successfully",
		"task":    task,
	})
}
