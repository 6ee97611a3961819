package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ymaeda/pomodoro-tracker/internal/dto"
	apierrors "github.com/ymaeda/pomodoro-tracker/internal/errors"
	"github.com/ymaeda/pomodoro-tracker/internal/middleware"
	"github.com/ymaeda/pomodoro-tracker/internal/models"
	"github.com/ymaeda/pomodoro-tracker/internal/services"
	"github.com/ymaeda/pomodoro-tracker/internal/utils"
)

type TaskHandler struct {
	taskService *services.TaskService
	aiService   *services.AIService
}

func NewTaskHandler(taskService *services.TaskService, aiService *services.AIService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		aiService:   aiService,
	}
}

// taskRequest is the request body for creating and updating tasks.
// The deadline travels as a YYYY-MM-DD string; empty means no deadline.
type taskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Deadline    string `json:"deadline"`
}

// ListTasks returns the current user's tasks with optional status and
// priority filters
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	params := utils.GetPaginationParams(c)

	tasks, total, err := h.taskService.ListTasks(services.ListTasksInput{
		UserID:   userID,
		Status:   c.DefaultQuery("status", services.StatusFilterPending),
		Priority: c.DefaultQuery("priority", services.PriorityFilterAll),
		Page:     params.Page,
		PageSize: params.Limit,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, params.Page, params.Limit, total))
}

// CreateTask creates a new task for the current user
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(userID, services.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Deadline:    req.Deadline,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask replaces the mutable fields of an existing task
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	task, ok := taskFromContext(c)
	if !ok {
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.taskService.UpdateTask(userID, task.ID, services.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Deadline:    req.Deadline,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*updated))
}

// ToggleTask flips a task between pending and completed
func (h *TaskHandler) ToggleTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	task, ok := taskFromContext(c)
	if !ok {
		return
	}

	toggled, err := h.taskService.ToggleTask(userID, task.ID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	status := "pending"
	if toggled.Completed {
		status = "completed"
	}

	c.JSON(http.StatusOK, gin.H{
		"task":   dto.ToTaskDTO(*toggled),
		"status": status,
	})
}

// DeleteTask permanently removes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	task, ok := taskFromContext(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(userID, task.ID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

// SuggestTasks extracts task drafts from free text using the AI service
func (h *TaskHandler) SuggestTasks(c *gin.Context) {
	if h.aiService == nil {
		apierrors.ServiceUnavailable(c, "AI suggestions are not configured")
		return
	}

	type SuggestRequest struct {
		Text string `json:"text" binding:"required"`
	}

	var req SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		apierrors.BadRequest(c, "Text is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	suggestions, err := h.aiService.SuggestTasks(ctx, req.Text)
	if err != nil {
		apierrors.InternalError(c, "Failed to generate suggestions")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"suggestions": suggestions,
	})
}

func taskFromContext(c *gin.Context) (models.Task, bool) {
	taskValue, exists := c.Get(middleware.ContextKeyTask)
	if !exists {
		apierrors.InternalError(c, "Task not found in context")
		return models.Task{}, false
	}

	task, ok := taskValue.(models.Task)
	if !ok {
		apierrors.InternalError(c, "Invalid task data")
		return models.Task{}, false
	}

	return task, true
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrTitleTooLong),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrInvalidDeadline),
		errors.Is(err, services.ErrInvalidStatusFilter):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
