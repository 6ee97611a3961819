package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ymaeda/pomodoro-tracker/internal/constants"
	"github.com/ymaeda/pomodoro-tracker/internal/models"
	"github.com/ymaeda/pomodoro-tracker/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound        = errors.New("task not found")
	ErrTitleRequired       = errors.New("task title is required")
	ErrTitleTooLong        = errors.New("task title is too long")
	ErrInvalidPriority     = errors.New("priority must be low, medium or high")
	ErrInvalidDeadline     = errors.New("deadline must be in YYYY-MM-DD format")
	ErrInvalidStatusFilter = errors.New("status filter must be pending, completed or all")
)

// Status filter values for listing tasks.
const (
	StatusFilterPending   = "pending"
	StatusFilterCompleted = "completed"
	StatusFilterAll       = "all"
)

// PriorityFilterAll disables priority filtering.
const PriorityFilterAll = "all"

// DeadlineLayout is the calendar date format accepted from clients.
const DeadlineLayout = "2006-01-02"

// TaskService handles task business logic. Every operation takes the
// owning user's ID and only ever touches that user's rows.
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
	}
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	UserID   uint64
	Status   string
	Priority string
	Page     int
	PageSize int
}

// ListTasks returns the user's tasks, filtered by completion status and
// priority, ordered incomplete-first, then by deadline with empty
// deadlines last, then by newest creation time.
func (s *TaskService) ListTasks(input ListTasksInput) ([]models.Task, int64, error) {
	filter := repository.TaskFilter{
		UserID:   input.UserID,
		Page:     input.Page,
		PageSize: input.PageSize,
	}

	switch input.Status {
	case StatusFilterPending, "":
		completed := false
		filter.Completed = &completed
	case StatusFilterCompleted:
		completed := true
		filter.Completed = &completed
	case StatusFilterAll:
	default:
		return nil, 0, ErrInvalidStatusFilter
	}

	switch input.Priority {
	case PriorityFilterAll, "":
	default:
		priority := models.TaskPriority(input.Priority)
		if !models.ValidPriority(priority) {
			return nil, 0, ErrInvalidPriority
		}
		filter.Priority = &priority
	}

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// TaskInput represents the mutable fields of a task
type TaskInput struct {
	Title       string
	Description string
	Priority    string
	Deadline    string
}

func (s *TaskService) validateTaskInput(input TaskInput) (string, models.TaskPriority, *time.Time, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return "", "", nil, ErrTitleRequired
	}
	if len(title) > constants.MaxTitleLength {
		return "", "", nil, ErrTitleTooLong
	}

	priority := models.PriorityMedium
	if input.Priority != "" {
		priority = models.TaskPriority(input.Priority)
		if !models.ValidPriority(priority) {
			return "", "", nil, ErrInvalidPriority
		}
	}

	var deadline *time.Time
	if input.Deadline != "" {
		parsed, err := time.Parse(DeadlineLayout, input.Deadline)
		if err != nil {
			return "", "", nil, ErrInvalidDeadline
		}
		deadline = &parsed
	}

	return title, priority, deadline, nil
}

// CreateTask creates a new task for the user
func (s *TaskService) CreateTask(userID uint64, input TaskInput) (*models.Task, error) {
	title, priority, deadline, err := s.validateTaskInput(input)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		UserID:      userID,
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Priority:    priority,
		Deadline:    deadline,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// UpdateTask replaces all mutable fields of an existing task
func (s *TaskService) UpdateTask(userID, taskID uint64, input TaskInput) (*models.Task, error) {
	task, err := s.findOwnedTask(userID, taskID)
	if err != nil {
		return nil, err
	}

	title, priority, deadline, err := s.validateTaskInput(input)
	if err != nil {
		return nil, err
	}

	task.Title = title
	task.Description = strings.TrimSpace(input.Description)
	task.Priority = priority
	task.Deadline = deadline

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// ToggleTask flips the completion flag and returns the updated task
func (s *TaskService) ToggleTask(userID, taskID uint64) (*models.Task, error) {
	task, err := s.findOwnedTask(userID, taskID)
	if err != nil {
		return nil, err
	}

	task.Completed = !task.Completed

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to toggle task: %w", err)
	}

	return task, nil
}

// DeleteTask permanently removes a task. Linked pomodoros survive with
// their task reference cleared.
func (s *TaskService) DeleteTask(userID, taskID uint64) error {
	if _, err := s.findOwnedTask(userID, taskID); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(userID, taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// GetTask returns a task owned by the user
func (s *TaskService) GetTask(userID, taskID uint64) (*models.Task, error) {
	return s.findOwnedTask(userID, taskID)
}

func (s *TaskService) findOwnedTask(userID, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(userID, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}
