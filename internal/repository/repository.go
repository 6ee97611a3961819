package repository

import (
	"time"

	"github.com/ymaeda/pomodoro-tracker/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)
}

// TaskFilter holds filtering options for listing a user's tasks
type TaskFilter struct {
	UserID    uint64
	Completed *bool
	Priority  *models.TaskPriority
	Page      int
	PageSize  int
}

// TaskRepository defines the interface for task data access.
// Every method is scoped by user ID; a lookup never returns rows the
// user does not own.
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task owned by the given user
	FindByID(userID, id uint64) (*models.Task, error)

	// List retrieves tasks with filtering, ordering and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete removes a task and detaches its pomodoros
	Delete(userID, id uint64) error

	// CountByUser counts tasks owned by the user, optionally by completion
	CountByUser(userID uint64, completed *bool) (int64, error)
}

// PomodoroRepository defines the interface for pomodoro session data access
type PomodoroRepository interface {
	// Create creates a new pomodoro session
	Create(pomodoro *models.Pomodoro) error

	// FindByID finds a pomodoro owned by the given user
	FindByID(userID, id uint64) (*models.Pomodoro, error)

	// Update updates a pomodoro session
	Update(pomodoro *models.Pomodoro) error

	// CountCompletedInRange counts completed sessions started within [from, to)
	CountCompletedInRange(userID uint64, from, to time.Time) (int64, error)

	// SumCompletedDurationInRange sums the duration of completed sessions
	// started within [from, to)
	SumCompletedDurationInRange(userID uint64, from, to time.Time) (int64, error)
}
