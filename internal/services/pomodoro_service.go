package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/ymaeda/pomodoro-tracker/internal/constants"
	"github.com/ymaeda/pomodoro-tracker/internal/models"
	"github.com/ymaeda/pomodoro-tracker/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrPomodoroNotFound = errors.New("pomodoro not found")
	ErrTaskNotOwned     = errors.New("invalid task")
)

// PomodoroService handles focus session business logic
type PomodoroService struct {
	pomodoroRepo repository.PomodoroRepository
	taskRepo     repository.TaskRepository
}

// NewPomodoroService creates a new PomodoroService
func NewPomodoroService(pomodoroRepo repository.PomodoroRepository, taskRepo repository.TaskRepository) *PomodoroService {
	return &PomodoroService{
		pomodoroRepo: pomodoroRepo,
		taskRepo:     taskRepo,
	}
}

// StartInput represents input for starting a pomodoro session
type StartInput struct {
	UserID   uint64
	TaskID   *uint64
	Duration int
}

// Start records a new focus session. A linked task must belong to the
// same user; otherwise no row is created.
func (s *PomodoroService) Start(input StartInput) (*models.Pomodoro, error) {
	duration := input.Duration
	if duration <= 0 {
		duration = constants.DefaultPomodoroMinutes
	}

	if input.TaskID != nil {
		if _, err := s.taskRepo.FindByID(input.UserID, *input.TaskID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTaskNotOwned
			}
			return nil, fmt.Errorf("failed to verify task: %w", err)
		}
	}

	pomodoro := &models.Pomodoro{
		UserID:    input.UserID,
		TaskID:    input.TaskID,
		Duration:  duration,
		Completed: false,
		StartedAt: time.Now(),
	}

	if err := s.pomodoroRepo.Create(pomodoro); err != nil {
		return nil, fmt.Errorf("failed to create pomodoro: %w", err)
	}

	return pomodoro, nil
}

// Complete marks a session as completed. Completing an already-completed
// session is a no-op.
func (s *PomodoroService) Complete(userID, pomodoroID uint64) (*models.Pomodoro, error) {
	pomodoro, err := s.pomodoroRepo.FindByID(userID, pomodoroID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPomodoroNotFound
		}
		return nil, fmt.Errorf("failed to find pomodoro: %w", err)
	}

	if pomodoro.Completed {
		return pomodoro, nil
	}

	pomodoro.Completed = true
	if err := s.pomodoroRepo.Update(pomodoro); err != nil {
		return nil, fmt.Errorf("failed to complete pomodoro: %w", err)
	}

	return pomodoro, nil
}
