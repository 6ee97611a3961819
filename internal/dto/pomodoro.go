package dto

import (
	"time"

	"github.com/ymaeda/pomodoro-tracker/internal/models"
)

// PomodoroDTO represents a focus session in API responses
type PomodoroDTO struct {
	ID        uint64    `json:"id"`
	TaskID    *uint64   `json:"task_id"`
	Duration  int       `json:"duration"`
	Completed bool      `json:"completed"`
	StartedAt time.Time `json:"started_at"`
}

// StartPomodoroResponse is the payload returned when a session starts
type StartPomodoroResponse struct {
	PomodoroID uint64 `json:"pomodoro_id"`
	Duration   int    `json:"duration"`
}

// ToPomodoroDTO converts a Pomodoro model to PomodoroDTO
func ToPomodoroDTO(pomodoro models.Pomodoro) PomodoroDTO {
	return PomodoroDTO{
		ID:        pomodoro.ID,
		TaskID:    pomodoro.TaskID,
		Duration:  pomodoro.Duration,
		Completed: pomodoro.Completed,
		StartedAt: pomodoro.StartedAt,
	}
}
