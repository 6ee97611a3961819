package services

import (
	"fmt"
	"time"

	"github.com/ymaeda/pomodoro-tracker/internal/constants"
	"github.com/ymaeda/pomodoro-tracker/internal/repository"
)

// StatsService aggregates task and pomodoro rows for a user. All reads,
// no side effects.
type StatsService struct {
	taskRepo     repository.TaskRepository
	pomodoroRepo repository.PomodoroRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(taskRepo repository.TaskRepository, pomodoroRepo repository.PomodoroRepository) *StatsService {
	return &StatsService{
		taskRepo:     taskRepo,
		pomodoroRepo: pomodoroRepo,
	}
}

// DailyCount is a single day's completed pomodoro count
type DailyCount struct {
	Date  string `json:"date"`
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// WeeklySummary aggregates the trailing seven-day window plus lifetime
// task counts
type WeeklySummary struct {
	TodayCount        int64 `json:"today_pomodoros"`
	WeekCount         int64 `json:"week_pomodoros"`
	TotalFocusMinutes int64 `json:"total_focus_minutes"`
	TotalTasks        int64 `json:"total_tasks"`
	CompletedTasks    int64 `json:"completed_tasks"`
	PendingTasks      int64 `json:"pending_tasks"`
}

// startOfDay truncates t to midnight in its location. Day membership is
// computed with half-open [start, start+24h) bounds on started_at, which
// behaves the same on sqlite, mysql and postgres.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DailyCounts returns completed pomodoro counts for the numDays calendar
// days ending at ref, oldest day first.
func (s *StatsService) DailyCounts(userID uint64, ref time.Time, numDays int) ([]DailyCount, error) {
	if numDays <= 0 {
		numDays = constants.StatsWindowDays
	}

	counts := make([]DailyCount, 0, numDays)
	for i := numDays - 1; i >= 0; i-- {
		day := startOfDay(ref.AddDate(0, 0, -i))
		count, err := s.pomodoroRepo.CountCompletedInRange(userID, day, day.AddDate(0, 0, 1))
		if err != nil {
			return nil, fmt.Errorf("failed to count pomodoros for %s: %w", day.Format(DeadlineLayout), err)
		}

		counts = append(counts, DailyCount{
			Date:  day.Format(DeadlineLayout),
			Label: day.Format("Mon 02"),
			Count: count,
		})
	}

	return counts, nil
}

// Weekly returns today's and the trailing week's completed pomodoro
// counts, the week's total focus minutes, and lifetime task counts. The
// week window is the seven calendar days ending at ref, inclusive.
func (s *StatsService) Weekly(userID uint64, ref time.Time) (*WeeklySummary, error) {
	todayStart := startOfDay(ref)
	todayEnd := todayStart.AddDate(0, 0, 1)
	weekStart := todayStart.AddDate(0, 0, -(constants.StatsWindowDays - 1))

	todayCount, err := s.pomodoroRepo.CountCompletedInRange(userID, todayStart, todayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to count today's pomodoros: %w", err)
	}

	weekCount, err := s.pomodoroRepo.CountCompletedInRange(userID, weekStart, todayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to count week's pomodoros: %w", err)
	}

	focusMinutes, err := s.pomodoroRepo.SumCompletedDurationInRange(userID, weekStart, todayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to sum focus minutes: %w", err)
	}

	totalTasks, err := s.taskRepo.CountByUser(userID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	completed := true
	completedTasks, err := s.taskRepo.CountByUser(userID, &completed)
	if err != nil {
		return nil, fmt.Errorf("failed to count completed tasks: %w", err)
	}

	return &WeeklySummary{
		TodayCount:        todayCount,
		WeekCount:         weekCount,
		TotalFocusMinutes: focusMinutes,
		TotalTasks:        totalTasks,
		CompletedTasks:    completedTasks,
		PendingTasks:      totalTasks - completedTasks,
	}, nil
}
