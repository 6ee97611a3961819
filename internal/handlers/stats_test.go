package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/ymaeda/pomodoro-tracker/internal/constants"
	"github.com/ymaeda/pomodoro-tracker/internal/database"
	"github.com/ymaeda/pomodoro-tracker/internal/models"
	"github.com/ymaeda/pomodoro-tracker/internal/repository"
	"github.com/ymaeda/pomodoro-tracker/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type statsTestEnv struct {
	db      *gorm.DB
	handler *StatsHandler
	service *services.StatsService
}

func setupStatsTestEnv(t *testing.T) statsTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.Pomodoro{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	taskRepo := repository.NewTaskRepository(db)
	pomodoroRepo := repository.NewPomodoroRepository(db)
	statsService := services.NewStatsService(taskRepo, pomodoroRepo)
	handler := NewStatsHandler(statsService)

	gin.SetMode(gin.TestMode)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return statsTestEnv{db: db, handler: handler, service: statsService}
}

func (env statsTestEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, PasswordHash: "hashedpassword"}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func (env statsTestEnv) createPomodoro(t *testing.T, userID uint64, startedAt time.Time, duration int, completed bool) {
	t.Helper()
	pomodoro := &models.Pomodoro{
		UserID:    userID,
		Duration:  duration,
		Completed: completed,
		StartedAt: startedAt,
	}
	require.NoError(t, env.db.Create(pomodoro).Error)
}

func statsContext(t *testing.T, url string, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, url, nil)
	c.Set(constants.ContextKeyUserID, userID)
	return c, w
}

func TestStatsService_Weekly(t *testing.T) {
	env := setupStatsTestEnv(t)
	user := env.createUser(t, "testuser")
	now := time.Now()

	// Three completed sessions of 25 minutes inside the trailing week
	env.createPomodoro(t, user.ID, now, 25, true)
	env.createPomodoro(t, user.ID, now.AddDate(0, 0, -2), 25, true)
	env.createPomodoro(t, user.ID, now.AddDate(0, 0, -6), 25, true)
	// Outside the window and not completed: both excluded
	env.createPomodoro(t, user.ID, now.AddDate(0, 0, -10), 25, true)
	env.createPomodoro(t, user.ID, now, 25, false)

	summary, err := env.service.Weekly(user.ID, now)
	require.NoError(t, err)

	require.Equal(t, int64(1), summary.TodayCount)
	require.Equal(t, int64(3), summary.WeekCount)
	require.Equal(t, int64(75), summary.TotalFocusMinutes)
}

func TestStatsService_Weekly_TaskCounts(t *testing.T) {
	env := setupStatsTestEnv(t)
	user := env.createUser(t, "testuser")

	for i, completed := range []bool{true, false, false} {
		task := &models.Task{
			UserID:    user.ID,
			Title:     "Task",
			Priority:  models.PriorityMedium,
			Completed: completed,
		}
		require.NoError(t, env.db.Create(task).Error, i)
	}

	summary, err := env.service.Weekly(user.ID, time.Now())
	require.NoError(t, err)

	require.Equal(t, int64(3), summary.TotalTasks)
	require.Equal(t, int64(1), summary.CompletedTasks)
	require.Equal(t, int64(2), summary.PendingTasks)
}

func TestStatsService_DailyCounts(t *testing.T) {
	env := setupStatsTestEnv(t)
	user := env.createUser(t, "testuser")
	other := env.createUser(t, "otheruser")
	now := time.Now()

	env.createPomodoro(t, user.ID, now, 25, true)
	env.createPomodoro(t, user.ID, now, 25, true)
	env.createPomodoro(t, user.ID, now.AddDate(0, 0, -3), 25, true)
	env.createPomodoro(t, user.ID, now.AddDate(0, 0, -3), 25, false)
	// Another user's session on the same day must not leak in
	env.createPomodoro(t, other.ID, now, 25, true)

	daily, err := env.service.DailyCounts(user.ID, now, 7)
	require.NoError(t, err)
	require.Len(t, daily, 7)

	// Oldest day first, reference day last
	require.Equal(t, now.AddDate(0, 0, -6).Format("2006-01-02"), daily[0].Date)
	require.Equal(t, now.Format("2006-01-02"), daily[6].Date)

	require.Equal(t, int64(2), daily[6].Count)
	require.Equal(t, int64(1), daily[3].Count)
	require.Equal(t, int64(0), daily[0].Count)
}

func TestStatsHandler_GetStats(t *testing.T) {
	env := setupStatsTestEnv(t)
	user := env.createUser(t, "testuser")
	env.createPomodoro(t, user.ID, time.Now(), 25, true)

	c, w := statsContext(t, "/api/stats", user.ID)

	env.handler.GetStats(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Summary services.WeeklySummary `json:"summary"`
		Daily   []services.DailyCount  `json:"daily"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, int64(1), response.Summary.TodayCount)
	require.Len(t, response.Daily, 7)
}

func TestStatsHandler_GetWeeklySeries(t *testing.T) {
	env := setupStatsTestEnv(t)
	user := env.createUser(t, "testuser")

	env.createPomodoro(t, user.ID, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), 25, true)

	c, w := statsContext(t, "/api/stats/weekly?date=2025-03-12", user.ID)

	env.handler.GetWeeklySeries(c)

	require.Equal(t, http.StatusOK, w.Code)

	var daily []services.DailyCount
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &daily))
	require.Len(t, daily, 7)
	require.Equal(t, "2025-03-12", daily[6].Date)

	found := false
	for _, day := range daily {
		if day.Date == "2025-03-10" {
			require.Equal(t, int64(1), day.Count)
			found = true
		}
	}
	require.True(t, found)
}

func TestStatsHandler_GetWeeklySeries_BadDate(t *testing.T) {
	env := setupStatsTestEnv(t)
	user := env.createUser(t, "testuser")

	c, w := statsContext(t, "/api/stats/weekly?date=12-03-2025", user.ID)

	env.handler.GetWeeklySeries(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}
