package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	apierrors "github.com/ymaeda/pomodoro-tracker/internal/errors"
	"github.com/ymaeda/pomodoro-tracker/internal/middleware"
	"github.com/ymaeda/pomodoro-tracker/internal/services"
)

// StatsHandler serves the read-only productivity statistics endpoints.
type StatsHandler struct {
	statsService *services.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService *services.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// referenceDate reads the optional ?date=YYYY-MM-DD parameter, defaulting
// to the current day.
func referenceDate(c *gin.Context) (time.Time, bool) {
	dateStr := c.Query("date")
	if dateStr == "" {
		return time.Now(), true
	}

	ref, err := time.Parse(services.DeadlineLayout, dateStr)
	if err != nil {
		apierrors.BadRequest(c, "Date must be in YYYY-MM-DD format")
		return time.Time{}, false
	}
	return ref, true
}

// GetStats returns the weekly summary plus the daily breakdown.
func (h *StatsHandler) GetStats(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	ref, ok := referenceDate(c)
	if !ok {
		return
	}

	summary, err := h.statsService.Weekly(userID, ref)
	if err != nil {
		apierrors.InternalError(c, "Failed to compute statistics")
		return
	}

	daily, err := h.statsService.DailyCounts(userID, ref, 0)
	if err != nil {
		apierrors.InternalError(c, "Failed to compute statistics")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary": summary,
		"daily":   daily,
	})
}

// GetWeeklySeries returns the raw daily-count series for charting.
func (h *StatsHandler) GetWeeklySeries(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	ref, ok := referenceDate(c)
	if !ok {
		return
	}

	daily, err := h.statsService.DailyCounts(userID, ref, 0)
	if err != nil {
		apierrors.InternalError(c, "Failed to compute statistics")
		return
	}

	c.JSON(http.StatusOK, daily)
}
