package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ymaeda/pomodoro-tracker/internal/dto"
	apierrors "github.com/ymaeda/pomodoro-tracker/internal/errors"
	"github.com/ymaeda/pomodoro-tracker/internal/middleware"
	"github.com/ymaeda/pomodoro-tracker/internal/services"
)

// PomodoroHandler coordinates focus session HTTP handlers.
type PomodoroHandler struct {
	pomodoroService *services.PomodoroService
}

// NewPomodoroHandler creates a new PomodoroHandler.
func NewPomodoroHandler(pomodoroService *services.PomodoroService) *PomodoroHandler {
	return &PomodoroHandler{
		pomodoroService: pomodoroService,
	}
}

// Start records a new focus session, optionally linked to a task.
func (h *PomodoroHandler) Start(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type StartRequest struct {
		TaskID   *uint64 `json:"task_id"`
		Duration int     `json:"duration"`
	}

	var req StartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	pomodoro, err := h.pomodoroService.Start(services.StartInput{
		UserID:   userID,
		TaskID:   req.TaskID,
		Duration: req.Duration,
	})
	if err != nil {
		respondPomodoroError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.StartPomodoroResponse{
		PomodoroID: pomodoro.ID,
		Duration:   pomodoro.Duration,
	})
}

// Complete marks a focus session as completed.
func (h *PomodoroHandler) Complete(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	pomodoroID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid pomodoro ID")
		return
	}

	pomodoro, err := h.pomodoroService.Complete(userID, pomodoroID)
	if err != nil {
		respondPomodoroError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPomodoroDTO(*pomodoro))
}

func respondPomodoroError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotOwned):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrPomodoroNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
