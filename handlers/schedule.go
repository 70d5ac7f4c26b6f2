package handlers

import (
	"errors"
	"net/http"

	sessionRepo "caresched/database/repository/session"
	"caresched/middleware"
	"caresched/models"
	"caresched/services/scheduling"
	"caresched/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ScheduleHandler exposes the scheduling engine over HTTP.
type ScheduleHandler struct {
	Engine   *scheduling.Engine
	Sessions sessionRepo.SessionRepository
	Logger   *zap.Logger
}

func NewScheduleHandler(engine *scheduling.Engine, sessions sessionRepo.SessionRepository, logger *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{Engine: engine, Sessions: sessions, Logger: logger}
}

// GenerateSchedule runs one scheduling pass over the posted roster and window.
// Sessions already persisted for the caller's organization are merged into the
// exclusion set alongside any sessions supplied in the request.
func (h *ScheduleHandler) GenerateSchedule(c *gin.Context) {
	var req models.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	sessions := req.Sessions
	if h.Sessions != nil {
		persisted, err := h.Sessions.ListForWindow(c.Request.Context(), middleware.OrgID(c), req.WindowStart, req.WindowEnd.AddDate(0, 0, 1))
		if err != nil {
			h.Logger.Error("failed to load persisted sessions", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "failed to load sessions", err.Error())
			return
		}
		sessions = append(sessions, persisted...)
	}

	result, err := h.Engine.GenerateOptimalSchedule(req.Therapists, req.Clients, sessions, req.WindowStart, req.WindowEnd)
	if err != nil {
		if errors.Is(err, scheduling.ErrInvalidWindow) || errors.Is(err, scheduling.ErrWindowTooWide) {
			utils.JSONError(c, http.StatusBadRequest, "invalid window", err.Error())
			return
		}
		h.Logger.Error("schedule generation failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to generate schedule", err.Error())
		return
	}

	c.JSON(http.StatusOK, result)
}

// ClearScheduleCache forces recomputation on the next run. The geocode cache
// is left intact.
func (h *ScheduleHandler) ClearScheduleCache(c *gin.Context) {
	h.Engine.ClearScheduleCache()
	c.JSON(http.StatusOK, gin.H{"status": "schedule cache cleared"})
}
