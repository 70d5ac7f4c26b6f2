package handlers

import (
	"errors"
	"net/http"

	sessionRepo "caresched/database/repository/session"
	"caresched/middleware"
	"caresched/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionHandler serves read access to confirmed sessions.
type SessionHandler struct {
	Repo   sessionRepo.SessionRepository
	Logger *zap.Logger
}

func NewSessionHandler(repo sessionRepo.SessionRepository, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{Repo: repo, Logger: logger}
}

// GetSession fetches one of the caller's own sessions, typically right after a
// confirmed hold to read back the booked range.
func (h *SessionHandler) GetSession(c *gin.Context) {
	session, err := h.Repo.GetByID(c.Request.Context(), middleware.OrgID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			utils.JSONError(c, http.StatusNotFound, "session not found", err.Error())
			return
		}
		h.Logger.Error("session lookup failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "session lookup failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, session)
}
