package handlers

import (
	"errors"
	"net/http"

	holdRepo "caresched/database/repository/hold"
	"caresched/middleware"
	"caresched/models"
	"caresched/services/agentops"
	hold "caresched/services/hold"
	"caresched/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultConflictHint = "This slot could not be reserved."

// HoldHandler exposes the hold/confirm protocol over HTTP.
type HoldHandler struct {
	Svc    hold.HoldService
	Logger *zap.Logger
}

func NewHoldHandler(svc hold.HoldService, logger *zap.Logger) *HoldHandler {
	return &HoldHandler{Svc: svc, Logger: logger}
}

// AcquireHold provisionally reserves a therapist/time/client triple.
func (h *HoldHandler) AcquireHold(c *gin.Context) {
	var req models.HoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	acquired, err := h.Svc.Acquire(c.Request.Context(), middleware.OrgID(c), req)
	if err != nil {
		h.writeHoldError(c, err)
		return
	}
	c.JSON(http.StatusCreated, acquired)
}

// GetHold fetches one of the caller's own holds.
func (h *HoldHandler) GetHold(c *gin.Context) {
	found, err := h.Svc.Get(c.Request.Context(), middleware.OrgID(c), c.Param("id"))
	if err != nil {
		h.writeHoldError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

// ReleaseHold deletes one of the caller's own holds. Foreign-tenant holds are
// invisible and the delete is denied as not-found.
func (h *HoldHandler) ReleaseHold(c *gin.Context) {
	if err := h.Svc.Release(c.Request.Context(), middleware.OrgID(c), c.Param("id")); err != nil {
		h.writeHoldError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "released"})
}

// ConfirmHold converts a hold into a session. Reachable only through the
// service-credential route; losers of the race get a structured conflict
// with a human-readable retry hint.
func (h *HoldHandler) ConfirmHold(c *gin.Context) {
	session, err := h.Svc.Confirm(c.Request.Context(), c.Param("id"))
	if err != nil {
		var conflict *agentops.ConflictError
		if errors.As(err, &conflict) {
			c.JSON(http.StatusConflict, gin.H{
				"error":     conflict.Message,
				"retryHint": agentops.BuildSchedulingConflictHint(conflict, defaultConflictHint),
				"conflict":  conflict,
			})
			return
		}
		h.writeHoldError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

func (h *HoldHandler) writeHoldError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, holdRepo.ErrHoldNotFound):
		utils.JSONError(c, http.StatusNotFound, "hold not found", err.Error())
	case errors.Is(err, hold.ErrInvalidHoldRequest):
		utils.JSONError(c, http.StatusBadRequest, "invalid hold request", err.Error())
	default:
		var conflict *agentops.ConflictError
		if errors.As(err, &conflict) {
			c.JSON(http.StatusConflict, gin.H{
				"error":     conflict.Message,
				"retryHint": agentops.BuildSchedulingConflictHint(conflict, defaultConflictHint),
				"conflict":  conflict,
			})
			return
		}
		h.Logger.Error("hold operation failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "hold operation failed", err.Error())
	}
}
