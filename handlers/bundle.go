package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle aggregates all route handlers for registration.
type HandlerBundle struct {
	// Scheduling endpoints.
	GenerateSchedule   gin.HandlerFunc
	ClearScheduleCache gin.HandlerFunc

	// Hold endpoints.
	AcquireHold gin.HandlerFunc
	GetHold     gin.HandlerFunc
	ReleaseHold gin.HandlerFunc
	ConfirmHold gin.HandlerFunc

	// Session endpoints.
	GetSession gin.HandlerFunc

	// Health endpoint.
	Health gin.HandlerFunc
}
