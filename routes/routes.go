package routes

import (
	"caresched/handlers"
	"caresched/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires all endpoints. Hold CRUD is tenant-scoped; confirm is
// restricted to service credentials.
func RegisterRoutes(r *gin.Engine, b *handlers.HandlerBundle) {
	r.GET("/healthz", b.Health)

	schedule := r.Group("/api/schedule", middleware.TenantAuthMiddleware())
	{
		schedule.POST("/generate", b.GenerateSchedule)
		schedule.POST("/cache/clear", b.ClearScheduleCache)
	}

	holds := r.Group("/api/holds", middleware.TenantAuthMiddleware())
	{
		holds.POST("", b.AcquireHold)
		holds.GET("/:id", b.GetHold)
		holds.DELETE("/:id", b.ReleaseHold)
	}

	confirm := r.Group("/api/holds", middleware.ServiceAuthMiddleware())
	{
		confirm.POST("/:id/confirm", b.ConfirmHold)
	}

	sessions := r.Group("/api/sessions", middleware.TenantAuthMiddleware())
	{
		sessions.GET("/:id", b.GetSession)
	}
}
