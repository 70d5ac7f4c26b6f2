package middleware

import (
	"caresched/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CorrelationMiddleware ensures every request carries correlation and request
// ids, echoing inbound values unchanged so retries of the same logical
// operation stay joinable in server-side logs.
func CorrelationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		correlationID := c.GetHeader(utils.CorrelationIDHeader)
		if correlationID == "" {
			correlationID = uuid.New().String()
		}
		requestID := c.GetHeader(utils.RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set("correlationID", correlationID)
		c.Set("requestID", requestID)
		c.Header(utils.CorrelationIDHeader, correlationID)
		c.Header(utils.RequestIDHeader, requestID)
		c.Next()
	}
}
