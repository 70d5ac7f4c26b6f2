package middleware

import (
	"net/http"
	"strings"

	"caresched/utils"

	"github.com/gin-gonic/gin"
)

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(authHeader, "Bearer "), true
}

// TenantAuthMiddleware validates an ordinary tenant credential and sets the
// organization scope for all downstream hold reads/writes.
func TenantAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}

		claims, err := utils.ValidateTenantToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set("orgID", claims.OrganizationID)
		c.Set("subject", claims.Subject)
		c.Next()
	}
}

// ServiceAuthMiddleware gates the privileged confirm operation: only a
// service-level credential passes, never an ordinary tenant token.
func ServiceAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}

		claims, err := utils.ValidateServiceToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Confirm requires a service credential"})
			return
		}

		c.Set("subject", claims.Subject)
		c.Next()
	}
}

// OrgID returns the organization scope set by TenantAuthMiddleware.
func OrgID(c *gin.Context) string {
	return c.GetString("orgID")
}
