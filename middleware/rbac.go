package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/esepkerala/registration-backend/internal/auth"
)

// RequireRoles checks that the authenticated admin holds one of the allowed
// roles. Must run after AuthMiddleware.
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminVal, exists := c.Get("admin")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}

		admin, ok := adminVal.(auth.Admin)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid admin object"})
			return
		}

		for _, role := range allowedRoles {
			if admin.Role == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "unauthorized"})
	}
}
