package middleware

import (
	"net/http"
	"strings"

	"venuebook/utils"

	"github.com/gin-gonic/gin"
)

// AdminAuthMiddleware gates operator endpoints. A request must carry a
// bearer JWT issued by the admin login endpoint, and the token's hash must
// still be present in the auth session cache (absence means revoked or
// expired).
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		if _, err := utils.ValidateToken(tokenString); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized admin access"})
			return
		}

		exists, err := utils.AdminSessionExists(utils.GetAuthCacheClient(), utils.HashToken(tokenString))
		if err != nil || !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired or revoked"})
			return
		}

		c.Set("adminToken", tokenString)
		c.Set("isAdmin", true)
		c.Next()
	}
}
