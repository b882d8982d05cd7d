package handlers

import (
	"net/http"
	"time"

	"venuebook/config"
	"venuebook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AdminAuthHandler issues and revokes operator tokens. The operator
// password is configured as a bcrypt hash; a successful login yields a
// short-lived JWT whose hash is registered in the auth session cache.
type AdminAuthHandler struct{}

// NewAdminAuthHandler creates an AdminAuthHandler.
func NewAdminAuthHandler() *AdminAuthHandler {
	return &AdminAuthHandler{}
}

type adminLoginRequest struct {
	Password string `json:"password" binding:"required"`
}

func (h *AdminAuthHandler) LoginHandler(c *gin.Context) {
	logger := utils.GetLogger()

	hash := config.AppConfig.AdminPasswordHash
	if hash == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Admin login is not configured"})
		return
	}

	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		logger.Warn("Admin login rejected", zap.String("ip", c.ClientIP()))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid password"})
		return
	}

	ttl := time.Duration(config.AppConfig.AdminTokenTTLMin) * time.Minute
	token, err := utils.GenerateAdminToken(ttl)
	if err != nil {
		logger.Error("Failed to issue admin token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}
	if err := utils.SaveAdminSession(utils.GetAuthCacheClient(), utils.HashToken(token), ttl); err != nil {
		logger.Error("Failed to register admin session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_at": time.Now().Add(ttl).UTC().Format(time.RFC3339),
	})
}

func (h *AdminAuthHandler) LogoutHandler(c *gin.Context) {
	tokenValue, exists := c.Get("adminToken")
	token, ok := tokenValue.(string)
	if !exists || !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	if err := utils.DeleteAdminSession(utils.GetAuthCacheClient(), utils.HashToken(token)); err != nil {
		utils.GetLogger().Error("Failed to revoke admin session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log out"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
