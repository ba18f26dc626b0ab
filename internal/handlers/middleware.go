package handlers

import (
	"net/http"
	"strings"

	"canteen/internal/models"
	"canteen/internal/redis"
	"canteen/internal/services"

	"github.com/gin-gonic/gin"
)

const sessionKey = "session"

// AuthRequired resolves the bearer token to a session and stores the identity
// on the request context. Services receive identity as explicit arguments.
func AuthRequired(userService services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" || token == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		session, err := userService.Authenticate(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			return
		}

		c.Set(sessionKey, session)
		c.Set("token", token)
		c.Next()
	}
}

// RequireStaff allows only kitchen and admin sessions through.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !models.IsStaff(currentSession(c).Role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Staff access required"})
			return
		}
		c.Next()
	}
}

// RequireAdmin allows only admin sessions through.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentSession(c).Role != string(models.RoleAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}

func currentSession(c *gin.Context) *redis.SessionData {
	value, ok := c.Get(sessionKey)
	if !ok {
		return &redis.SessionData{}
	}
	session, ok := value.(*redis.SessionData)
	if !ok {
		return &redis.SessionData{}
	}
	return session
}
