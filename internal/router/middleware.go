package router

import (
	"crypto/subtle"
	"net/http"

	"github.com/atikxcode/SNAIL-TYPE-sub000/internal/repository"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserLoaderMiddleware checks for a userID in the session. If found, it
// loads the user from the database and adds it to the context. This ensures
// we don't have "zombie" sessions for users who no longer exist.
func UserLoaderMiddleware(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID, ok := session.Get("userID").(uint)
		if !ok {
			// No user ID in session, proceed as anonymous.
			c.Next()
			return
		}

		user, err := repository.GetUserByID(c.Request.Context(), userID)
		if err != nil {
			// User ID from session is invalid (user was deleted, etc.)
			// Clear the bad session and treat as anonymous. Telemetry from
			// such callers still lands, just without identity.
			log.Debug("Clearing stale session", zap.Uint("userID", userID))
			session.Clear()
			session.Options(sessions.Options{Path: "/", MaxAge: -1})
			session.Save()
			c.Next()
			return
		}

		c.Set("user", user)
		c.Next()
	}
}

// AuthRequired checks if a valid user was loaded into the context.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get("user"); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Login required"})
			return
		}
		c.Next()
	}
}

// TokenRequired guards the aggregation trigger with the shared secret.
func TokenRequired(token func() string) gin.HandlerFunc {
	return func(c *gin.Context) {
		expected := token()
		provided := c.GetHeader("X-Aggregation-Token")
		if expected == "" ||
			subtle.ConstantTimeCompare([]byte(expected), []byte(provided)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid aggregation token"})
			return
		}
		c.Next()
	}
}
