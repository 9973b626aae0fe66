package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CtxUserIDKey is the gin context key the authenticated user id is stored under.
const CtxUserIDKey = "userID"

// RequireSession resolves the caller from the Authorization header before any
// handler logic runs. A missing or unknown token is a 401 regardless of
// database state.
func RequireSession(sessions SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := BearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required."})
			return
		}
		userID, ok := sessions.Get(token)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token."})
			return
		}
		c.Set(CtxUserIDKey, userID)
		c.Next()
	}
}

// UserID returns the authenticated user id set by RequireSession.
func UserID(c *gin.Context) int64 {
	return c.GetInt64(CtxUserIDKey)
}

// BearerToken extracts the token from an Authorization header.
func BearerToken(header string) (string, bool) {
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return "", false
	}
	return token, true
}
