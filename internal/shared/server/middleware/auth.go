package middleware

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const userIDKey = "userId"

// mockUserID is the identity every request runs as when no override is given.
// The lab has no real authentication.
const mockUserID int64 = 1

// MockAuth stores a mock identity in context. An X-User-Id header overrides the
// default so ownership paths stay reachable from tests and manual probing.
func MockAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := mockUserID
		if raw := strings.TrimSpace(c.GetHeader("X-User-Id")); raw != "" {
			if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil && parsed > 0 {
				userID = parsed
			}
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserIDFromContext fetches the user ID set by the auth middleware.
func UserIDFromContext(c *gin.Context) int64 {
	if c == nil {
		return 0
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(int64); ok {
		return id
	}
	return 0
}
