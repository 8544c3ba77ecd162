package middleware

import (
	"github.com/gin-gonic/gin"
)

// UserIDKey is the key used to store the raw identity header value in the context
const UserIDKey = "user_id"

// Identity middleware reads the identity header and stores its value in the
// context for handlers to resolve. Resolution itself happens per handler so
// that public routes skip the lookup entirely.
func Identity(headerName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := c.GetHeader(headerName); raw != "" {
			c.Set(UserIDKey, raw)
		}
		c.Next()
	}
}

// GetUserIDHeader retrieves the raw identity header value stored by Identity
func GetUserIDHeader(c *gin.Context) string {
	if v, exists := c.Get(UserIDKey); exists {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
