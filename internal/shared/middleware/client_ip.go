package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"library-catalog/internal/shared"
	"library-catalog/internal/shared/utils"
)

type clientIPKey struct{}

// ClientIPMiddleware extracts the client IP address from the request
// and injects it into both the gin and the request context.
//
// Usage:
//
//	router.Use(middleware.ClientIPMiddleware())
func ClientIPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := utils.ExtractClientIP(c)

		c.Set(shared.ContextKeyClientIP, clientIP)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), clientIPKey{}, clientIP))

		c.Next()
	}
}

// GetClientIPFromContext retrieves the client IP from context
// Returns empty string if not found
func GetClientIPFromContext(ctx context.Context) string {
	if ip, ok := ctx.Value(clientIPKey{}).(string); ok {
		return ip
	}
	return ""
}
