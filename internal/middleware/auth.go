package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"paynlp/internal/auth"
)

// ContextKeySubject holds the authenticated token subject.
const ContextKeySubject = "subject"

// AuthMiddleware returns Gin middleware that validates bearer tokens and
// injects the token subject.
func AuthMiddleware(validator auth.TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "missing or invalid authorization header"},
			})
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := validator.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "invalid or expired token"},
			})
			return
		}

		c.Set(ContextKeySubject, claims.Subject)
		c.Next()
	}
}

// GetSubject returns the authenticated subject, or "".
func GetSubject(c *gin.Context) string {
	return c.GetString(ContextKeySubject)
}
