package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tiagokise/qr-api/internal/utils"
)

const (
	AuthUserIDKey    = "authUserID"
	AuthUserNameKey  = "authUserName"
	AuthUserEmailKey = "authUserEmail"
)

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": message})
}

// JWTAuthMiddleware creates a middleware for JWT authentication
func JWTAuthMiddleware(jwtUtil *utils.JWTUtil) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header required.")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			abortUnauthorized(c, "Invalid authorization header format.")
			return
		}

		claims, err := jwtUtil.ValidateToken(parts[1])
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token.")
			return
		}

		// Attach the resolved identity to the request context
		c.Set(AuthUserIDKey, claims.UserID)
		c.Set(AuthUserNameKey, claims.FullName)
		c.Set(AuthUserEmailKey, claims.Email)

		c.Next()
	}
}
