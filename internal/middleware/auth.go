package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"identity-service/internal/auth"
	"identity-service/pkg/utils"
)

// AuthMiddleware verifies the bearer token and places its claims (email,
// role) into the request context.
func AuthMiddleware(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Authorization header required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := tokens.Verify(parts[1])
		if err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("email", claims.Subject)
		c.Set("role", claims.Role)

		c.Next()
	}
}
