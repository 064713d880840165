package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"identity-service/pkg/utils"
)

const DefaultMaxRequestSize = 1 << 20

// RequestSizeLimitMiddleware limits the size of incoming request bodies.
func RequestSizeLimitMiddleware(maxSize int64) gin.HandlerFunc {
	if maxSize <= 0 {
		maxSize = DefaultMaxRequestSize
	}

	return func(c *gin.Context) {
		if c.Request.ContentLength > maxSize {
			utils.ErrorResponse(c, http.StatusRequestEntityTooLarge, "Request body too large")
			c.Abort()
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		c.Next()
	}
}
