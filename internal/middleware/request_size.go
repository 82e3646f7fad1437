package middleware

import (
	"net/http"

	appErrors "tour-booking-api/pkg/errors"

	"github.com/gin-gonic/gin"
)

const DefaultMaxRequestSize = 1 << 20

// RequestSizeLimit caps request bodies at maxSize bytes.
func RequestSizeLimit(maxSize int64) gin.HandlerFunc {
	if maxSize <= 0 {
		maxSize = DefaultMaxRequestSize
	}

	return func(c *gin.Context) {
		if c.Request.ContentLength > maxSize {
			_ = c.Error(appErrors.New("REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge,
				"request body too large"))
			c.Abort()
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		c.Next()
	}
}
