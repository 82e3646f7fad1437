package middleware

import (
	"net/http"
	"runtime/debug"

	"tour-booking-api/internal/config"
	"tour-booking-api/internal/logger"
	appErrors "tour-booking-api/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler is the single place failures become HTTP responses.
// Handlers and middleware push errors with c.Error and abort; after the
// chain unwinds this renders the last one. Operational errors surface
// their message and status in every mode; anything unclassified is logged
// and replaced with a generic message in production, while development
// mode returns full detail and a stack.
func ErrorHandler(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		appErr, operational := appErrors.AsAppError(err)

		status := http.StatusInternalServerError
		message := err.Error()
		if operational {
			status = appErr.Status
			message = appErr.Message
		}

		if !cfg.Server.IsProduction() {
			c.JSON(status, gin.H{
				"status":  statusWord(status),
				"message": message,
				"error":   err.Error(),
				"stack":   string(debug.Stack()),
			})
			return
		}

		if !operational {
			logger.WithRequestID(GetRequestID(c)).Error("unhandled error",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
				zap.Error(err),
			)
			c.JSON(status, gin.H{
				"status":  "error",
				"message": "something went very wrong",
			})
			return
		}

		c.JSON(status, gin.H{
			"status":  statusWord(status),
			"message": message,
		})
	}
}

// statusWord follows the response convention: 4xx failures are the
// client's ("fail"), 5xx are ours ("error").
func statusWord(status int) string {
	if status >= http.StatusInternalServerError {
		return "error"
	}
	return "fail"
}
