package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"fractional-market/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the most recent public error when a handler recorded
// one without writing a body. Anything else becomes a bare 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		if last := c.Errors.ByType(gin.ErrorTypePublic).Last(); last != nil {
			if resp, ok := last.Meta.(httperr.Response); ok {
				c.JSON(resp.Status, resp)
				return
			}
		}

		status := c.Writer.Status()
		if status >= http.StatusBadRequest {
			c.AbortWithStatusJSON(status, httperr.NewResponse(status, http.StatusText(status), nil))
			return
		}
		if len(c.Errors) > 0 {
			c.JSON(http.StatusInternalServerError, httperr.NewResponse(http.StatusInternalServerError, "Internal server error", nil))
		}
	}
}

// CustomRecovery turns a panic into a 500. A panic inside the webhook route
// is answered the same way, so the provider retries the delivery.
func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("recovered from panic",
					"request_id", c.GetString(requestIDKey),
					"method", c.Request.Method,
					"path", c.FullPath(),
					"panic", fmt.Sprint(rec),
					"stack", string(debug.Stack()))

				c.AbortWithStatusJSON(http.StatusInternalServerError,
					httperr.NewResponse(http.StatusInternalServerError, "Internal server error", nil))
			}
		}()
		c.Next()
	}
}
