package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/yt-extract-go/api/handlers"
)

// Recovery turns a panic in a handler into the service's 500 error body.
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error("Panic recovered",
					zap.Any("panic", rec),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.String("request_id", c.GetString(RequestIDKey)),
					zap.Bool("response_started", c.Writer.Written()),
					zap.Stack("stack"),
				)
				handlers.AbortWithError(c, http.StatusInternalServerError, handlers.MsgInternalError)
			}
		}()
		c.Next()
	}
}
