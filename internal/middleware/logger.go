package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorLogger logs failed requests and recovers from handler panics.
func ErrorLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if recovered := recover(); recovered != nil {
				logger.Error("panic recovered",
					requestFields(c, start, fmt.Sprintf("%v", recovered))...,
				)
				logger.Debug("panic stack", zap.ByteString("stack", debug.Stack()))

				c.JSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "INTERNAL_SERVER_ERROR",
						"message": "Internal Server Error",
					},
				})
				c.Abort()
				return
			}

			if len(c.Errors) == 0 {
				if c.Writer.Status() >= http.StatusInternalServerError {
					logger.Error("request failed",
						requestFields(c, start, fmt.Sprintf("status=%d", c.Writer.Status()))...,
					)
				}
				return
			}

			for _, err := range c.Errors {
				logger.Error("request error", requestFields(c, start, err.Error())...)
			}
		}()

		c.Next()
	}
}

func requestFields(c *gin.Context, start time.Time, message string) []zap.Field {
	return []zap.Field{
		zap.Int("status", c.Writer.Status()),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.String("client_ip", c.ClientIP()),
		zap.Int64("user_id", c.GetInt64("user_id")),
		zap.Duration("latency", time.Since(start)),
		zap.String("error", message),
	}
}
