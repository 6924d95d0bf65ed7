package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shipwise/shipwise/internal/logger"
)

// RequestLogger logs every request with its latency and status.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.L.Infow("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
		)
	}
}
