package server

import (
	"time"

	"github.com/gin-gonic/gin"

	"bijoux-catalog/internal/logger"
)

// requestLogger emits one entry for the inbound request and one for the
// response with its status and elapsed time.
func requestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		log.RequestLog(c.Request.Method, c.Request.URL.Path, c.ClientIP(), c.Request.UserAgent())

		c.Next()

		log.ResponseLog(c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
