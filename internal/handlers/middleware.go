package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Calebbuffleben/EAD/pkg/logger"
)

// RequestLogger пишет в лог каждый обработанный запрос
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}
