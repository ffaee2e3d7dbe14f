package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-rest-service/pkg/logger"
)

// RequestLogger logs each request before the handler runs and its outcome
// afterwards. It never short-circuits. Installed after TokenAuth, so
// requests rejected at the auth stage leave no trace here.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqLog := logger.WithContext(c.Request.Context(), log)

		reqLog.Info("request received",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)

		c.Next()

		reqLog.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}
