package middleware

import (
	"time"

	"mentorhub/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

// RequestIDMiddleware tags each request with an id (reusing the caller's when
// sent), attaches a request-scoped logger and logs the outcome.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(utils.RequestIDContextKey, id)
		c.Header(requestIDHeader, id)

		logger := utils.GetLogger().With(zap.String("requestID", id))
		c.Set(utils.LoggerContextKey, logger)

		start := time.Now()
		c.Next()

		utils.RequestLogger(c).Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("took", time.Since(start)))
	}
}
