package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jobdam/jobdam-backend/internal/logger"
)

const RequestIDHeader = "X-Request-Id"

// RequestID tags every request with a uuid (honoring one supplied by the
// caller) and logs the request line with latency once handling finishes.
func RequestID(log *logger.Logger) gin.HandlerFunc {
	requestLog := log.With("middleware", "RequestID")
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)
		start := time.Now()
		c.Next()
		requestLog.Info("Request handled",
			"requestID", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
		)
	}
}
