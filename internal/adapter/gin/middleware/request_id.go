package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"user-rest-service/pkg/logger"
)

// RequestIDHeader is the response header carrying the generated request id.
const RequestIDHeader = "X-Request-ID"

// RequestID attaches a fresh request id to each request's context and echoes
// it in the response headers. Purely observational; it never short-circuits.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.New().String()

		ctx := context.WithValue(c.Request.Context(), logger.RequestIDKey, requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Writer.Header().Set(RequestIDHeader, requestID)

		c.Next()
	}
}
