package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-rest-service/pkg/security"
)

const bearerPrefix = "Bearer "

// TokenAuth gates the resource routes. The Authorization header must carry a
// bearer token the verifier accepts; otherwise the request is answered here
// and later stages, including the request logger, never see it. A header
// that is absent or not in bearer form is reported separately from a token
// that fails verification.
func TokenAuth(verifier security.TokenVerifier, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			log.Warn("missing or malformed authorization header",
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
			)
			c.String(http.StatusUnauthorized, "Unauthorized: Missing or invalid token.")
			c.Abort()
			return
		}

		token := strings.TrimPrefix(header, bearerPrefix)
		if err := verifier.Verify(c.Request.Context(), token); err != nil {
			log.Warn("token validation failed",
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
			c.String(http.StatusUnauthorized, "Unauthorized: Token validation failed.")
			c.Abort()
			return
		}

		c.Next()
	}
}
