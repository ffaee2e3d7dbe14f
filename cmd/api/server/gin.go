package server

import (
	"net/http"
	"time"

	ginhandler "user-rest-service/internal/adapter/gin/handler"
	"user-rest-service/internal/adapter/gin/middleware"
	ginrouter "user-rest-service/internal/adapter/gin/router"
	"user-rest-service/pkg/security"

	"go.uber.org/zap"
)

// SetupGinServer creates and configures the Gin REST API server
func SetupGinServer(
	handler *ginhandler.UserHandler,
	verifier security.TokenVerifier,
	rateLimiter *middleware.RateLimiter,
	ginAddr string,
	l *zap.Logger,
) (*http.Server, error) {
	// Setup Gin router with all middleware and routes
	router := ginrouter.SetupRouter(handler, verifier, rateLimiter, l)

	l.Info("REST API configured", zap.String("address", ginAddr))

	return &http.Server{
		Addr:              ginAddr,
		Handler:           router,
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}, nil
}
