package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	ginhandler "user-rest-service/internal/adapter/gin/handler"
	"user-rest-service/internal/adapter/gin/middleware"
	"user-rest-service/internal/config"
	"user-rest-service/pkg/security"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Server struct holds all server dependencies
type Server struct {
	Config *config.Config
	Logger *zap.Logger
	Gin    *http.Server
}

// New creates a new server instance
func New(
	cfg *config.Config,
	l *zap.Logger,
	handler *ginhandler.UserHandler,
	verifier security.TokenVerifier,
	rateLimiter *middleware.RateLimiter,
) (*Server, error) {
	ginServer, err := SetupGinServer(handler, verifier, rateLimiter, ":"+cfg.App.HTTPPort, l)
	if err != nil {
		return nil, fmt.Errorf("failed to set up REST API server: %w", err)
	}

	return &Server{
		Config: cfg,
		Logger: l,
		Gin:    ginServer,
	}, nil
}

// Run serves HTTP until ctx is canceled, then drains in-flight requests
// within the configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.Logger.Info("REST API listening", zap.String("address", s.Gin.Addr))
		if err := s.Gin.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		timeout := time.Duration(s.Config.App.ShutdownTimeoutSeconds) * time.Second
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		s.Logger.Info("shutting down HTTP server",
			zap.Int("timeout_seconds", s.Config.App.ShutdownTimeoutSeconds),
		)

		if err := s.Gin.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
