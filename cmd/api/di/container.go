package di

import (
	"fmt"

	"user-rest-service/cmd/api/infrastructure"
	ginhandler "user-rest-service/internal/adapter/gin/handler"
	"user-rest-service/internal/adapter/gin/middleware"
	"user-rest-service/internal/adapter/memory"
	"user-rest-service/internal/config"
	"user-rest-service/internal/usecase/user"
	redisclient "user-rest-service/pkg/redis"
	"user-rest-service/pkg/security"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	Store       *memory.UserStore
	RedisClient *redisclient.Client
	UserUC      user.Usecase
	Verifier    security.TokenVerifier
	RateLimiter *middleware.RateLimiter
	GinHandler  *ginhandler.UserHandler
}

// NewContainer creates and initializes all application dependencies.
// The config has already been validated by LoadConfig.
func NewContainer(cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Initialize the in-memory store and the use case on top of it
	store := memory.NewUserStore(l)
	userUC := user.New(store, l)

	// Initialize the token verifier for the auth middleware
	verifier, err := security.NewVerifier(security.Config{
		Mode:       cfg.Auth.Mode,
		Token:      cfg.Auth.Token,
		JWTSignKey: cfg.Auth.JWTSignKey,
		JWTIssuer:  cfg.Auth.JWTIssuer,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create token verifier: %w", err)
	}

	// Redis backs the rate limiter only; skip the connection entirely
	// when rate limiting is disabled.
	var rdb *redisclient.Client
	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		rdb, err = infrastructure.NewRedisClient(cfg, l)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Redis: %w", err)
		}

		rateLimiter = middleware.NewRateLimiter(
			rdb.Client,
			middleware.RateLimiterConfig{
				Enabled:           cfg.RateLimit.Enabled,
				RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
				BurstCapacity:     cfg.RateLimit.BurstCapacity,
			},
			l,
		)
	}

	// Initialize Gin handler
	ginHandler := ginhandler.NewUserHandler(userUC, l)

	return &Container{
		Config:      cfg,
		Logger:      l,
		Store:       store,
		RedisClient: rdb,
		UserUC:      userUC,
		Verifier:    verifier,
		RateLimiter: rateLimiter,
		GinHandler:  ginHandler,
	}, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error

	// Close Redis connection
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("container close errors: %v", errs)
	}

	return nil
}
