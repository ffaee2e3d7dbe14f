package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	"user-rest-service/internal/adapter/gin/handler"
	"user-rest-service/internal/adapter/gin/middleware"
	"user-rest-service/pkg/security"
)

// SetupRouter configures and returns a Gin engine with the middleware
// pipeline and all routes.
//
// Per-request stage order on the resource routes:
//
//	Recovery -> RequestID -> RateLimiter -> TokenAuth -> RequestLogger -> handler
//
// Recovery sits outermost so a fault in any later stage or handler is
// contained there. TokenAuth answers rejected requests itself, so the
// request logger never sees them; the logger observes everything that made
// it past the gate and never short-circuits. Health and the API docs sit in
// front of the token gate.
func SetupRouter(
	userHandler *handler.UserHandler,
	verifier security.TokenVerifier,
	rateLimiter *middleware.RateLimiter,
	log *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID())
	router.Use(rateLimiter.Handler())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "user-rest-service",
		})
	})

	// Swagger UI plus the document it renders
	swaggerUI := httpSwagger.Handler(httpSwagger.URL("/swagger/users.swagger.json"))
	router.GET("/swagger/*any", func(c *gin.Context) {
		if c.Param("any") == "/users.swagger.json" {
			c.File("./api/swagger/users.swagger.json")
			return
		}
		swaggerUI.ServeHTTP(c.Writer, c.Request)
	})

	// Resource routes behind the token gate
	users := router.Group("/users")
	users.Use(
		middleware.TokenAuth(verifier, log),
		middleware.RequestLogger(log),
	)
	{
		users.POST("", userHandler.CreateUser)
		users.GET("", userHandler.ListUsers)
		users.GET("/:id", userHandler.GetUser)
		users.PUT("/:id", userHandler.UpdateUser)
		users.DELETE("/:id", userHandler.DeleteUser)
	}

	return router
}
