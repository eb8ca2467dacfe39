// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	appctx "basekit/internal/core/context"
	"basekit/internal/core/entity"
	"basekit/internal/domain/address"
	"basekit/internal/domain/auth"
	"basekit/internal/domain/history"
	"basekit/internal/domain/user"
	"basekit/internal/infrastructure/http/v1/handlers"
	"basekit/internal/infrastructure/http/v1/middleware"
	"basekit/internal/infrastructure/storage/postgres"
	"basekit/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Pool is the database connection pool (for health checks)
	Pool *postgres.Pool

	// Logger for request logging
	Logger *logger.Logger

	// JWT issues access tokens and validates bearer tokens
	JWT *auth.JWTService

	// Users manages accounts and issues actor identities
	Users *user.Manager

	// Addresses coordinates address CRUD and lifecycle
	Addresses *address.Service

	// History is the read surface for audit records
	History history.Repository

	// Registry resolves generic associations back to entities
	Registry *entity.Registry
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery(cfg.Logger))
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	baseHandler := handlers.NewBaseHandler()

	v1 := router.Group("/api/v1")
	{
		// Public auth endpoints
		authHandler := handlers.NewAuthHandler(baseHandler, cfg.Users, cfg.JWT)
		authHandler.RegisterRoutes(v1.Group("/auth"))

		// Address endpoints: anonymous access allowed; the actor, when
		// present, is attributed in history records.
		addresses := v1.Group("/addresses")
		addresses.Use(middleware.OptionalAuth(cfg.JWT))
		handlers.NewAddressHandler(baseHandler, cfg.Addresses).RegisterRoutes(addresses)

		// History read surface requires an authenticated actor.
		historyGroup := v1.Group("/history")
		historyGroup.Use(middleware.Auth(cfg.JWT))
		handlers.NewHistoryHandler(baseHandler, cfg.History, cfg.Registry).RegisterRoutes(historyGroup)

		// Trash administration requires staff.
		trash := v1.Group("/trash")
		trash.Use(middleware.Auth(cfg.JWT))
		trash.Use(middleware.RequireStaff(staffCheck(cfg.Users)))
		handlers.NewTrashHandler(baseHandler, cfg.Addresses).RegisterRoutes(trash)
	}

	return router
}

// staffCheck loads the acting user's account and reports staff status.
func staffCheck(users *user.Manager) func(c *gin.Context) (bool, error) {
	return func(c *gin.Context) (bool, error) {
		actor := appctx.GetActor(c.Request.Context())
		if actor == nil {
			return false, nil
		}
		u, err := users.GetByID(c.Request.Context(), actor.UserID)
		if err != nil {
			return false, err
		}
		return u.IsStaff && !u.Deleted(), nil
	}
}
