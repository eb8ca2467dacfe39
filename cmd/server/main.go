// Package main is the entry point for the basekit API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"basekit/internal/core/apperror"
	"basekit/internal/core/entity"
	"basekit/internal/core/id"
	"basekit/internal/domain/address"
	"basekit/internal/domain/auth"
	"basekit/internal/domain/history"
	"basekit/internal/domain/lifecycle"
	"basekit/internal/domain/user"
	v1 "basekit/internal/infrastructure/http/v1"
	"basekit/internal/infrastructure/storage/postgres"
	"basekit/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting basekit server")

	// --- Database ---
	poolCfg := postgres.DefaultPoolConfig(mustEnv("DATABASE_URL"))
	if maxConns := getEnvInt("DB_MAX_CONNS", 0); maxConns > 0 {
		poolCfg.MaxConns = int32(maxConns)
	}

	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)

	// --- Repositories ---
	addressRepo := postgres.NewAddressRepo(txManager)
	userRepo := postgres.NewUserRepo(txManager)
	historyRepo, err := postgres.NewHistoryRepo(txManager)
	if err != nil {
		log.Fatalw("failed to create history repository", "error", err)
	}

	// --- Lifecycle engine over the per-type store dispatcher ---
	dispatcher := lifecycle.NewDispatcher()
	dispatcher.Register(address.TypeTag, lifecycle.StoreFuncs[*address.Address]{
		SaveFunc:   addressRepo.Save,
		RemoveFunc: func(ctx context.Context, a *address.Address) error { return addressRepo.HardDelete(ctx, a.ID) },
	})
	dispatcher.Register(user.TypeTag, lifecycle.StoreFuncs[*user.User]{
		SaveFunc:   userRepo.Save,
		RemoveFunc: func(ctx context.Context, u *user.User) error { return userRepo.HardDelete(ctx, u.ID) },
	})
	engine := lifecycle.NewEngine(dispatcher)

	// --- Generic association resolvers ---
	registry := entity.NewRegistry()
	registry.Register(address.TypeTag, func(ctx context.Context, objectID id.ID) (entity.SoftDeletable, error) {
		a, err := addressRepo.GetByID(ctx, objectID)
		if apperror.IsNotFound(err) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return a, nil
	})
	registry.Register(user.TypeTag, func(ctx context.Context, objectID id.ID) (entity.SoftDeletable, error) {
		u, err := userRepo.GetByID(ctx, objectID)
		if apperror.IsNotFound(err) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return u, nil
	})

	// --- Domain services ---
	recorder := history.NewRecorder(historyRepo)
	addressService := address.NewService(addressRepo, engine, recorder, txManager)
	userManager := user.NewManager(userRepo, engine)

	// --- JWT ---
	jwtSecret := getEnv("JWT_SECRET", "your-secret-key-change-in-production")
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig(jwtSecret))

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:      pool,
		Logger:    log,
		JWT:       jwtService,
		Users:     userManager,
		Addresses: addressService,
		History:   historyRepo,
		Registry:  registry,
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}
