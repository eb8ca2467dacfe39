// Package main seeds demo data: a staff account, an owned address and a
// first history entry. Run with -purge to hard-delete previous fixtures.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	appctx "basekit/internal/core/context"
	"basekit/internal/core/entity"
	"basekit/internal/domain"
	"basekit/internal/domain/address"
	"basekit/internal/domain/history"
	"basekit/internal/domain/lifecycle"
	"basekit/internal/domain/user"
	"basekit/internal/infrastructure/storage/postgres"
	"basekit/pkg/logger"
)

const (
	seedUsername = "admin"
	seedEmail    = "admin@example.com"
	seedPassword = "change-me-please"
)

func main() {
	purge := flag.Bool("purge", false, "hard-delete previously seeded fixtures")
	flag.Parse()

	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(mustEnv("DATABASE_URL")))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)
	addressRepo := postgres.NewAddressRepo(txManager)
	userRepo := postgres.NewUserRepo(txManager)
	historyRepo, err := postgres.NewHistoryRepo(txManager)
	if err != nil {
		log.Fatalw("failed to create history repository", "error", err)
	}

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

	recorder := history.NewRecorder(historyRepo)
	addressService := address.NewService(addressRepo, engine, recorder, txManager)
	users := user.NewManager(userRepo, engine)

	if *purge {
		purgeFixtures(ctx, log, users, addressService)
		return
	}

	// --- Staff account ---
	admin, err := users.Register(ctx, seedUsername, seedEmail, seedPassword)
	if err != nil {
		log.Fatalw("failed to create seed user", "error", err)
	}
	admin.IsStaff = true
	if err := userRepo.Save(ctx, admin); err != nil {
		log.Fatalw("failed to promote seed user", "error", err)
	}
	log.Infow("seed user created", "id", admin.ID, "username", admin.Username)

	// Attribute seeded history to the admin account.
	ctx = appctx.WithActor(ctx, &appctx.Actor{
		UserID:        admin.ID,
		Username:      admin.Username,
		Email:         admin.Email,
		Authenticated: true,
	})

	// --- Owned address with one recorded change ---
	a := address.New(admin)
	cep := "01310-100"
	logradouro := "Avenida Paulista"
	numero := "1578"
	localidade := "São Paulo"
	uf := address.UF("SP")
	a.CEP = &cep
	a.Logradouro = &logradouro
	a.Numero = &numero
	a.Localidade = &localidade
	a.UF = &uf

	if err := addressService.Create(ctx, a); err != nil {
		log.Fatalw("failed to create seed address", "error", err)
	}
	log.Infow("seed address created", "id", a.ID, "address", a.FullAddress())

	bairro := "Bela Vista"
	a.Bairro = &bairro
	if err := addressService.Save(ctx, a); err != nil {
		log.Fatalw("failed to update seed address", "error", err)
	}
	log.Info("seed history entry recorded")
}

// purgeFixtures physically removes seeded rows. History stays; it is
// append-only and hard delete bypasses it anyway.
func purgeFixtures(ctx context.Context, log *logger.Logger, users *user.Manager, addresses *address.Service) {
	admin, err := users.Authenticate(ctx, seedUsername, seedPassword)
	if err != nil {
		log.Fatalw("seed user not found, nothing to purge", "error", err)
	}

	filter := domain.DefaultListFilter()
	filter.Limit = 200
	result, err := addresses.ListByOwner(ctx, entity.NewRef(admin), filter)
	if err != nil {
		log.Fatalw("failed to list seed addresses", "error", err)
	}
	for _, a := range result.Items {
		if err := addresses.HardDelete(ctx, a); err != nil {
			log.Fatalw("failed to purge seed address", "id", a.ID, "error", err)
		}
	}

	if err := users.Purge(ctx, admin); err != nil {
		log.Fatalw("failed to purge seed user", "error", err)
	}
	log.Info("seed fixtures purged")
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
