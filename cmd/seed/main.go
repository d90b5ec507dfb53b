package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-account-service/config"
	"github.com/oksasatya/go-account-service/internal/application"
	"github.com/oksasatya/go-account-service/internal/bootstrap"
	"github.com/oksasatya/go-account-service/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	store, err := bootstrap.OpenStore(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer store.Close()

	svc := application.NewAccountService(store.Repo, helpers.NewBcryptHasher(cfg.BcryptCost), nil, nil, logger)

	username, password := "demoUser", "password123"
	u, err := svc.Register(ctx, application.RegisterRequest{
		Username:  username,
		FirstName: "Demo",
		LastName:  "User",
		Password:  password,
	})
	switch {
	case errors.Is(err, application.ErrDuplicateUsername):
		fmt.Printf("user %s already exists, nothing to do\n", username)
	case err != nil:
		log.Fatalf("failed to seed user: %v", err)
	default:
		fmt.Printf("seeded user: id=%d username=%s password=%s\n", u.ID, u.Username, password)
	}
}
