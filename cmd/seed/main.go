package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/lenddesk/lenddesk-backend/internal/items"
	"github.com/lenddesk/lenddesk-backend/internal/storage/jsonstore"
	"github.com/lenddesk/lenddesk-backend/internal/users"
	"github.com/lenddesk/lenddesk-backend/pkg/config"
	"github.com/lenddesk/lenddesk-backend/pkg/logger"
)

// Seeds the JSON record store with a demo borrower and item so the API can
// be exercised right after a fresh checkout.
func main() {
	logg := logger.New(logger.Options{ServiceName: "seed"})
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		logg.Warn(ctx, ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	store, err := jsonstore.Open(ctx, cfg.Store.Path, logg)
	if err != nil {
		logg.Error(ctx, "failed to open record store", err)
		os.Exit(1)
	}

	itemService, err := items.NewService(items.ServiceParams{Store: store})
	if err != nil {
		logg.Error(ctx, "failed to create item service", err)
		os.Exit(1)
	}
	userService, err := users.NewService(users.ServiceParams{Store: store})
	if err != nil {
		logg.Error(ctx, "failed to create user service", err)
		os.Exit(1)
	}

	item, err := itemService.Create(ctx, "Demo Projector", "INV-0001")
	if err != nil {
		logg.Error(ctx, "failed to seed item", err)
		os.Exit(1)
	}
	user, err := userService.Create(ctx, "Demo Borrower")
	if err != nil {
		logg.Error(ctx, "failed to seed user", err)
		os.Exit(1)
	}

	ctx = logg.WithItemID(ctx, item.ID.String())
	ctx = logg.WithUserID(ctx, user.ID.String())
	logg.Info(ctx, "seeded demo records")
}
