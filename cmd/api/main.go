package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/lenddesk/lenddesk-backend/api/routes"
	"github.com/lenddesk/lenddesk-backend/internal/items"
	"github.com/lenddesk/lenddesk-backend/internal/loans"
	"github.com/lenddesk/lenddesk-backend/internal/storage"
	"github.com/lenddesk/lenddesk-backend/internal/storage/dbstore"
	"github.com/lenddesk/lenddesk-backend/internal/storage/jsonstore"
	"github.com/lenddesk/lenddesk-backend/internal/users"
	"github.com/lenddesk/lenddesk-backend/pkg/config"
	"github.com/lenddesk/lenddesk-backend/pkg/db"
	"github.com/lenddesk/lenddesk-backend/pkg/logger"
	"github.com/lenddesk/lenddesk-backend/pkg/metrics"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	store, err := openStore(context.Background(), cfg, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to open record store", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logg.Error(context.Background(), "error closing record store", err)
		}
	}()

	loanMetrics := metrics.NewLoanMetrics(prometheus.DefaultRegisterer)

	loanService, err := loans.NewService(loans.ServiceParams{
		Store:   store,
		Logger:  logg,
		Metrics: loanMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create loan service", err)
		os.Exit(1)
	}

	itemService, err := items.NewService(items.ServiceParams{Store: store})
	if err != nil {
		logg.Error(context.Background(), "failed to create item service", err)
		os.Exit(1)
	}

	userService, err := users.NewService(users.ServiceParams{Store: store})
	if err != nil {
		logg.Error(context.Background(), "failed to create user service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"backend": cfg.Store.Backend,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Logger: logg,
			Store:  store,
			Loans:  loanService,
			Items:  itemService,
			Users:  userService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

// openStore selects the record store backend from configuration. The JSON
// document store is the default; "db" bootstraps the GORM-backed store.
func openStore(ctx context.Context, cfg *config.Config, logg *logger.Logger) (storage.Store, error) {
	if cfg.Store.Backend == config.StoreBackendDB {
		client, err := db.New(ctx, cfg.DB, logg)
		if err != nil {
			return nil, err
		}
		store, err := dbstore.New(client)
		if err != nil {
			return nil, err
		}
		if cfg.DB.AutoMigrate {
			if err := store.AutoMigrate(ctx); err != nil {
				return nil, err
			}
		}
		return store, nil
	}
	return jsonstore.Open(ctx, cfg.Store.Path, logg)
}
