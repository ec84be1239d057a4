package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/Apurer/go-gin-shop-api/internal/app/api"
	"github.com/Apurer/go-gin-shop-api/internal/app/bootstrap"
	"github.com/Apurer/go-gin-shop-api/internal/app/seed"
	"github.com/Apurer/go-gin-shop-api/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-gin-shop-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-shop-api/internal/platform/postgres"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	db, cleanup := platformpostgres.Open(ctx, cfg.PostgresDSN, logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot seed")
	}
	if err := migrations.Run(db.WithContext(ctx)); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}

	instruments := platformobservability.Discard()
	instruments.Logger = logger
	services := bootstrap.NewServices(bootstrap.Postgres(db, cfg.BatchFetchSize), instruments, bootstrap.Settings{})
	if err := seed.NewLoader(services.Members, services.Items, services.Orders, logger).Load(ctx); err != nil {
		log.Fatalf("failed to load sample data: %v", err)
	}
	logger.Info("sample data loaded")
}
