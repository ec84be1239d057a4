package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/go-gin-shop-api/internal/app/api"
	"github.com/Apurer/go-gin-shop-api/internal/app/bootstrap"
	"github.com/Apurer/go-gin-shop-api/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-gin-shop-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-shop-api/internal/platform/postgres"
	platformtemporal "github.com/Apurer/go-gin-shop-api/internal/platform/temporal"
	orderactivities "github.com/Apurer/go-gin-shop-api/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/Apurer/go-gin-shop-api/internal/platform/temporal/workflows/orders"
)

func main() {
	ctx := context.Background()
	const serviceName = "shop-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, platformobservability.ConfigFromEnv(serviceName))
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cfg, err := api.LoadConfig()
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos := bootstrap.Memory()
	db, cleanupDB := platformpostgres.Open(ctx, cfg.PostgresDSN, logger)
	defer cleanupDB()
	if db != nil {
		if cfg.AutoMigrate {
			if err := migrations.Run(db.WithContext(ctx)); err != nil {
				logger.Error("failed to migrate schema", slog.String("error", err.Error()))
				os.Exit(1)
			}
		}
		repos = bootstrap.Postgres(db, cfg.BatchFetchSize)
		logger.Info("worker repositories configured with postgres")
	}
	services := bootstrap.NewServices(repos, instruments, bootstrap.Settings{DefaultPageLimit: cfg.DefaultPageLimit})
	activities := orderactivities.NewActivities(services.Orders)

	temporalClient, err := platformtemporal.Dial(cfg.TemporalAddress, cfg.TemporalNamespace, "temporal-worker", instruments)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.OrderPlacementTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.OrderPlacementWorkflow, workflow.RegisterOptions{Name: orderworkflows.OrderPlacementWorkflowName})
	w.RegisterActivityWithOptions(activities.PlaceOrder, activity.RegisterOptions{Name: orderactivities.PlaceOrderActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.OrderPlacementTaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
