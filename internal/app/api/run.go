package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	shopserver "github.com/Apurer/go-gin-shop-api/go"
	"github.com/Apurer/go-gin-shop-api/internal/app/bootstrap"
	"github.com/Apurer/go-gin-shop-api/internal/app/seed"
	orderworkflows "github.com/Apurer/go-gin-shop-api/internal/domains/orders/adapters/workflows"
	orderports "github.com/Apurer/go-gin-shop-api/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-shop-api/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-gin-shop-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-shop-api/internal/platform/postgres"
	platformtemporal "github.com/Apurer/go-gin-shop-api/internal/platform/temporal"
)

const serviceName = "shop-api"

// Run boots the shop HTTP API with observability, repositories, and workflows wired.
// It returns when ctx is cancelled and the server has drained.
func Run(ctx context.Context, cfg Config) error {
	instruments, shutdown, err := platformobservability.Init(ctx, platformobservability.ConfigFromEnv(serviceName))
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	repos, cleanupRepos, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanupRepos()
	services := bootstrap.NewServices(repos, instruments, bootstrap.Settings{DefaultPageLimit: cfg.DefaultPageLimit})

	if cfg.SeedSampleData {
		if err := seed.NewLoader(services.Members, services.Items, services.Orders, logger).Load(ctx); err != nil {
			return fmt.Errorf("failed to load sample data: %w", err)
		}
	}

	var placement orderports.WorkflowOrchestrator = orderworkflows.NewInlineOrderWorkflows(services.Orders)
	if cfg.TemporalDisabled {
		logger.Warn("Temporal disabled via TEMPORAL_DISABLED, placing orders inline")
	} else if temporalClient, err := platformtemporal.Dial(cfg.TemporalAddress, cfg.TemporalNamespace, "temporal-client", instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, placing orders inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		placement = orderworkflows.NewTemporalOrderWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	handlers := shopserver.ApiHandleFunctions{
		MemberAPI:      shopserver.NewMemberAPI(services.Members),
		OrderAPI:       shopserver.NewOrderAPI(services.Orders, services.Queries, placement),
		SimpleOrderAPI: shopserver.NewSimpleOrderAPI(services.Queries),
		ItemAPI:        shopserver.NewItemAPI(services.Items),
	}
	engine := gin.New()
	engine.Use(gin.Recovery(), otelgin.Middleware(serviceName))
	router := shopserver.NewRouterWithGinEngine(engine, handlers)

	return serve(ctx, &http.Server{Addr: cfg.Addr(), Handler: router, ReadHeaderTimeout: 10 * time.Second}, logger)
}

func serve(ctx context.Context, srv *http.Server, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("shop API listening", slog.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("shop API server exited", slog.String("addr", srv.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shop API shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

// buildRepositories prefers PostgreSQL and falls back to memory when no DSN is
// set or the database is unreachable.
func buildRepositories(ctx context.Context, cfg Config, logger *slog.Logger) (bootstrap.Repositories, func(), error) {
	db, cleanup := platformpostgres.Open(ctx, cfg.PostgresDSN, logger)
	if db == nil {
		return bootstrap.Memory(), cleanup, nil
	}
	if cfg.AutoMigrate {
		if err := migrations.Run(db.WithContext(ctx)); err != nil {
			cleanup()
			return bootstrap.Repositories{}, func() {}, fmt.Errorf("failed to migrate schema: %w", err)
		}
	}
	logger.Info("repositories configured with postgres", slog.Int("batchFetchSize", cfg.BatchFetchSize))
	return bootstrap.Postgres(db, cfg.BatchFetchSize), cleanup, nil
}
