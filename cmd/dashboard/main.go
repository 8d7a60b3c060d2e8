package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/stockdeck/dashboard/api/routes"
	"github.com/stockdeck/dashboard/api/views"
	"github.com/stockdeck/dashboard/internal/backend"
	"github.com/stockdeck/dashboard/internal/catalog"
	"github.com/stockdeck/dashboard/internal/distributors"
	"github.com/stockdeck/dashboard/internal/exports"
	"github.com/stockdeck/dashboard/internal/queries"
	"github.com/stockdeck/dashboard/pkg/config"
	"github.com/stockdeck/dashboard/pkg/env"
	"github.com/stockdeck/dashboard/pkg/locks"
	"github.com/stockdeck/dashboard/pkg/logger"
	"github.com/stockdeck/dashboard/pkg/metrics"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "dashboard"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "dashboard",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	backendMetrics := metrics.NewBackendMetrics(registry)

	client, err := backend.NewClient(cfg.Backend, backendMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create backend client", err)
		os.Exit(1)
	}

	renderer, err := views.NewRenderer(logg)
	if err != nil {
		logg.Error(context.Background(), "failed to parse templates", err)
		os.Exit(1)
	}

	keyed := locks.NewKeyed()

	catalogStore := catalog.NewStore()
	catalogService, err := catalog.NewService(client, catalogStore, keyed, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	distributorStore := distributors.NewStore()
	distributorService, err := distributors.NewService(client, distributorStore, keyed, logg, cfg.Refresh.FanOutLimit)
	if err != nil {
		logg.Error(context.Background(), "failed to create distributor service", err)
		os.Exit(1)
	}

	queryStore := queries.NewStore()
	queryRunner, err := queries.NewRunner(client, queryStore, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create query runner", err)
		os.Exit(1)
	}

	exportStore := exports.NewStore()
	exportService, err := exports.NewService(client, exportStore, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create export service", err)
		os.Exit(1)
	}

	// Prime the page snapshots so the first render is not empty. A backend
	// that is down leaves an error status line, not a dead server.
	if err := catalogService.RefreshAll(context.Background()); err != nil {
		logg.Warn(context.Background(), "initial inventory load failed")
	}
	if err := distributorService.RefreshAll(context.Background()); err != nil {
		logg.Warn(context.Background(), "initial distributor load failed")
	}

	addr := ":" + env.Get("PORT", cfg.App.Port)
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"backend": cfg.Backend.BaseURL,
	})
	logg.Info(ctx, "starting dashboard server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg, logg, renderer, registry,
			catalogStore, catalogService,
			distributorStore, distributorService,
			queryStore, queryRunner,
			exportStore, exportService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "dashboard server stopped unexpectedly", err)
		os.Exit(1)
	}
}
