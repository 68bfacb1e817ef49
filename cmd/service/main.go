// Package main is the entry point of the devotional API service.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jsamuelsen/devotional-service/internal/adapters/catalog"
	"github.com/jsamuelsen/devotional-service/internal/adapters/http"
	"github.com/jsamuelsen/devotional-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/devotional-service/internal/app"
	"github.com/jsamuelsen/devotional-service/internal/domain"
	"github.com/jsamuelsen/devotional-service/internal/platform/config"
	"github.com/jsamuelsen/devotional-service/internal/platform/logging"
	"github.com/jsamuelsen/devotional-service/internal/platform/metrics"
	"github.com/jsamuelsen/devotional-service/internal/platform/telemetry"
	"github.com/jsamuelsen/devotional-service/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// metricsNamespace prefixes every Prometheus series.
const metricsNamespace = "devotional"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// 1. Load and validate configuration (fail fast)
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 2. Logging
	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
	)

	// 3. Telemetry (noop if disabled)
	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
		Insecure:     cfg.Telemetry.Insecure,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(ctx); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	// 4. Load the catalog before accepting traffic
	source, err := catalog.NewSource(cfg.Catalog.Dir)
	if err != nil {
		return fmt.Errorf("opening catalog source: %w", err)
	}

	catalogService := app.NewCatalogService(app.CatalogServiceConfig{
		Source: source,
		Logger: logger,
	})

	if err := catalogService.Load(ctx); err != nil {
		return err
	}

	// 5. Metrics
	m := metrics.New(metricsNamespace)
	if err := recordCollectionSizes(ctx, catalogService, m); err != nil {
		return err
	}

	// 6. Health
	healthRegistry := ports.NewHealthRegistry()
	if err := healthRegistry.Register(catalogService); err != nil {
		return fmt.Errorf("registering catalog health check: %w", err)
	}

	// 7. HTTP
	buildInfo := handlers.NewBuildInfo(Version, Commit, BuildTime)
	server := http.New(&cfg.Server, logger)

	http.SetupRouter(server.Engine(), http.RouterConfig{
		Logger:            logger,
		ServiceName:       cfg.App.Name,
		CORS:              cfg.CORS,
		HealthHandler:     handlers.NewHealthHandler(healthRegistry, buildInfo, m.Handler()),
		DevotionalHandler: handlers.NewDevotionalHandler(catalogService, m),
		Metrics:           m,
		Timeout:           http.DefaultRequestTimeout,
	})

	serverErr, err := server.Start()
	if err != nil {
		return err
	}

	logger.Info("devotional API listening", slog.String("url", "http://"+server.Addr()+"/api"))

	return waitForShutdown(ctx, logger, server, serverErr, cfg.Server.ShutdownTimeout)
}

// recordCollectionSizes publishes the loaded collection sizes as gauges.
func recordCollectionSizes(ctx context.Context, catalogService *app.CatalogService, m *metrics.Metrics) error {
	collections, err := catalogService.Collections(ctx, domain.QueryFilters{})
	if err != nil {
		return fmt.Errorf("reading catalog: %w", err)
	}

	for _, name := range domain.CollectionNames() {
		m.SetCollectionSize(string(name), len(collections.Get(name)))
	}

	return nil
}

// waitForShutdown blocks until a shutdown signal or a server error, then
// drains in-flight requests.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-serverErr:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}

		return nil

	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	logger.Info("initiating graceful shutdown", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}
