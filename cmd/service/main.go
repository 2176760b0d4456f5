// Package main is the entry point for the service.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jsamuelsen/wisdom-quotes/internal/adapters/clients"
	"github.com/jsamuelsen/wisdom-quotes/internal/adapters/http"
	"github.com/jsamuelsen/wisdom-quotes/internal/adapters/http/handlers"
	"github.com/jsamuelsen/wisdom-quotes/internal/adapters/quotesource"
	"github.com/jsamuelsen/wisdom-quotes/internal/adapters/share"
	"github.com/jsamuelsen/wisdom-quotes/internal/adapters/storage"
	"github.com/jsamuelsen/wisdom-quotes/internal/app"
	"github.com/jsamuelsen/wisdom-quotes/internal/platform/config"
	"github.com/jsamuelsen/wisdom-quotes/internal/platform/logging"
	"github.com/jsamuelsen/wisdom-quotes/internal/platform/telemetry"
	"github.com/jsamuelsen/wisdom-quotes/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// closer is implemented by stores that hold a file handle.
type closer interface {
	Close() error
}

func run() error {
	ctx := context.Background()

	// 1. Determine profile from environment
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	// 2. Load and validate configuration (fail fast)
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 3. Initialize logging
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

	// 4. Initialize telemetry (noop if disabled)
	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(ctx); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	// 5. Create health registry
	healthRegistry := ports.NewHealthRegistry()

	// 6. Open the quote source, preference store and share target
	source, err := newQuoteSource(cfg, logger)
	if err != nil {
		return err
	}

	store, err := newStore(ctx, &cfg.Storage)
	if err != nil {
		return err
	}

	if c, ok := store.(closer); ok {
		defer func() {
			if closeErr := c.Close(); closeErr != nil {
				logger.Error("closing preference store", slog.Any("error", closeErr))
			}
		}()
	}

	webhook, err := newWebhook(cfg, logger)
	if err != nil {
		return err
	}

	clipboard := share.NewMemoryClipboard()

	// 7. Start the session: load quotes, restore preferences
	session := app.NewSession(app.SessionConfig{
		Source:          source,
		Store:           store,
		Sharer:          webhook,
		Clipboard:       clipboard,
		NotificationTTL: cfg.Notifications.TTL,
		Logger:          logger,
	})

	if err := session.Start(ctx); err != nil {
		return fmt.Errorf("starting session: %w", err)
	}

	dispatcher, err := app.NewDispatcher(session, prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("creating dispatcher: %w", err)
	}

	// 8. Register health checks
	checkers := []ports.HealthChecker{session, webhook}
	if hc, ok := store.(ports.HealthChecker); ok {
		checkers = append(checkers, hc)
	}

	if hc, ok := source.(ports.HealthChecker); ok {
		checkers = append(checkers, hc)
	}

	for _, hc := range checkers {
		if err := healthRegistry.Register(hc); err != nil {
			return fmt.Errorf("registering %s health check: %w", hc.Name(), err)
		}
	}

	// 9. Create handlers
	buildInfo := handlers.NewBuildInfo(Version, Commit, BuildTime)
	healthHandler := handlers.NewHealthHandler(healthRegistry, buildInfo, prometheus.DefaultGatherer)
	quoteHandler := handlers.NewQuoteHandler(session, dispatcher, clipboard)

	pageHandler, err := handlers.NewPageHandler(session, dispatcher)
	if err != nil {
		return fmt.Errorf("creating page handler: %w", err)
	}

	// 10. Create HTTP server
	server := http.New(&cfg.Server, logger)

	// 11. Setup router with all middleware and routes
	http.SetupRouter(server.Engine(), http.RouterConfig{
		Logger:         logger,
		ServiceName:    cfg.App.Name,
		HealthHandler:  healthHandler,
		PageHandler:    pageHandler,
		QuoteHandler:   quoteHandler,
		Timeout:        cfg.Server.RequestTimeout,
		MaxRequestSize: cfg.Server.MaxRequestSize,
	})

	// 12. Start server (non-blocking)
	serverErr := server.Start()

	// 13. Wait for shutdown signal
	return waitForShutdown(ctx, logger, server, serverErr, cfg.Server.ShutdownTimeout)
}

// newQuoteSource picks the embedded data set, a remote document or a
// local file from quotes.source.
func newQuoteSource(cfg *config.Config, logger *slog.Logger) (ports.QuoteSource, error) {
	switch {
	case cfg.Quotes.IsEmbeddedSource():
		return quotesource.NewEmbedded(), nil

	case cfg.Quotes.IsRemoteSource():
		client, err := clients.New(&clients.Config{
			BaseURL:     cfg.Quotes.Source,
			ServiceName: "quote-source",
			Timeout:     cfg.Client.Timeout,
			Retry:       cfg.Client.Retry,
			Circuit:     cfg.Client.CircuitBreaker,
			Logger:      logger,
		})
		if err != nil {
			return nil, fmt.Errorf("creating quote source client: %w", err)
		}

		return quotesource.NewHTTP(client, logger), nil

	default:
		return quotesource.NewFile(cfg.Quotes.Source), nil
	}
}

func newStore(ctx context.Context, cfg *config.StorageConfig) (ports.KeyValueStore, error) {
	if cfg.Driver == config.StorageDriverMemory {
		return storage.NewMemory(), nil
	}

	store, err := storage.OpenSQLite(ctx, cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening preference store: %w", err)
	}

	return store, nil
}

// newWebhook returns a webhook sharer. Without a URL the sharer is never
// available and sharing always uses the clipboard.
func newWebhook(cfg *config.Config, logger *slog.Logger) (*share.Webhook, error) {
	if cfg.Share.WebhookURL == "" {
		return share.NewWebhook(nil, logger), nil
	}

	client, err := share.NewWebhookClient(cfg.Share.WebhookURL, cfg.Client, logger)
	if err != nil {
		return nil, err
	}

	return share.NewWebhook(client, logger), nil
}

// waitForShutdown blocks until a shutdown signal is received or server error occurs.
// It then performs graceful shutdown of the HTTP server.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)

	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	logger.Info("initiating graceful shutdown",
		slog.Duration("timeout", shutdownTimeout),
	)

	// Stop accepting new requests, drain in-flight
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}
