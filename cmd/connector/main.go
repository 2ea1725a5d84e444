package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/atlashelp/atlascore-connector/internal/api"
	"github.com/atlashelp/atlascore-connector/internal/config"
	"github.com/atlashelp/atlascore-connector/internal/factory"
	"github.com/atlashelp/atlascore-connector/internal/host/hosttest"
	"github.com/atlashelp/atlascore-connector/internal/placeholder"
)

// Standalone mode runs the full gateway against an in-memory host, which
// is useful for developing the web backend against a live connector. Real
// deployments embed the connector and hand factory.New their own Host and
// Resolver bindings.
func main() {
	configPath := flag.String("config", configPathDefault(), "path to the connector config file")
	flag.Parse()

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Local .env overrides are optional
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if cfg.Web.Secret == "" {
		logger.Error("web.secret (or ATLAS_WEB_SECRET) is required")
		os.Exit(1)
	}

	app, err := factory.New(factory.Config{
		App:      cfg,
		Host:     hosttest.New(100),
		Resolver: placeholder.Static{},
		Logger:   logger,
	})
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Bridge pump stands in for the host thread
	bridgeStopped := make(chan struct{})
	go func() {
		defer close(bridgeStopped)
		app.Bridge.Run(ctx)
	}()

	// Push stats to the web backend only when a collector is configured
	if cfg.Stats.URL != "" {
		go app.Reporter.Run(ctx)
	}

	router := api.NewRouter(api.RouterConfig{
		Logger:       logger,
		Secret:       cfg.Web.Secret,
		Commands:     app.Commands,
		Profiles:     app.Profiles,
		Verification: app.Verification,
		Collector:    app.Collector,
		Bridge:       app.Bridge,
	})

	server := api.NewServer(router, cfg.Web, logger)

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("connector started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	// Drain pending work before exit: stop the pump, then flush saves.
	// Cancel explicitly so the drain cannot wait on a pump that was
	// never told to stop.
	cancel()
	<-bridgeStopped
	app.ProfileClient.Flush()

	logger.Info("connector stopped")
}

func configPathDefault() string {
	if path := os.Getenv("ATLAS_CONFIG"); path != "" {
		return path
	}
	return "config.yml"
}
