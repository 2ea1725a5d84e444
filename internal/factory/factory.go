// Package factory wires the connector's components together.
package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/atlashelp/atlascore-connector/internal/config"
	"github.com/atlashelp/atlascore-connector/internal/dependencies/clock"
	"github.com/atlashelp/atlascore-connector/internal/dependencies/random"
	"github.com/atlashelp/atlascore-connector/internal/host"
	"github.com/atlashelp/atlascore-connector/internal/placeholder"
	"github.com/atlashelp/atlascore-connector/internal/services/command"
	"github.com/atlashelp/atlascore-connector/internal/services/profile"
	"github.com/atlashelp/atlascore-connector/internal/services/stats"
	"github.com/atlashelp/atlascore-connector/internal/services/verification"
	"github.com/atlashelp/atlascore-connector/internal/storage"
	"github.com/atlashelp/atlascore-connector/internal/storage/memory"
	redisstorage "github.com/atlashelp/atlascore-connector/internal/storage/redis"
)

// Storage backend constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// External collaborators
	Host     host.Host
	Resolver placeholder.Resolver

	// Infrastructure
	Bridge   *host.Bridge
	Registry *placeholder.Registry
	Clock    clock.Clock
	Random   random.Random

	// Services
	ProfileClient *profile.Client
	Profiles      *profile.Service
	Verification  *verification.Service
	Commands      *command.Service
	Collector     *stats.Collector
	Reporter      *stats.Reporter
}

// Config holds configuration for the application factory
type Config struct {
	// App is the loaded connector configuration
	App config.Config
	// Host is the simulation binding (required)
	Host host.Host
	// Resolver is the placeholder resolution collaborator (required)
	Resolver placeholder.Resolver
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	if cfg.Host == nil {
		return nil, errors.New("host binding is required")
	}
	if cfg.Resolver == nil {
		return nil, errors.New("placeholder resolver is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create the profile store client based on backend type
	var client *profile.Client
	backend := cfg.App.Store.Backend
	if backend == "" {
		backend = StorageTypeMemory
	}

	switch backend {
	case StorageTypeMemory:
		client = profile.NewClientWithStore(memory.New(), logger)
	case StorageTypeRedis:
		if cfg.App.Store.RedisURL == "" {
			return nil, errors.New("store.redis_url required when backend is redis")
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.App.Store.RedisURL
		redisCfg.ProfileTTL = cfg.App.Store.ProfileTTL.Std()
		client = profile.NewClient(logger)
		client.Init(func(ctx context.Context) (storage.ProfileStore, error) {
			return redisstorage.New(redisCfg)
		})
	default:
		return nil, errors.New("invalid store backend: must be 'memory' or 'redis'")
	}

	return newWithDependencies(cfg, client, clock.New(), random.New(), logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(cfg Config, client *profile.Client, clk clock.Clock, rnd random.Random, logger *slog.Logger) *App {
	bridge := host.NewBridge(host.BridgeConfig{
		QueueSize:     cfg.App.Bridge.QueueSize,
		SubmitTimeout: cfg.App.Bridge.SubmitTimeout.Std(),
	}, logger)

	registry := buildRegistry(cfg.App.Capabilities)

	collector := stats.NewCollector(cfg.Host)

	profiles := profile.NewService(client, bridge, cfg.Host, cfg.Resolver, registry, clk, logger)
	verify := verification.New(bridge, cfg.Host, rnd, clk, verification.Config{
		CodeTTL: cfg.App.Verification.CodeTTL.Std(),
	}, logger)
	commands := command.New(bridge, cfg.Host, cfg.Resolver, collector, cfg.App.DefaultWorld, logger)
	reporter := stats.NewReporter(collector, bridge, stats.ReporterConfig{
		URL:      cfg.App.Stats.URL,
		Secret:   cfg.App.Stats.Secret,
		Interval: cfg.App.Stats.Interval.Std(),
	}, logger)

	return &App{
		Host:          cfg.Host,
		Resolver:      cfg.Resolver,
		Bridge:        bridge,
		Registry:      registry,
		Clock:         clk,
		Random:        rnd,
		ProfileClient: client,
		Profiles:      profiles,
		Verification:  verify,
		Commands:      commands,
		Collector:     collector,
		Reporter:      reporter,
	}
}

// buildRegistry registers the core statistics provider plus whichever
// optional capabilities the configuration declares present.
func buildRegistry(capabilities []string) *placeholder.Registry {
	registry := placeholder.NewRegistry()
	registry.Register("statistics", placeholder.CoreTokens...)
	for _, name := range capabilities {
		switch name {
		case placeholder.CapabilityFabled:
			registry.Register(placeholder.CapabilityFabled, placeholder.FabledTokens...)
		case placeholder.CapabilitySkills:
			registry.Register(placeholder.CapabilitySkills, placeholder.SkillsTokens...)
		case placeholder.CapabilityEconomy:
			registry.Register(placeholder.CapabilityEconomy)
		}
	}
	return registry
}
