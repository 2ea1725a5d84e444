// Package config loads the connector configuration from a YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from YAML strings like "5m".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the duration as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// WebConfig configures the HTTP gateway
type WebConfig struct {
	Port int `yaml:"port"`
	// Secret is the static bearer token the web backend must present.
	// An empty secret disables the gateway entirely.
	Secret string `yaml:"secret"`
}

// StoreConfig configures the remote profile store
type StoreConfig struct {
	// Backend selects "memory" or "redis"
	Backend string `yaml:"backend"`
	// RedisURL is required when Backend is "redis"
	RedisURL string `yaml:"redis_url"`
	// ProfileTTL bounds profile document lifetime; empty means no expiry
	ProfileTTL Duration `yaml:"profile_ttl"`
}

// StatsConfig configures the telemetry reporter
type StatsConfig struct {
	URL      string   `yaml:"url"`
	Secret   string   `yaml:"secret"`
	Interval Duration `yaml:"interval"`
}

// VerificationConfig configures the code handshake
type VerificationConfig struct {
	CodeTTL Duration `yaml:"code_ttl"`
}

// BridgeConfig tunes the host task bridge
type BridgeConfig struct {
	QueueSize     int      `yaml:"queue_size"`
	SubmitTimeout Duration `yaml:"submit_timeout"`
}

// Config is the full connector configuration
type Config struct {
	Web          WebConfig          `yaml:"web"`
	Store        StoreConfig        `yaml:"store"`
	Stats        StatsConfig        `yaml:"stats"`
	Verification VerificationConfig `yaml:"verification"`
	Bridge       BridgeConfig       `yaml:"bridge"`

	// DefaultWorld is substituted for {world} when the target player
	// is offline
	DefaultWorld string `yaml:"default_world"`

	// Capabilities lists the optional stat providers present on this
	// server (fabled, auraskills, economy)
	Capabilities []string `yaml:"capabilities"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Web: WebConfig{Port: 4567},
		Store: StoreConfig{
			Backend: "memory",
		},
		Stats: StatsConfig{
			Interval: Duration(5 * time.Minute),
		},
		Verification: VerificationConfig{
			CodeTTL: Duration(5 * time.Minute),
		},
		Bridge: BridgeConfig{
			QueueSize:     64,
			SubmitTimeout: Duration(5 * time.Second),
		},
		DefaultWorld: "world",
	}
}

// Load reads the config file at path, falling back to defaults when the
// path is empty or missing, then applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("read config: %w", err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

// applyEnv layers environment variables over the file values. Secrets in
// particular are expected to arrive this way in deployments.
func applyEnv(cfg *Config) {
	if v := os.Getenv("ATLAS_WEB_SECRET"); v != "" {
		cfg.Web.Secret = v
	}
	if v := os.Getenv("ATLAS_STORE_BACKEND"); v != "" {
		cfg.Store.Backend = v
	}
	if v := os.Getenv("ATLAS_REDIS_URL"); v != "" {
		cfg.Store.RedisURL = v
	}
	if v := os.Getenv("ATLAS_STATS_URL"); v != "" {
		cfg.Stats.URL = v
	}
	if v := os.Getenv("ATLAS_STATS_SECRET"); v != "" {
		cfg.Stats.Secret = v
	}
}
