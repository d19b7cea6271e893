package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	// Root is the project root all references resolve against.
	// Empty means discover it from the enclosing git repository.
	Root       string           `yaml:"root,omitempty"`
	Server     ServerConfig     `yaml:"server"`
	Cache      CacheConfig      `yaml:"cache"`
	Events     EventsConfig     `yaml:"events"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Listen       string `yaml:"listen"`
	LinkPrefix   string `yaml:"link_prefix,omitempty"`
	ReadTimeout  string `yaml:"read_timeout,omitempty"`
	WriteTimeout string `yaml:"write_timeout,omitempty"`
}

// CacheConfig configures classification caching.
type CacheConfig struct {
	// Path of the SQLite cache file; empty keeps the cache in memory only.
	Path string `yaml:"path,omitempty"`
	// TTL after which persisted classifications are pruned.
	TTL string `yaml:"ttl,omitempty"`
	// PruneInterval between janitor runs.
	PruneInterval string `yaml:"prune_interval,omitempty"`
}

// EventsConfig configures dead-reference event publishing.
type EventsConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url,omitempty"`
	Subject string `yaml:"subject,omitempty"`
}

// MonitoringConfig configures health and metrics endpoints.
type MonitoringConfig struct {
	Health  MonitoringHealth  `yaml:"health"`
	Metrics MonitoringMetrics `yaml:"metrics"`
}

type MonitoringHealth struct {
	Path string `yaml:"path,omitempty"`
}

type MonitoringMetrics struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path,omitempty"`
}

// Load loads configuration from the specified file. A .env file in the working
// directory is loaded first, and ${VAR} references in the YAML are expanded
// from the environment.
func Load(configPath string) (*Config, error) {
	// Missing .env is fine; only report real load failures.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Note: .env file couldn't be loaded: %v\n", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns a configuration with all defaults applied.
func Default() *Config {
	cfg := &Config{}
	cfg.Normalize()
	return cfg
}

// Normalize fills in defaults for unset fields.
func (c *Config) Normalize() {
	if c.Server.Listen == "" {
		c.Server.Listen = ":7078"
	}
	if c.Server.LinkPrefix == "" {
		c.Server.LinkPrefix = "/browse"
	}
	if c.Server.ReadTimeout == "" {
		c.Server.ReadTimeout = "10s"
	}
	if c.Server.WriteTimeout == "" {
		c.Server.WriteTimeout = "30s"
	}
	if c.Cache.TTL == "" {
		c.Cache.TTL = "168h"
	}
	if c.Cache.PruneInterval == "" {
		c.Cache.PruneInterval = "1h"
	}
	if c.Events.Enabled && c.Events.Subject == "" {
		c.Events.Subject = "reportlink.dead_refs"
	}
	if c.Monitoring.Health.Path == "" {
		c.Monitoring.Health.Path = "/healthz"
	}
	if c.Monitoring.Metrics.Path == "" {
		c.Monitoring.Metrics.Path = "/metrics"
	}
}

// Validate checks the configuration for startup errors.
func (c *Config) Validate() error {
	if c.Root != "" {
		info, err := os.Stat(c.Root)
		if err != nil {
			return fmt.Errorf("root %q: %w", c.Root, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("root %q is not a directory", c.Root)
		}
	}
	for name, value := range map[string]string{
		"server.read_timeout":  c.Server.ReadTimeout,
		"server.write_timeout": c.Server.WriteTimeout,
		"cache.ttl":            c.Cache.TTL,
		"cache.prune_interval": c.Cache.PruneInterval,
	} {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("%s %q: %w", name, value, err)
		}
	}
	if c.Events.Enabled && c.Events.URL == "" {
		return fmt.Errorf("events.url is required when events are enabled")
	}
	return nil
}

// Duration parses a validated duration field, falling back when unparsable.
func Duration(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
