// Package config loads intel-watcher configuration from a YAML file with
// environment variable overrides, following the north-cloud service pattern.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/jonesrussell/north-cloud/intel-watcher/internal/domain"
)

// Default configuration values.
const (
	defaultServiceName  = "intel-watcher"
	defaultStorageKind  = "file"
	defaultDataDir      = "data"
	defaultDigestDir    = "digests"
	defaultFetchTimeout = 30
)

// ErrUnknownStorageKind is returned when the storage kind is not supported.
var ErrUnknownStorageKind = errors.New("unknown storage kind")

// Config holds all configuration for the intel-watcher service.
type Config struct {
	Service ServiceConfig  `yaml:"service"`
	Storage StorageConfig  `yaml:"storage"`
	Digest  DigestConfig   `yaml:"digest"`
	Logging LoggingConfig  `yaml:"logging"`
	Agents  []domain.Agent `yaml:"agents"`
}

// ServiceConfig holds service-level settings.
type ServiceConfig struct {
	Name string `yaml:"name"`
	// FetchTimeoutSec bounds a single source fetch. It protects the
	// sequential collector from a feed that never answers.
	FetchTimeoutSec int  `yaml:"fetch_timeout_sec" env:"WATCHER_FETCH_TIMEOUT_SEC"`
	Debug           bool `yaml:"debug"             env:"APP_DEBUG"`
}

// StorageConfig selects and configures the snapshot store backend.
type StorageConfig struct {
	// Kind is "file" or "sqlite".
	Kind string `yaml:"kind" env:"WATCHER_STORAGE_KIND"`
	// DataDir is the root directory for the file backend.
	DataDir string `yaml:"data_dir" env:"WATCHER_DATA_DIR"`
	// SQLitePath is the database file for the sqlite backend.
	SQLitePath string `yaml:"sqlite_path" env:"WATCHER_SQLITE_PATH"`
}

// DigestConfig configures the markdown digest sink.
type DigestConfig struct {
	Dir string `yaml:"dir" env:"WATCHER_DIGEST_DIR"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL"`
}

// SetDefaults applies default values to unset fields.
func (c *Config) SetDefaults() {
	if c.Service.Name == "" {
		c.Service.Name = defaultServiceName
	}
	if c.Service.FetchTimeoutSec <= 0 {
		c.Service.FetchTimeoutSec = defaultFetchTimeout
	}
	if c.Storage.Kind == "" {
		c.Storage.Kind = defaultStorageKind
	}
	if c.Storage.DataDir == "" {
		c.Storage.DataDir = defaultDataDir
	}
	if c.Digest.Dir == "" {
		c.Digest.Dir = defaultDigestDir
	}
	for i := range c.Agents {
		c.Agents[i].Options.SetDefaults()
	}
}

// Validate checks the configuration once at startup.
func (c *Config) Validate() error {
	switch c.Storage.Kind {
	case "file", "sqlite":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStorageKind, c.Storage.Kind)
	}
	if c.Storage.Kind == "sqlite" && c.Storage.SQLitePath == "" {
		return errors.New("storage.sqlite_path required for sqlite storage")
	}
	seen := make(map[string]bool, len(c.Agents))
	for i := range c.Agents {
		if err := c.Agents[i].Validate(); err != nil {
			return fmt.Errorf("validate agent: %w", err)
		}
		if seen[c.Agents[i].Slug] {
			return fmt.Errorf("duplicate agent slug %q", c.Agents[i].Slug)
		}
		seen[c.Agents[i].Slug] = true
	}
	return nil
}

// Load reads the YAML config file at path and applies environment
// overrides. A missing file is not an error: the service falls back to
// defaults plus the built-in agent registry. Environment variables are
// loaded from .env first when present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if unmarshalErr := yaml.Unmarshal(data, cfg); unmarshalErr != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, unmarshalErr)
		}
	case os.IsNotExist(err):
		// Defaults only.
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnvOverrides(cfg)
	cfg.SetDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies the supported environment variables on top of
// file values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("WATCHER_FETCH_TIMEOUT_SEC"); v != "" {
		if sec, err := strconv.Atoi(v); err == nil && sec > 0 {
			cfg.Service.FetchTimeoutSec = sec
		}
	}
	if v := os.Getenv("WATCHER_STORAGE_KIND"); v != "" {
		cfg.Storage.Kind = v
	}
	if v := os.Getenv("WATCHER_DATA_DIR"); v != "" {
		cfg.Storage.DataDir = v
	}
	if v := os.Getenv("WATCHER_SQLITE_PATH"); v != "" {
		cfg.Storage.SQLitePath = v
	}
	if v := os.Getenv("WATCHER_DIGEST_DIR"); v != "" {
		cfg.Digest.Dir = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("APP_DEBUG"); v == "true" || v == "1" {
		cfg.Service.Debug = true
	}
}
