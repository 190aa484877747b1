package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/specialistvlad/lootgraph/internal/publish"
)

// Config holds all the necessary configuration for an App instance to run.
// Environment variables provide defaults; CLI flags override them.
type Config struct {
	DataPaths         []string `env:"LOOTGRAPH_DATA" envSeparator:","`
	IgnoredContainers []string `env:"LOOTGRAPH_IGNORE_CONTAINERS" envSeparator:","`

	LogFormat       string `env:"LOOTGRAPH_LOG_FORMAT" envDefault:"text"`
	LogLevel        string `env:"LOOTGRAPH_LOG_LEVEL" envDefault:"info"`
	HealthcheckPort int    `env:"LOOTGRAPH_HEALTHCHECK_PORT" envDefault:"0"`

	SQLiteOut string `env:"LOOTGRAPH_SQLITE_OUT"`

	PublishURL       string        `env:"LOOTGRAPH_PUBLISH_URL"`
	PublishNamespace string        `env:"LOOTGRAPH_PUBLISH_NAMESPACE" envDefault:"/"`
	PublishTimeout   time.Duration `env:"LOOTGRAPH_PUBLISH_TIMEOUT" envDefault:"15s"`
}

// ConfigFromEnv reads the LOOTGRAPH_* environment variables.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// NewConfig validates cfg and returns a copy.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.DataPaths) == 0 {
		return nil, errors.New("DataPaths is a required configuration field and cannot be empty")
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat)
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, fmt.Errorf("invalid healthcheck port %d", cfg.HealthcheckPort)
	}
	if cfg.PublishURL != "" {
		if err := (publish.Config{URL: cfg.PublishURL}).Validate(); err != nil {
			return nil, err
		}
		if cfg.PublishTimeout <= 0 {
			return nil, fmt.Errorf("invalid publish timeout %s", cfg.PublishTimeout)
		}
	}
	return &cfg, nil
}
