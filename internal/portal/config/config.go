package config

import (
	"time"

	"ratemynus-portal/pkg/config"
)

// Catalog holds the configuration for the upstream review API.
type Catalog struct {
	BaseURL             string        `mapstructure:"base_url"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`

	// Circuit breaker
	BreakerMaxFailures uint32        `mapstructure:"breaker_max_failures"`
	BreakerOpenTimeout time.Duration `mapstructure:"breaker_open_timeout"`
}

// Search holds the typeahead configuration.
type Search struct {
	Debounce       time.Duration `mapstructure:"debounce"`
	MinQueryLength int           `mapstructure:"min_query_length"`
}

// Config holds the full configuration for the portal service.
type Config struct {
	App     config.App    `mapstructure:"app"`
	Logger  config.Logger `mapstructure:"logger"`
	API     config.API    `mapstructure:"api"`
	Catalog Catalog       `mapstructure:"catalog"`
	Search  Search        `mapstructure:"search"`
}

// Load loads the portal configuration from the given path and fills in
// defaults for anything left unset.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.API.Port == 0 {
		c.API.Port = 3000
	}
	if c.Catalog.BaseURL == "" {
		c.Catalog.BaseURL = "http://localhost:8000"
	}
	if c.Catalog.Timeout == 0 {
		c.Catalog.Timeout = 10 * time.Second
	}
	if c.Catalog.MaxRequestPerMinute == 0 {
		c.Catalog.MaxRequestPerMinute = 600
	}
	if c.Catalog.BreakerMaxFailures == 0 {
		c.Catalog.BreakerMaxFailures = 5
	}
	if c.Catalog.BreakerOpenTimeout == 0 {
		c.Catalog.BreakerOpenTimeout = 30 * time.Second
	}
	if c.Search.Debounce == 0 {
		c.Search.Debounce = 200 * time.Millisecond
	}
	if c.Search.MinQueryLength == 0 {
		c.Search.MinQueryLength = 2
	}
}
