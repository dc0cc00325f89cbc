// Package common provides shared utilities for Carteira
package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for Carteira
type Config struct {
	Environment string        `toml:"environment"`
	Server      ServerConfig  `toml:"server"`
	Storage     StorageConfig `toml:"storage"`
	Clients     ClientsConfig `toml:"clients"`
	Logging     LoggingConfig `toml:"logging"`
	Engine      EngineConfig  `toml:"engine"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig holds the BadgerHold database path.
type StorageConfig struct {
	Path string `toml:"path"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	Brapi BrapiConfig `toml:"brapi"`
}

// BrapiConfig holds brapi.dev API configuration
type BrapiConfig struct {
	BaseURL   string `toml:"base_url"`
	Token     string `toml:"token"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *BrapiConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `toml:"level"`
}

// EngineConfig holds tunable engine parameters.
type EngineConfig struct {
	DesiredYieldPct float64 `toml:"desired_yield_pct"` // Bazin ceiling target yield (default 6)
	DefaultFXRate   float64 `toml:"default_fx_rate"`   // BRL per unit of foreign currency
	QuoteCacheTTL   string  `toml:"quote_cache_ttl"`   // TTL for memoized quotes
	MaxFetchWorkers int     `toml:"max_fetch_workers"` // bounded pool for parallel quote fetches
}

// GetQuoteCacheTTL parses the quote cache TTL with a sane fallback.
func (c *EngineConfig) GetQuoteCacheTTL() time.Duration {
	d, err := time.ParseDuration(c.QuoteCacheTTL)
	if err != nil {
		return FreshnessQuote
	}
	return d
}

// DefaultConfig returns a config with development defaults.
func DefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8380,
		},
		Storage: StorageConfig{
			Path: "data/carteira",
		},
		Clients: ClientsConfig{
			Brapi: BrapiConfig{
				BaseURL:   "https://brapi.dev/api",
				RateLimit: 5,
				Timeout:   "30s",
			},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Engine: EngineConfig{
			DesiredYieldPct: 6,
			DefaultFXRate:   1,
			QuoteCacheTTL:   "15m",
			MaxFetchWorkers: 5,
		},
	}
}

// LoadConfig reads a TOML config file, applies defaults for missing values
// and environment-variable overrides on top.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config %s: %w", path, err)
			}
		} else if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return nil, fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	return config, nil
}

// applyEnvOverrides lets environment variables win over file values.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("CARTEIRA_ENV"); v != "" {
		config.Environment = v
	}
	if v := os.Getenv("CARTEIRA_HOST"); v != "" {
		config.Server.Host = v
	}
	if v := os.Getenv("CARTEIRA_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			config.Server.Port = port
		}
	}
	if v := os.Getenv("CARTEIRA_STORAGE_PATH"); v != "" {
		config.Storage.Path = v
	}
	if v := os.Getenv("CARTEIRA_BRAPI_TOKEN"); v != "" {
		config.Clients.Brapi.Token = v
	}
	if v := os.Getenv("CARTEIRA_BRAPI_URL"); v != "" {
		config.Clients.Brapi.BaseURL = v
	}
	if v := os.Getenv("CARTEIRA_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
}

// IsProduction reports whether the environment is production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
