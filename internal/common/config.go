// Package common provides shared utilities for NexaVest
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for NexaVest
type Config struct {
	Environment string        `toml:"environment"`
	Server      ServerConfig  `toml:"server"`
	Clients     ClientsConfig `toml:"clients"`
	Pricing     PricingConfig `toml:"pricing"`
	Risk        RiskConfig    `toml:"risk"`
	Logging     LoggingConfig `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host           string   `toml:"host"`
	Port           int      `toml:"port"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	Yahoo        ProviderConfig `toml:"yahoo"`
	Finnhub      ProviderConfig `toml:"finnhub"`
	CoinGecko    ProviderConfig `toml:"coingecko"`
	ExchangeRate ProviderConfig `toml:"exchangerate"`
}

// ProviderConfig holds configuration for a single external data provider.
type ProviderConfig struct {
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *ProviderConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// PricingConfig holds price-fetch behaviour configuration.
type PricingConfig struct {
	// RegionSuffix, when set (e.g. ".NS"), is appended to a bare stock symbol
	// for one extra fetch attempt after the plain symbol fails everywhere.
	RegionSuffix string `toml:"region_suffix"`
}

// RiskConfig holds the volatility threshold table and the per-class fallback
// constants used when no price range is available for an asset.
type RiskConfig struct {
	// Volatility buckets: vol < LowMax => Low, vol < MediumMax => Medium, else High.
	LowMax    float64 `toml:"low_max"`
	MediumMax float64 `toml:"medium_max"`

	Crypto ClassDefaults `toml:"crypto"`
	Forex  ClassDefaults `toml:"forex"`
	Stock  ClassDefaults `toml:"stock"`
}

// ClassDefaults holds the fixed volatility/return estimate assigned to an
// asset class when historical price data is unavailable.
type ClassDefaults struct {
	Volatility     float64 `toml:"volatility"`
	ExpectedReturn float64 `toml:"expected_return"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level      string   `toml:"level"`
	Format     string   `toml:"format"`
	Outputs    []string `toml:"outputs"`
	FilePath   string   `toml:"file_path"`
	MaxSizeMB  int      `toml:"max_size_mb"`
	MaxBackups int      `toml:"max_backups"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           8080,
			AllowedOrigins: []string{"*"},
		},
		Clients: ClientsConfig{
			Yahoo: ProviderConfig{
				BaseURL:   "https://query1.finance.yahoo.com",
				RateLimit: 5,
				Timeout:   "10s",
			},
			Finnhub: ProviderConfig{
				BaseURL:   "https://finnhub.io/api/v1",
				RateLimit: 10,
				Timeout:   "10s",
			},
			CoinGecko: ProviderConfig{
				BaseURL:   "https://api.coingecko.com/api/v3",
				RateLimit: 5,
				Timeout:   "10s",
			},
			ExchangeRate: ProviderConfig{
				BaseURL:   "https://api.exchangerate.host",
				RateLimit: 5,
				Timeout:   "10s",
			},
		},
		Risk: RiskConfig{
			LowMax:    0.02,
			MediumMax: 0.05,
			Crypto:    ClassDefaults{Volatility: 0.08, ExpectedReturn: 0.08},
			Forex:     ClassDefaults{Volatility: 0.03, ExpectedReturn: 0.02},
			Stock:     ClassDefaults{Volatility: 0.03, ExpectedReturn: 0.05},
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			Outputs:    []string{"console"},
			FilePath:   "./logs/nexavest.log",
			MaxSizeMB:  100,
			MaxBackups: 3,
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	validateRiskThresholds(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("NEXAVEST_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("NEXAVEST_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("NEXAVEST_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if origins := os.Getenv("NEXAVEST_ALLOWED_ORIGINS"); origins != "" {
		parts := strings.Split(origins, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		config.Server.AllowedOrigins = parts
	}

	if level := os.Getenv("NEXAVEST_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if suffix := os.Getenv("NEXAVEST_REGION_SUFFIX"); suffix != "" {
		config.Pricing.RegionSuffix = suffix
	}

	if key := ResolveAPIKey("finnhub_api_key", config.Clients.Finnhub.APIKey); key != "" {
		config.Clients.Finnhub.APIKey = key
	}
}

// ResolveAPIKey resolves an API key from environment or fallback
func ResolveAPIKey(name string, fallback string) string {
	keyToEnvMapping := map[string][]string{
		"finnhub_api_key": {"FINNHUB_API_KEY", "NEXAVEST_FINNHUB_API_KEY"},
	}

	if envVarNames, ok := keyToEnvMapping[name]; ok {
		for _, envVarName := range envVarNames {
			if envValue := os.Getenv(envVarName); envValue != "" {
				return envValue
			}
		}
	}

	return fallback
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}

// validateRiskThresholds ensures the threshold table is usable: both bounds
// positive and LowMax strictly below MediumMax, falling back to defaults otherwise.
func validateRiskThresholds(config *Config) {
	if config.Risk.LowMax <= 0 || config.Risk.MediumMax <= config.Risk.LowMax {
		defaults := NewDefaultConfig().Risk
		config.Risk.LowMax = defaults.LowMax
		config.Risk.MediumMax = defaults.MediumMax
	}
}
