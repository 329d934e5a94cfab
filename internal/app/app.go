// Package app wires configuration, clients and services into a runnable core
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nexavest/nexavest/internal/clients/coingecko"
	"github.com/nexavest/nexavest/internal/clients/exchangerate"
	"github.com/nexavest/nexavest/internal/clients/finnhub"
	"github.com/nexavest/nexavest/internal/clients/yahoo"
	"github.com/nexavest/nexavest/internal/common"
	"github.com/nexavest/nexavest/internal/interfaces"
	"github.com/nexavest/nexavest/internal/services/advisor"
	"github.com/nexavest/nexavest/internal/services/classifier"
	"github.com/nexavest/nexavest/internal/services/pricing"
)

// App holds all initialized clients and services.
// It is the shared core used by cmd/nexavest-server.
type App struct {
	Config *common.Config
	Logger *common.Logger

	YahooClient        interfaces.YahooClient
	FinnhubClient      interfaces.FinnhubClient // nil when no API key is configured
	CoinGeckoClient    interfaces.CoinGeckoClient
	ExchangeRateClient interfaces.ForexClient

	ClassifierService interfaces.ClassifierService
	PricingService    interfaces.PricingService
	AdvisorService    interfaces.AdvisorService

	StartupTime time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, logging, clients and services.
// configPath may be empty, in which case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	// Load version from .version file (fallback if ldflags not set)
	common.LoadVersionFromFile()

	binDir := getBinaryDir()

	// Load configuration - check provided path, NEXAVEST_CONFIG, then binary dir, then fallback
	if configPath == "" {
		configPath = os.Getenv("NEXAVEST_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "nexavest.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/nexavest.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative log file path to binary directory
	if config.Logging.FilePath != "" && !filepath.IsAbs(config.Logging.FilePath) {
		config.Logging.FilePath = filepath.Join(binDir, config.Logging.FilePath)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	app := &App{
		Config:      config,
		Logger:      logger,
		StartupTime: time.Now(),
	}

	app.YahooClient = yahoo.NewClient(
		yahoo.WithBaseURL(config.Clients.Yahoo.BaseURL),
		yahoo.WithLogger(logger),
		yahoo.WithRateLimit(config.Clients.Yahoo.RateLimit),
		yahoo.WithTimeout(config.Clients.Yahoo.GetTimeout()),
	)

	finnhubKey := common.ResolveAPIKey("finnhub_api_key", config.Clients.Finnhub.APIKey)
	if finnhubKey != "" {
		app.FinnhubClient = finnhub.NewClient(finnhubKey,
			finnhub.WithBaseURL(config.Clients.Finnhub.BaseURL),
			finnhub.WithLogger(logger),
			finnhub.WithRateLimit(config.Clients.Finnhub.RateLimit),
			finnhub.WithTimeout(config.Clients.Finnhub.GetTimeout()),
		)
	} else {
		logger.Warn().Msg("Finnhub API key not configured - stock quotes fall back to daily history")
	}

	app.CoinGeckoClient = coingecko.NewClient(
		coingecko.WithBaseURL(config.Clients.CoinGecko.BaseURL),
		coingecko.WithLogger(logger),
		coingecko.WithRateLimit(config.Clients.CoinGecko.RateLimit),
		coingecko.WithTimeout(config.Clients.CoinGecko.GetTimeout()),
	)

	app.ExchangeRateClient = exchangerate.NewClient(
		exchangerate.WithBaseURL(config.Clients.ExchangeRate.BaseURL),
		exchangerate.WithLogger(logger),
		exchangerate.WithRateLimit(config.Clients.ExchangeRate.RateLimit),
		exchangerate.WithTimeout(config.Clients.ExchangeRate.GetTimeout()),
	)

	app.ClassifierService = classifier.NewService(app.YahooClient, logger)
	app.PricingService = pricing.NewService(
		app.FinnhubClient,
		app.YahooClient,
		app.CoinGeckoClient,
		app.ExchangeRateClient,
		config.Pricing.RegionSuffix,
		logger,
	)
	app.AdvisorService = advisor.NewService(config.Risk, logger)

	logger.Info().
		Str("environment", config.Environment).
		Bool("finnhub", app.FinnhubClient != nil).
		Msg("Application initialized")

	return app, nil
}

// Close releases application resources. The clients hold no persistent
// connections, so this is currently a no-op kept for symmetry with NewApp.
func (a *App) Close() error {
	return nil
}
