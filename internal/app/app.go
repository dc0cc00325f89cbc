// Package app wires configuration, storage, clients and services into
// the running application core shared by commands and tests.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/carteiralab/carteira/internal/clients/brapi"
	"github.com/carteiralab/carteira/internal/common"
	"github.com/carteiralab/carteira/internal/interfaces"
	"github.com/carteiralab/carteira/internal/services/market"
	"github.com/carteiralab/carteira/internal/services/portfolio"
	"github.com/carteiralab/carteira/internal/signals"
	"github.com/carteiralab/carteira/internal/storage/positiondb"
)

// App holds all initialized services and clients.
type App struct {
	Config           *common.Config
	Logger           *common.Logger
	Store            interfaces.Store
	MarketClient     interfaces.MarketDataClient
	MarketService    interfaces.MarketService
	PortfolioService interfaces.PortfolioService
	StartupTime      time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, storage, the market-data client and
// all services. configPath may be empty, in which case CARTEIRA_CONFIG
// and the binary directory are checked before falling back to the
// development default.
func NewApp(configPath string) (*App, error) {
	binDir := getBinaryDir()

	if configPath == "" {
		configPath = os.Getenv("CARTEIRA_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "carteira.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/carteira.toml"
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative storage path to binary directory
	if config.Storage.Path != "" && !filepath.IsAbs(config.Storage.Path) {
		if _, err := os.Stat(config.Storage.Path); os.IsNotExist(err) {
			config.Storage.Path = filepath.Join(binDir, config.Storage.Path)
		}
	}

	logger := common.NewLogger(config.Logging.Level)

	store, err := positiondb.NewStore(logger, config.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	if config.Clients.Brapi.Token == "" {
		logger.Warn().Msg("brapi token not configured - rate limits will be tight")
	}
	marketClient := brapi.NewClient(config.Clients.Brapi.Token,
		brapi.WithBaseURL(config.Clients.Brapi.BaseURL),
		brapi.WithLogger(logger),
		brapi.WithRateLimit(config.Clients.Brapi.RateLimit),
		brapi.WithTimeout(config.Clients.Brapi.GetTimeout()),
	)

	marketService := market.NewService(marketClient, logger,
		config.Engine.GetQuoteCacheTTL(), config.Engine.MaxFetchWorkers)

	scoreConfig := signals.DefaultScoreConfig()
	if config.Engine.DesiredYieldPct > 0 {
		scoreConfig.DesiredYieldPct = config.Engine.DesiredYieldPct
	}
	classifier := signals.NewClassifier(scoreConfig)

	portfolioService := portfolio.NewService(store, marketService, classifier, logger)

	logger.Info().
		Str("environment", config.Environment).
		Str("storage", config.Storage.Path).
		Msg("Application initialized")

	return &App{
		Config:           config,
		Logger:           logger,
		Store:            store,
		MarketClient:     marketClient,
		MarketService:    marketService,
		PortfolioService: portfolioService,
		StartupTime:      time.Now(),
	}, nil
}

// Close releases all application resources.
func (a *App) Close() {
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			a.Logger.Error().Err(err).Msg("Failed to close store")
		}
	}
}
