package interfaces

import (
	"context"

	"github.com/carteiralab/carteira/internal/models"
)

// MarketService orchestrates the market-data gateway: parallel batch
// fetches with a bounded worker pool and TTL memoization. Engines never
// call the gateway directly; they receive already-materialized data.
type MarketService interface {
	// QuoteBatch resolves quotes for all tickers. Failures degrade to
	// unavailable quotes in the returned map; the call itself never
	// fails on missing market data.
	QuoteBatch(ctx context.Context, tickers []string) models.QuoteMap

	// History returns the price history for one ticker.
	History(ctx context.Context, ticker string) (models.PriceHistory, error)

	// Dividends returns the dividend history for one ticker.
	Dividends(ctx context.Context, ticker string) (models.DividendHistory, error)

	// Invalidate drops any memoized data for a ticker.
	Invalidate(ticker string)

	// InvalidateAll drops all memoized data.
	InvalidateAll()
}

// PortfolioService covers position lifecycle and the analysis operations
// built on the valuation, classification, rebalancing and projection
// engines.
type PortfolioService interface {
	// UpsertPosition creates or overwrites a position keyed by ticker.
	// A zero-quantity upsert deletes the position.
	UpsertPosition(ctx context.Context, position *models.Position) error

	// DeletePosition removes a position.
	DeletePosition(ctx context.Context, userID, ticker string) error

	// ListPositions returns all positions for a user, ordered by ticker.
	ListPositions(ctx context.Context, userID string) ([]models.Position, error)

	// Valuate computes the current portfolio snapshot at the given FX rate.
	Valuate(ctx context.Context, userID string, fx float64) (*models.ValuationSnapshot, error)

	// Review valuates the portfolio and classifies every holding against
	// its own price history.
	Review(ctx context.Context, userID string, fx float64) (*models.PortfolioReview, error)

	// Analyze classifies a single ticker.
	Analyze(ctx context.Context, ticker string) (*models.Classification, error)

	// SuggestRebalance computes purchase suggestions for new capital,
	// using saved allocation targets or equal weighting when none exist.
	SuggestRebalance(ctx context.Context, userID string, newCapital, fx float64) ([]models.SuggestedPurchase, error)

	// SaveTargets replaces the user's allocation-target table wholesale.
	SaveTargets(ctx context.Context, userID string, targets models.AllocationTargets) error

	// GetTargets returns the saved allocation targets, or nil when none
	// have been saved.
	GetTargets(ctx context.Context, userID string) (models.AllocationTargets, error)
}
