// Package portfolio implements the portfolio service: position lifecycle
// plus the valuation, review, rebalancing and analysis operations.
package portfolio

import (
	"context"
	"fmt"
	"time"

	"github.com/carteiralab/carteira/internal/common"
	"github.com/carteiralab/carteira/internal/interfaces"
	"github.com/carteiralab/carteira/internal/models"
	"github.com/carteiralab/carteira/internal/rebalance"
	"github.com/carteiralab/carteira/internal/signals"
	"github.com/carteiralab/carteira/internal/valuation"
)

// Service implements PortfolioService.
type Service struct {
	store      interfaces.Store
	market     interfaces.MarketService
	valuer     *valuation.Engine
	classifier *signals.Classifier
	rebalancer *rebalance.Engine
	logger     *common.Logger
}

var _ interfaces.PortfolioService = (*Service)(nil)

// NewService creates a new portfolio service. The classifier carries the
// configured desired yield for ceiling-price computation.
func NewService(
	store interfaces.Store,
	market interfaces.MarketService,
	classifier *signals.Classifier,
	logger *common.Logger,
) *Service {
	return &Service{
		store:      store,
		market:     market,
		valuer:     valuation.NewEngine(nil),
		classifier: classifier,
		rebalancer: rebalance.NewEngine(),
		logger:     logger,
	}
}

// UpsertPosition creates or overwrites a position. Zero quantity deletes:
// a portfolio never retains empty positions.
func (s *Service) UpsertPosition(ctx context.Context, position *models.Position) error {
	if position.Quantity == 0 {
		s.logger.Info().Str("ticker", position.Ticker).Msg("Zero-quantity upsert, deleting position")
		return s.store.DeletePosition(ctx, position.UserID, position.Ticker)
	}
	return s.store.UpsertPosition(ctx, position)
}

// DeletePosition removes a position.
func (s *Service) DeletePosition(ctx context.Context, userID, ticker string) error {
	return s.store.DeletePosition(ctx, userID, ticker)
}

// ListPositions returns all positions for a user, ordered by ticker.
func (s *Service) ListPositions(ctx context.Context, userID string) ([]models.Position, error) {
	return s.store.ListPositions(ctx, userID)
}

// Valuate fetches quotes for every held ticker and computes the portfolio
// snapshot. Unresolvable quotes degrade to stale positions, never errors.
func (s *Service) Valuate(ctx context.Context, userID string, fx float64) (*models.ValuationSnapshot, error) {
	positions, err := s.store.ListPositions(ctx, userID)
	if err != nil {
		return nil, err
	}

	tickers := make([]string, len(positions))
	for i, p := range positions {
		tickers[i] = p.Ticker
	}
	quotes := s.market.QuoteBatch(ctx, tickers)

	snapshot, err := s.valuer.Valuate(positions, quotes, fx)
	if err != nil {
		return nil, err
	}
	if snapshot.StaleCount > 0 {
		s.logger.Warn().Str("user", userID).Int("stale", snapshot.StaleCount).Msg("Valuation includes stale positions")
	}
	return snapshot, nil
}

// Review valuates the portfolio and classifies each holding against its
// own five-year history. Holdings whose history cannot be fetched carry a
// nil classification.
func (s *Service) Review(ctx context.Context, userID string, fx float64) (*models.PortfolioReview, error) {
	snapshot, err := s.Valuate(ctx, userID, fx)
	if err != nil {
		return nil, err
	}

	holdings := make([]models.HoldingReview, 0, len(snapshot.Positions))
	for _, position := range snapshot.Positions {
		review := models.HoldingReview{Position: position}
		if classification, err := s.Analyze(ctx, position.Ticker); err != nil {
			s.logger.Warn().Str("ticker", position.Ticker).Err(err).Msg("Classification unavailable for holding")
		} else {
			review.Classification = classification
		}
		holdings = append(holdings, review)
	}

	return &models.PortfolioReview{
		UserID:     userID,
		ReviewDate: time.Now(),
		Snapshot:   snapshot,
		Holdings:   holdings,
	}, nil
}

// Analyze classifies a single ticker against its price and dividend
// history. A ticker with no history yields the insufficient-data result.
func (s *Service) Analyze(ctx context.Context, ticker string) (*models.Classification, error) {
	ticker = models.NormalizeTicker(ticker)
	if ticker == "" {
		return nil, fmt.Errorf("%w: ticker is required", models.ErrInvalidInput)
	}

	history, err := s.market.History(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history for %s: %w", ticker, err)
	}

	// Dividends enrich the result but their absence never blocks it.
	dividends, err := s.market.Dividends(ctx, ticker)
	if err != nil {
		s.logger.Debug().Str("ticker", ticker).Err(err).Msg("Dividend history unavailable")
		dividends = nil
	}

	return s.classifier.Classify(history, dividends), nil
}

// SuggestRebalance computes purchase suggestions for new capital. Saved
// allocation targets select target-weight mode; without them every held
// ticker is weighted equally.
func (s *Service) SuggestRebalance(ctx context.Context, userID string, newCapital, fx float64) ([]models.SuggestedPurchase, error) {
	snapshot, err := s.Valuate(ctx, userID, fx)
	if err != nil {
		return nil, err
	}
	targets, err := s.store.GetTargets(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.rebalancer.Suggest(snapshot, newCapital, targets)
}

// SaveTargets replaces the user's allocation-target table wholesale.
func (s *Service) SaveTargets(ctx context.Context, userID string, targets models.AllocationTargets) error {
	return s.store.SaveTargets(ctx, userID, targets)
}

// GetTargets returns the saved allocation targets, or nil when none exist.
func (s *Service) GetTargets(ctx context.Context, userID string) (models.AllocationTargets, error) {
	return s.store.GetTargets(ctx, userID)
}
