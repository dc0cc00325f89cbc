// Package valuation converts holdings and live quotes into a portfolio snapshot.
package valuation

import (
	"fmt"
	"math"
	"time"

	"github.com/carteiralab/carteira/internal/models"
)

// CurrencyClassifier reports whether a ticker is denominated in the
// domestic currency. Foreign-denominated prices are multiplied by the FX
// rate before valuation. Injected so FX handling is testable in isolation.
type CurrencyClassifier func(ticker string) bool

// Engine computes valuation snapshots. Pure: no side effects, newly
// allocated results on every call.
type Engine struct {
	isDomestic CurrencyClassifier
}

// NewEngine creates a valuation engine. A nil classifier falls back to
// B3-suffix detection.
func NewEngine(classifier CurrencyClassifier) *Engine {
	if classifier == nil {
		classifier = models.IsDomesticB3
	}
	return &Engine{isDomestic: classifier}
}

// Valuate prices every position against the quote map and aggregates the
// portfolio totals. Missing or unavailable quotes never fail the call:
// the position is valued at price zero and flagged stale so callers can
// surface the degradation. Only malformed input (negative quantity or
// price, bad FX rate) is an error.
func (e *Engine) Valuate(positions []models.Position, quotes models.QuoteMap, fx float64) (*models.ValuationSnapshot, error) {
	if fx <= 0 || math.IsNaN(fx) || math.IsInf(fx, 0) {
		return nil, fmt.Errorf("%w: fx rate must be positive and finite, got %v", models.ErrInvalidInput, fx)
	}

	snapshot := &models.ValuationSnapshot{
		AsOf:      time.Now(),
		FXRate:    fx,
		Positions: make([]models.PositionValuation, 0, len(positions)),
	}

	for _, pos := range positions {
		if pos.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive for %s", models.ErrInvalidInput, pos.Ticker)
		}
		if pos.AvgCost <= 0 {
			return nil, fmt.Errorf("%w: average cost must be positive for %s", models.ErrInvalidInput, pos.Ticker)
		}

		ticker := models.NormalizeTicker(pos.Ticker)
		quote, ok := quotes[ticker]
		stale := !ok || !quote.Available
		if !stale && quote.Price < 0 {
			return nil, fmt.Errorf("%w: negative price for %s", models.ErrInvalidInput, ticker)
		}

		price := 0.0
		if !stale {
			price = quote.Price
		}

		foreign := !e.isDomestic(ticker)
		effectivePrice := price
		if foreign {
			effectivePrice = price * fx
		}

		pv := models.PositionValuation{
			Ticker:        ticker,
			AssetClass:    pos.AssetClass,
			Quantity:      pos.Quantity,
			AvgCost:       pos.AvgCost,
			Price:         effectivePrice,
			Foreign:       foreign,
			Stale:         stale,
			MarketValue:   pos.Quantity * effectivePrice,
			CostBasis:     pos.Quantity * pos.AvgCost,
		}
		pv.UnrealizedPnL = pv.MarketValue - pv.CostBasis

		snapshot.Positions = append(snapshot.Positions, pv)
		snapshot.TotalMarketValue += pv.MarketValue
		snapshot.TotalCostBasis += pv.CostBasis
		snapshot.TotalUnrealizedPnL += pv.UnrealizedPnL
		if stale {
			snapshot.StaleCount++
		}
	}

	// Weights only make sense for a non-empty valued portfolio.
	if snapshot.TotalMarketValue > 0 {
		for i := range snapshot.Positions {
			snapshot.Positions[i].Weight = snapshot.Positions[i].MarketValue / snapshot.TotalMarketValue
		}
	}

	return snapshot, nil
}
