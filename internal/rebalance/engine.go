// Package rebalance computes purchase suggestions that move a portfolio
// toward its target allocation.
package rebalance

import (
	"fmt"
	"math"
	"sort"

	"github.com/carteiralab/carteira/internal/models"
)

// Engine computes rebalancing suggestions. Pure: no side effects, newly
// allocated results on every call.
type Engine struct{}

// NewEngine creates a rebalance engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Suggest computes the purchases that move the portfolio toward target.
// With no targets it equalizes dollar value across held positions; with
// targets it closes per-class (or per-ticker) gaps, scaled down
// proportionally so the total never exceeds the new capital. Output is
// ordered by amount descending, ticker ascending on ties. An empty
// portfolio yields an empty list, not an error.
func (e *Engine) Suggest(snapshot *models.ValuationSnapshot, newCapital float64, targets models.AllocationTargets) ([]models.SuggestedPurchase, error) {
	if newCapital < 0 || math.IsNaN(newCapital) || math.IsInf(newCapital, 0) {
		return nil, fmt.Errorf("%w: new capital must be non-negative and finite", models.ErrInvalidInput)
	}
	if snapshot == nil || len(snapshot.Positions) == 0 {
		return []models.SuggestedPurchase{}, nil
	}

	var suggestions []models.SuggestedPurchase
	if len(targets) == 0 {
		suggestions = e.equalWeight(snapshot, newCapital)
	} else {
		if err := targets.Validate(); err != nil {
			return nil, err
		}
		suggestions = e.targetWeight(snapshot, newCapital, targets)
	}

	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].Amount != suggestions[j].Amount {
			return suggestions[i].Amount > suggestions[j].Amount
		}
		return suggestions[i].Target < suggestions[j].Target
	})

	return suggestions, nil
}

// equalWeight targets identical dollar value across all held positions.
// Positions already at or above the goal are omitted; amounts are the
// raw gaps, uncapped.
func (e *Engine) equalWeight(snapshot *models.ValuationSnapshot, newCapital float64) []models.SuggestedPurchase {
	goal := (snapshot.TotalMarketValue + newCapital) / float64(len(snapshot.Positions))

	suggestions := make([]models.SuggestedPurchase, 0, len(snapshot.Positions))
	for _, pos := range snapshot.Positions {
		gap := goal - pos.MarketValue
		if gap <= 0 {
			continue
		}
		suggestions = append(suggestions, models.SuggestedPurchase{
			Target:       pos.Ticker,
			CurrentValue: pos.MarketValue,
			DesiredValue: goal,
			Amount:       gap,
		})
	}
	return suggestions
}

// targetWeight closes the gaps against the supplied allocation table.
// Only positive gaps are bought; when the gaps exceed the new capital
// every suggestion is scaled down by the same factor.
func (e *Engine) targetWeight(snapshot *models.ValuationSnapshot, newCapital float64, targets models.AllocationTargets) []models.SuggestedPurchase {
	projected := snapshot.TotalMarketValue + newCapital
	current := snapshot.ValueByKey()

	suggestions := make([]models.SuggestedPurchase, 0, len(targets))
	totalGap := 0.0
	for key, pct := range targets {
		desired := projected * pct / 100
		gap := desired - current[key]
		if gap <= 0 {
			continue
		}
		suggestions = append(suggestions, models.SuggestedPurchase{
			Target:       key,
			CurrentValue: current[key],
			DesiredValue: desired,
			Amount:       gap,
		})
		totalGap += gap
	}

	if totalGap > newCapital && totalGap > 0 {
		factor := newCapital / totalGap
		for i := range suggestions {
			suggestions[i].Amount *= factor
		}
	}

	return suggestions
}
