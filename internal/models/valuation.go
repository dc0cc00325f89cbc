package models

import "time"

// PositionValuation holds the per-position valuation figures.
// Stale marks positions whose quote was missing or unavailable: the price
// is substituted with zero and the position still contributes to totals,
// so callers must surface the flag rather than hide it.
type PositionValuation struct {
	Ticker        string     `json:"ticker"`
	AssetClass    AssetClass `json:"asset_class"`
	Quantity      float64    `json:"quantity"`
	AvgCost       float64    `json:"avg_cost"`
	Price         float64    `json:"price"`
	Foreign       bool       `json:"foreign,omitempty"`
	Stale         bool       `json:"stale,omitempty"`
	MarketValue   float64    `json:"market_value"`
	CostBasis     float64    `json:"cost_basis"`
	UnrealizedPnL float64    `json:"unrealized_pnl"`
	Weight        float64    `json:"weight"`
}

// ValuationSnapshot is the derived portfolio valuation. Recomputed on
// demand, never persisted.
type ValuationSnapshot struct {
	AsOf               time.Time           `json:"as_of"`
	FXRate             float64             `json:"fx_rate"`
	Positions          []PositionValuation `json:"positions"`
	TotalMarketValue   float64             `json:"total_market_value"`
	TotalCostBasis     float64             `json:"total_cost_basis"`
	TotalUnrealizedPnL float64             `json:"total_unrealized_pnl"`
	StaleCount         int                 `json:"stale_count"`
}

// ValueByKey sums market value grouped by asset class and by ticker, both
// keyed into the same map. Rebalancing targets may address either.
func (s *ValuationSnapshot) ValueByKey() map[string]float64 {
	values := make(map[string]float64)
	for _, p := range s.Positions {
		values[string(p.AssetClass)] += p.MarketValue
		values[p.Ticker] += p.MarketValue
	}
	return values
}

// HoldingReview pairs a valued position with its historical-context
// classification.
type HoldingReview struct {
	Position       PositionValuation `json:"position"`
	Classification *Classification   `json:"classification,omitempty"`
}

// PortfolioReview is the full analysis result for a portfolio.
type PortfolioReview struct {
	UserID     string             `json:"user_id"`
	ReviewDate time.Time          `json:"review_date"`
	Snapshot   *ValuationSnapshot `json:"snapshot"`
	Holdings   []HoldingReview    `json:"holdings"`
}
