package models

import "time"

// ValuationLabel is the discrete cheap/expensive classification of a
// ticker against its own price history.
type ValuationLabel string

const (
	LabelOpportunity ValuationLabel = "opportunity"
	LabelCheap       ValuationLabel = "cheap"
	LabelNeutral     ValuationLabel = "neutral"
	LabelCaution     ValuationLabel = "caution"
	LabelExpensive   ValuationLabel = "expensive"
)

// Classification is the historical-context analysis for one ticker.
// InsufficientData marks the sentinel returned for an empty price series:
// a neutral label with a zero score, visually distinguishable from a
// confidently computed result.
type Classification struct {
	Ticker           string         `json:"ticker,omitempty"`
	Label            ValuationLabel `json:"label"`
	Score            int            `json:"score"`
	Facts            []string       `json:"facts,omitempty"`
	HighRisk         bool           `json:"high_risk,omitempty"`
	InsufficientData bool           `json:"insufficient_data,omitempty"`

	CurrentPrice     float64 `json:"current_price"`
	Avg12M           float64 `json:"avg_12m"`
	P20              float64 `json:"p20"`
	P80              float64 `json:"p80"`
	Min5Y            float64 `json:"min_5y"`
	Max5Y            float64 `json:"max_5y"`
	YoYChangePct     float64 `json:"yoy_change_pct"`
	RangePositionPct float64 `json:"range_position_pct"`

	SuggestedBuyPrice float64  `json:"suggested_buy_price"`
	DividendYieldPct  *float64 `json:"dividend_yield_pct,omitempty"`
	BazinCeiling      *float64 `json:"bazin_ceiling,omitempty"`

	ComputedAt time.Time `json:"computed_at"`
}
