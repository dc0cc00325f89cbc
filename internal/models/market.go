package models

import "time"

// PriceQuote is the latest trade price for a ticker. Quotes are ephemeral:
// recomputed on each valuation pass and never persisted. Available is false
// when the market-data gateway could not resolve the ticker; the price is
// then meaningless and consumers must treat the position as stale.
type PriceQuote struct {
	Ticker    string    `json:"ticker"`
	Price     float64   `json:"price"`
	AsOf      time.Time `json:"as_of"`
	Available bool      `json:"available"`
}

// QuoteMap is a quote lookup keyed by ticker. A missing key means the
// gateway returned nothing for that ticker and is equivalent to an
// unavailable quote.
type QuoteMap map[string]PriceQuote

// PricePoint is one (date, adjusted close) observation.
type PricePoint struct {
	Date     time.Time `json:"date"`
	AdjClose float64   `json:"adj_close"`
}

// PriceHistory is an ordered price series, oldest first, spanning up to
// five years. Immutable once fetched; may be empty when no data exists.
type PriceHistory []PricePoint

// Last returns the most recent close, or 0 for an empty series.
func (h PriceHistory) Last() float64 {
	if len(h) == 0 {
		return 0
	}
	return h[len(h)-1].AdjClose
}

// Closes extracts the adjusted closes in series order.
func (h PriceHistory) Closes() []float64 {
	closes := make([]float64, len(h))
	for i, p := range h {
		closes[i] = p.AdjClose
	}
	return closes
}

// DividendPayment is one cash distribution per unit.
type DividendPayment struct {
	Date   time.Time `json:"date"`
	Amount float64   `json:"amount"`
}

// DividendHistory is an ordered dividend series, oldest first.
type DividendHistory []DividendPayment

// SumSince totals distributions paid on or after the cutoff.
func (d DividendHistory) SumSince(cutoff time.Time) float64 {
	sum := 0.0
	for _, p := range d {
		if !p.Date.Before(cutoff) {
			sum += p.Amount
		}
	}
	return sum
}

// SumLastN totals the most recent n distributions.
func (d DividendHistory) SumLastN(n int) float64 {
	if n > len(d) {
		n = len(d)
	}
	sum := 0.0
	for _, p := range d[len(d)-n:] {
		sum += p.Amount
	}
	return sum
}
