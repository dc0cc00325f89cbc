// Package models defines data structures for Carteira
package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
)

// AssetClass categorizes a holding within the portfolio.
type AssetClass string

const (
	AssetClassEquity      AssetClass = "equity"
	AssetClassFII         AssetClass = "fii"
	AssetClassETF         AssetClass = "etf"
	AssetClassFixedIncome AssetClass = "fixed_income"
	AssetClassBDR         AssetClass = "bdr"
	AssetClassCrypto      AssetClass = "crypto"
)

// ValidAssetClasses lists every accepted asset class.
var ValidAssetClasses = []AssetClass{
	AssetClassEquity,
	AssetClassFII,
	AssetClassETF,
	AssetClassFixedIncome,
	AssetClassBDR,
	AssetClassCrypto,
}

// ParseAssetClass normalizes and validates an asset class string.
func ParseAssetClass(s string) (AssetClass, error) {
	ac := AssetClass(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range ValidAssetClasses {
		if ac == valid {
			return ac, nil
		}
	}
	return "", fmt.Errorf("%w: unknown asset class %q", ErrInvalidInput, s)
}

// tickerPattern accepts B3 tickers as four letters plus a one or two
// digit suffix, covering common and preferred shares (PETR4, CPLE6,
// USIM5), units and FIIs (HGLG11) and BDRs (AAPL34), plus plain
// international symbols (AAPL, BTC).
var tickerPattern = regexp.MustCompile(`^[A-Z]{4}\d{1,2}$|^[A-Z]{1,5}$`)

// Position represents one holding: a quantity of a ticker at a recorded
// average cost. A position with zero quantity is deleted, never retained.
type Position struct {
	UserID     string     `json:"user_id"`
	Ticker     string     `json:"ticker"`
	Quantity   float64    `json:"quantity"`
	AvgCost    float64    `json:"avg_cost"`
	AssetClass AssetClass `json:"asset_class"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// NormalizeTicker uppercases and trims a ticker symbol.
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// Validate checks the position invariants: a well-formed ticker, positive
// quantity, positive average cost, and a known asset class.
func (p *Position) Validate() error {
	ticker := NormalizeTicker(p.Ticker)
	if ticker == "" {
		return fmt.Errorf("%w: ticker is required", ErrInvalidInput)
	}
	if !tickerPattern.MatchString(ticker) {
		return fmt.Errorf("%w: malformed ticker %q", ErrInvalidInput, p.Ticker)
	}
	if p.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive for %s", ErrInvalidInput, ticker)
	}
	if p.AvgCost <= 0 {
		return fmt.Errorf("%w: average cost must be positive for %s", ErrInvalidInput, ticker)
	}
	if _, err := ParseAssetClass(string(p.AssetClass)); err != nil {
		return err
	}
	return nil
}

// CostBasis returns quantity times average cost.
func (p *Position) CostBasis() float64 {
	return p.Quantity * p.AvgCost
}

// IsDomesticB3 reports whether a ticker trades on the Brazilian exchange.
// B3 symbols end in a class digit and are at least five characters long
// (PETR4, VALE3, HGLG11); anything else is treated as foreign-denominated.
// This is the default CurrencyClassifier for the valuation engine.
func IsDomesticB3(ticker string) bool {
	ticker = NormalizeTicker(ticker)
	if len(ticker) < 5 {
		return false
	}
	return unicode.IsDigit(rune(ticker[len(ticker)-1]))
}
