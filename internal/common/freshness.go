// Package common provides shared utilities for Carteira
package common

import "time"

// Freshness TTLs for memoized market data. Quotes move intraday; history
// and dividends only change after a close.
const (
	FreshnessQuote     = 15 * time.Minute
	FreshnessHistory   = 24 * time.Hour
	FreshnessDividends = 24 * time.Hour
)

// IsFresh returns true if the given timestamp is within the TTL
func IsFresh(updated time.Time, ttl time.Duration) bool {
	if updated.IsZero() {
		return false
	}
	return time.Since(updated) < ttl
}
