package models

import (
	"fmt"
	"time"
)

// AllocationTargets maps an asset class or ticker to a target percentage
// (0-100). Percentages need not sum to exactly 100; consumers work with
// the values as given. Saved wholesale: each save replaces the previous
// table entirely.
type AllocationTargets map[string]float64

// Validate rejects percentages outside the 0-100 range.
func (t AllocationTargets) Validate() error {
	for key, pct := range t {
		if pct < 0 || pct > 100 {
			return fmt.Errorf("%w: target for %s must be between 0 and 100, got %.2f", ErrInvalidInput, key, pct)
		}
	}
	return nil
}

// SuggestedPurchase is one rebalancing suggestion. Target is a ticker in
// equal-weight mode or an asset class/ticker key in target-weight mode.
type SuggestedPurchase struct {
	Target       string  `json:"target"`
	CurrentValue float64 `json:"current_value"`
	DesiredValue float64 `json:"desired_value"`
	Amount       float64 `json:"amount"`
}

// TargetRecord is the persisted allocation-target table for one user.
type TargetRecord struct {
	UserID    string            `json:"user_id"`
	Targets   AllocationTargets `json:"targets"`
	UpdatedAt time.Time         `json:"updated_at"`
}
