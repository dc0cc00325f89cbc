// Package signals classifies tickers against their own price history
package signals

import (
	"math"
	"sort"

	"github.com/carteiralab/carteira/internal/models"
)

// Mean returns the arithmetic mean of the values, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// TrailingMean averages the last window closes, or the whole series when
// it is shorter than the window.
func TrailingMean(series models.PriceHistory, window int) float64 {
	closes := series.Closes()
	if len(closes) > window {
		closes = closes[len(closes)-window:]
	}
	return Mean(closes)
}

// Percentile returns the pct-th percentile (0-100) of the values using
// linear interpolation between closest ranks.
func Percentile(values []float64, pct float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	rank := pct / 100 * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return sorted[lower]
	}
	frac := rank - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower])
}

// Extrema returns the minimum and maximum closes of the series.
func Extrema(series models.PriceHistory) (min, max float64) {
	if len(series) == 0 {
		return 0, 0
	}
	min = series[0].AdjClose
	max = series[0].AdjClose
	for _, p := range series[1:] {
		if p.AdjClose < min {
			min = p.AdjClose
		}
		if p.AdjClose > max {
			max = p.AdjClose
		}
	}
	return min, max
}

// YoYChangePct returns the percentage change between the latest close and
// the close lookback trading days earlier, or 0 when the series is too
// short to look that far back.
func YoYChangePct(series models.PriceHistory, lookback int) float64 {
	n := len(series)
	if n <= lookback {
		return 0
	}
	back := series[n-lookback].AdjClose
	if back == 0 {
		return 0
	}
	return (series[n-1].AdjClose/back - 1) * 100
}

// RangePositionPct places the current price within the historical
// min/max band as a 0-100 percentage. A flat range falls back to the
// midpoint to avoid a division by zero.
func RangePositionPct(current, min, max float64) float64 {
	if max <= min {
		return 50
	}
	return (current - min) / (max - min) * 100
}
