package signals

import (
	"fmt"
	"time"

	"github.com/carteiralab/carteira/internal/models"
)

// Classifier scores a price series against its own history and maps the
// result to a discrete valuation label. Deterministic given its inputs,
// aside from the clock used to window trailing-12-month dividends.
type Classifier struct {
	cfg ScoreConfig
	now func() time.Time
}

// Option configures the classifier.
type Option func(*Classifier)

// WithClock overrides the clock, for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(c *Classifier) {
		c.now = now
	}
}

// NewClassifier creates a classifier with the given scoring table.
func NewClassifier(cfg ScoreConfig, opts ...Option) *Classifier {
	c := &Classifier{cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify computes the historical-context classification for one ticker.
// An empty series returns the insufficient-data sentinel, never an error.
func (c *Classifier) Classify(series models.PriceHistory, dividends models.DividendHistory) *models.Classification {
	now := c.now()

	if len(series) == 0 {
		return &models.Classification{
			Label:            models.LabelNeutral,
			Score:            0,
			InsufficientData: true,
			Facts:            []string{"insufficient price history for analysis"},
			RangePositionPct: 50,
			ComputedAt:       now,
		}
	}

	cfg := c.cfg
	current := series.Last()
	avg12m := TrailingMean(series, cfg.TrailingWindow)
	closes := series.Closes()
	p20 := Percentile(closes, 20)
	p80 := Percentile(closes, 80)
	min5y, max5y := Extrema(series)
	yoy := YoYChangePct(series, cfg.YoYLookback)
	rangePos := RangePositionPct(current, min5y, max5y)

	score := 0
	var facts []string
	highRisk := false

	// Current price vs trailing 12-month average.
	switch {
	case current < avg12m*(1-cfg.AvgDeepBandPct):
		score -= cfg.AvgDeepPoints
		facts = append(facts, "price more than 15% below the 12-month average")
	case current < avg12m*(1-cfg.AvgModerateBandPct):
		score -= cfg.AvgModeratePoints
		facts = append(facts, "price more than 10% below the 12-month average")
	case current < avg12m:
		score -= cfg.AvgAnyPoints
		facts = append(facts, "price below the 12-month average")
	case current > avg12m*(1+cfg.AvgDeepBandPct):
		score += cfg.AvgDeepPoints
		facts = append(facts, "price more than 15% above the 12-month average")
	case current > avg12m*(1+cfg.AvgModerateBandPct):
		score += cfg.AvgModeratePoints
		facts = append(facts, "price more than 10% above the 12-month average")
	case current > avg12m:
		score += cfg.AvgAnyPoints
		facts = append(facts, "price above the 12-month average")
	}

	// Percentile extremes. Strictly below p20 / above p80 only.
	if current < p20 {
		score -= cfg.PercentilePoints
		facts = append(facts, "among the lowest 20% of prices in the series")
	} else if current > p80 {
		score += cfg.PercentilePoints
		facts = append(facts, "among the highest 20% of prices in the series")
	}

	// Position within the historical range.
	switch {
	case rangePos < cfg.RangeDeepLowPct:
		score -= cfg.RangeDeepPoints
		facts = append(facts, fmt.Sprintf("near the historical low of %.2f", min5y))
	case rangePos < cfg.RangeLowPct:
		score -= cfg.RangeEdgePoints
		facts = append(facts, "in the lower band of the historical range")
	case rangePos > cfg.RangeDeepHighPct:
		score += cfg.RangeDeepPoints
		facts = append(facts, fmt.Sprintf("near the historical high of %.2f", max5y))
	case rangePos > cfg.RangeHighPct:
		score += cfg.RangeEdgePoints
		facts = append(facts, "in the upper band of the historical range")
	}

	// Year-over-year change.
	switch {
	case yoy < cfg.YoYCrashPct:
		score -= cfg.YoYCrashPoints
		facts = append(facts, fmt.Sprintf("fell %.1f%% over the last year", -yoy))
		if yoy < cfg.HighRiskYoYPct {
			highRisk = true
			facts = append(facts, "drop exceeds 50% in one year, check fundamentals before buying")
		}
	case yoy < cfg.YoYDropPct:
		score -= cfg.YoYDropPoints
		facts = append(facts, fmt.Sprintf("fell %.1f%% over the last year", -yoy))
	case yoy > cfg.YoYSurgePct:
		score += cfg.YoYSurgePoints
		facts = append(facts, fmt.Sprintf("rose %.1f%% over the last year", yoy))
	case yoy > cfg.YoYRallyPct:
		score += cfg.YoYRallyPoints
		facts = append(facts, fmt.Sprintf("rose %.1f%% over the last year", yoy))
	}

	label := cfg.LabelFor(score)

	// For attractive labels the current price is already the entry point;
	// otherwise suggest a discount to the 12-month average.
	suggestedBuy := current
	if label == models.LabelCaution || label == models.LabelExpensive {
		suggestedBuy = avg12m * cfg.DiscountFactor
	}

	result := &models.Classification{
		Label:             label,
		Score:             score,
		Facts:             facts,
		HighRisk:          highRisk,
		CurrentPrice:      current,
		Avg12M:            avg12m,
		P20:               p20,
		P80:               p80,
		Min5Y:             min5y,
		Max5Y:             max5y,
		YoYChangePct:      yoy,
		RangePositionPct:  rangePos,
		SuggestedBuyPrice: suggestedBuy,
		ComputedAt:        now,
	}

	c.applyDividendMetrics(result, dividends, current, now)

	return result
}

// applyDividendMetrics fills the trailing yield and Bazin ceiling. Both
// stay nil unless real dividend data supports them; no fabricated values.
func (c *Classifier) applyDividendMetrics(result *models.Classification, dividends models.DividendHistory, current float64, now time.Time) {
	if len(dividends) == 0 {
		return
	}

	trailing := dividends.SumSince(now.AddDate(-1, 0, 0))

	if trailing > 0 && current > 0 {
		dy := trailing / current * 100
		result.DividendYieldPct = &dy
	}

	// Bazin ceiling: trailing-12-month dividends at the desired yield.
	// When the trailing window is empty fall back to the last four
	// distributions.
	basis := trailing
	if basis <= 0 {
		basis = dividends.SumLastN(4)
	}
	if basis > 0 && c.cfg.DesiredYieldPct > 0 {
		ceiling := basis / (c.cfg.DesiredYieldPct / 100)
		result.BazinCeiling = &ceiling
	}
}
