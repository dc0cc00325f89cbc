package signals

import "github.com/carteiralab/carteira/internal/models"

// ScoreConfig holds the additive point system and label thresholds for
// the cheap/expensive classification. Kept as configuration rather than
// inline constants so the table can be tuned and tested in one place.
type ScoreConfig struct {
	// Current price vs trailing 12-month average.
	AvgDeepBandPct     float64 // 0.15: more than 15% away from the average
	AvgModerateBandPct float64 // 0.10
	AvgDeepPoints      int     // 25
	AvgModeratePoints  int     // 20
	AvgAnyPoints       int     // 10

	// Percentile extremes over the full series. Strict comparison:
	// exactly at p20/p80 scores nothing.
	PercentilePoints int // 30

	// Position within the historical min/max band (0-100).
	RangeDeepLowPct   float64 // 15
	RangeLowPct       float64 // 30
	RangeHighPct      float64 // 70
	RangeDeepHighPct  float64 // 85
	RangeDeepPoints   int     // 25
	RangeEdgePoints   int     // 15

	// Year-over-year change.
	YoYCrashPct    float64 // -20
	YoYDropPct     float64 // -10
	YoYRallyPct    float64 // 30
	YoYSurgePct    float64 // 50
	YoYCrashPoints int     // 20
	YoYDropPoints  int     // 10
	YoYRallyPoints int     // 15
	YoYSurgePoints int     // 25
	HighRiskYoYPct float64 // -50: flags a high-risk alert on top of the points

	// Label thresholds, exclusive upper bounds evaluated in ascending
	// order; anything above CautionMax is expensive.
	OpportunityMax int // -40
	CheapMax       int // -20
	NeutralMax     int // 0
	CautionMax     int // 20

	// Pricing parameters.
	DiscountFactor  float64 // suggested buy price for caution/expensive: avg12m * 0.9
	DesiredYieldPct float64 // Bazin ceiling target yield

	// Windows, in trading days.
	TrailingWindow int // 252
	YoYLookback    int // 252
}

// DefaultScoreConfig returns the reference scoring table.
func DefaultScoreConfig() ScoreConfig {
	return ScoreConfig{
		AvgDeepBandPct:     0.15,
		AvgModerateBandPct: 0.10,
		AvgDeepPoints:      25,
		AvgModeratePoints:  20,
		AvgAnyPoints:       10,

		PercentilePoints: 30,

		RangeDeepLowPct:  15,
		RangeLowPct:      30,
		RangeHighPct:     70,
		RangeDeepHighPct: 85,
		RangeDeepPoints:  25,
		RangeEdgePoints:  15,

		YoYCrashPct:    -20,
		YoYDropPct:     -10,
		YoYRallyPct:    30,
		YoYSurgePct:    50,
		YoYCrashPoints: 20,
		YoYDropPoints:  10,
		YoYRallyPoints: 15,
		YoYSurgePoints: 25,
		HighRiskYoYPct: -50,

		OpportunityMax: -40,
		CheapMax:       -20,
		NeutralMax:     0,
		CautionMax:     20,

		DiscountFactor:  0.9,
		DesiredYieldPct: 6,

		TrailingWindow: 252,
		YoYLookback:    252,
	}
}

// LabelFor maps a total score to its valuation label. First match wins.
func (c ScoreConfig) LabelFor(score int) models.ValuationLabel {
	switch {
	case score <= c.OpportunityMax:
		return models.LabelOpportunity
	case score <= c.CheapMax:
		return models.LabelCheap
	case score <= c.NeutralMax:
		return models.LabelNeutral
	case score <= c.CautionMax:
		return models.LabelCaution
	default:
		return models.LabelExpensive
	}
}
