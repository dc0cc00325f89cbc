package signals

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carteiralab/carteira/internal/models"
)

func fixedClock() func() time.Time {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return now }
}

func newTestClassifier() *Classifier {
	return NewClassifier(DefaultScoreConfig(), WithClock(fixedClock()))
}

func TestClassify_EmptySeriesSentinel(t *testing.T) {
	c := newTestClassifier()

	result := c.Classify(nil, nil)
	require.NotNil(t, result)
	assert.True(t, result.InsufficientData)
	assert.Equal(t, models.LabelNeutral, result.Label)
	assert.Zero(t, result.Score)
	assert.Nil(t, result.BazinCeiling)
	assert.Nil(t, result.DividendYieldPct)
}

func TestClassify_Idempotent(t *testing.T) {
	c := newTestClassifier()
	hist := series([]float64{100, 100, 100, 100, 100, 100, 100, 100, 100, 95})

	first := c.Classify(hist, nil)
	second := c.Classify(hist, nil)
	assert.Equal(t, first, second)
}

func TestClassify_FlatSeriesIsNeutral(t *testing.T) {
	c := newTestClassifier()
	hist := series([]float64{10, 10, 10, 10})

	result := c.Classify(hist, nil)
	assert.Equal(t, models.LabelNeutral, result.Label)
	assert.Zero(t, result.Score)
	// Exactly at p20: the strict comparator must not award percentile
	// points.
	assert.InDelta(t, result.P20, result.CurrentPrice, 0.001)
	assert.Empty(t, result.Facts)
	// Flat range falls back to the midpoint.
	assert.InDelta(t, 50.0, result.RangePositionPct, 0.001)
	// Attractive label keeps the current price as the entry point.
	assert.InDelta(t, 10.0, result.SuggestedBuyPrice, 0.001)
}

func TestClassify_DipBelowPercentileScoresOpportunity(t *testing.T) {
	c := newTestClassifier()
	// Nine closes at 100, then a dip to 95: below average (-10), below
	// p20 (-30), at the bottom of the range (-25).
	hist := series([]float64{100, 100, 100, 100, 100, 100, 100, 100, 100, 95})

	result := c.Classify(hist, nil)
	assert.Equal(t, -65, result.Score)
	assert.Equal(t, models.LabelOpportunity, result.Label)
	assert.InDelta(t, 95.0, result.SuggestedBuyPrice, 0.001)
	assert.False(t, result.HighRisk)
}

func TestClassify_SustainedRallyIsExpensive(t *testing.T) {
	c := newTestClassifier()
	// 300 points climbing from 10 to 40: above average, above p80, top
	// of the range, and a large year-over-year gain.
	closes := make([]float64, 300)
	for i := range closes {
		closes[i] = 10 + float64(i)*0.1
	}
	hist := series(closes)

	result := c.Classify(hist, nil)
	assert.Equal(t, models.LabelExpensive, result.Label)
	assert.Greater(t, result.Score, 20)
	// Expensive labels target a discount to the 12-month average.
	assert.InDelta(t, result.Avg12M*0.9, result.SuggestedBuyPrice, 0.001)
}

func TestClassify_CrashFlagsHighRisk(t *testing.T) {
	c := newTestClassifier()
	// 300 points falling from 100 to 40: over 50% down year over year.
	closes := make([]float64, 300)
	for i := range closes {
		closes[i] = 100 - float64(i)*0.2
	}
	hist := series(closes)

	result := c.Classify(hist, nil)
	assert.True(t, result.HighRisk)
	assert.Less(t, result.YoYChangePct, -50.0)
	assert.Equal(t, models.LabelOpportunity, result.Label)
}

func TestClassify_DividendMetrics(t *testing.T) {
	c := newTestClassifier()
	hist := series([]float64{20, 20, 20})

	now := fixedClock()()
	dividends := models.DividendHistory{
		{Date: now.AddDate(0, -10, 0), Amount: 0.5},
		{Date: now.AddDate(0, -7, 0), Amount: 0.5},
		{Date: now.AddDate(0, -4, 0), Amount: 0.5},
		{Date: now.AddDate(0, -1, 0), Amount: 0.5},
	}

	result := c.Classify(hist, dividends)
	require.NotNil(t, result.DividendYieldPct)
	assert.InDelta(t, 10.0, *result.DividendYieldPct, 0.001) // 2.0 / 20 * 100
	require.NotNil(t, result.BazinCeiling)
	assert.InDelta(t, 2.0/0.06, *result.BazinCeiling, 0.001)
}

func TestClassify_StaleDividendsFallBackToLastFour(t *testing.T) {
	c := newTestClassifier()
	hist := series([]float64{20, 20, 20})

	now := fixedClock()()
	dividends := models.DividendHistory{
		{Date: now.AddDate(-3, 0, 0), Amount: 1.0},
		{Date: now.AddDate(-2, -6, 0), Amount: 1.0},
		{Date: now.AddDate(-2, 0, 0), Amount: 1.0},
	}

	result := c.Classify(hist, dividends)
	// No trailing-12-month income: yield stays nil, ceiling falls back
	// to the last distributions.
	assert.Nil(t, result.DividendYieldPct)
	require.NotNil(t, result.BazinCeiling)
	assert.InDelta(t, 3.0/0.06, *result.BazinCeiling, 0.001)
}

func TestClassify_NoDividendsNoCeiling(t *testing.T) {
	c := newTestClassifier()
	hist := series([]float64{20, 20, 20})

	result := c.Classify(hist, nil)
	assert.Nil(t, result.BazinCeiling)
	assert.Nil(t, result.DividendYieldPct)
}
