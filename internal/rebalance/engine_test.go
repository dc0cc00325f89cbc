package rebalance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carteiralab/carteira/internal/models"
)

func snapshotOf(positions ...models.PositionValuation) *models.ValuationSnapshot {
	s := &models.ValuationSnapshot{Positions: positions, FXRate: 1}
	for _, p := range positions {
		s.TotalMarketValue += p.MarketValue
	}
	return s
}

func TestSuggest_EqualWeight(t *testing.T) {
	engine := NewEngine()

	snapshot := snapshotOf(
		models.PositionValuation{Ticker: "AAAA3", AssetClass: models.AssetClassEquity, MarketValue: 1500},
		models.PositionValuation{Ticker: "BBBB4", AssetClass: models.AssetClassEquity, MarketValue: 500},
	)

	suggestions, err := engine.Suggest(snapshot, 400, nil)
	require.NoError(t, err)

	// Goal is (2000+400)/2 = 1200. AAAA3 is above goal and omitted;
	// BBBB4 needs the full computed gap, which may exceed the capital
	// by contract in equal-weight mode.
	require.Len(t, suggestions, 1)
	assert.Equal(t, "BBBB4", suggestions[0].Target)
	assert.InDelta(t, 1200.0, suggestions[0].DesiredValue, 0.001)
	assert.InDelta(t, 700.0, suggestions[0].Amount, 0.001)
}

func TestSuggest_EqualWeightNeverNegative(t *testing.T) {
	engine := NewEngine()

	snapshot := snapshotOf(
		models.PositionValuation{Ticker: "AAAA3", MarketValue: 100},
		models.PositionValuation{Ticker: "BBBB4", MarketValue: 5000},
		models.PositionValuation{Ticker: "CCCC11", MarketValue: 300},
	)

	suggestions, err := engine.Suggest(snapshot, 100, nil)
	require.NoError(t, err)
	for _, s := range suggestions {
		assert.Greater(t, s.Amount, 0.0)
	}
}

func TestSuggest_EqualWeightOrdering(t *testing.T) {
	engine := NewEngine()

	snapshot := snapshotOf(
		models.PositionValuation{Ticker: "BBBB4", MarketValue: 100},
		models.PositionValuation{Ticker: "AAAA3", MarketValue: 100},
		models.PositionValuation{Ticker: "CCCC11", MarketValue: 400},
	)

	suggestions, err := engine.Suggest(snapshot, 0, nil)
	require.NoError(t, err)
	require.Len(t, suggestions, 2)
	// Equal amounts break ties lexically by ticker.
	assert.Equal(t, "AAAA3", suggestions[0].Target)
	assert.Equal(t, "BBBB4", suggestions[1].Target)
}

func TestSuggest_TargetWeightCappedAtCapital(t *testing.T) {
	engine := NewEngine()

	snapshot := snapshotOf(
		models.PositionValuation{Ticker: "AAAA3", AssetClass: models.AssetClassEquity, MarketValue: 1000},
		models.PositionValuation{Ticker: "HGLG11", AssetClass: models.AssetClassFII, MarketValue: 200},
	)
	targets := models.AllocationTargets{
		string(models.AssetClassEquity): 50,
		string(models.AssetClassFII):    50,
	}

	suggestions, err := engine.Suggest(snapshot, 100, targets)
	require.NoError(t, err)

	total := 0.0
	for _, s := range suggestions {
		assert.Greater(t, s.Amount, 0.0)
		total += s.Amount
	}
	assert.LessOrEqual(t, total, 100.0+1e-9)
	// Only the FII class is under target: equity already exceeds its
	// desired 650.
	require.Len(t, suggestions, 1)
	assert.Equal(t, string(models.AssetClassFII), suggestions[0].Target)
	assert.InDelta(t, 100.0, suggestions[0].Amount, 0.001)
}

func TestSuggest_TargetWeightProportionalScaling(t *testing.T) {
	engine := NewEngine()

	snapshot := snapshotOf(
		models.PositionValuation{Ticker: "AAAA3", AssetClass: models.AssetClassEquity, MarketValue: 1000},
	)
	// FII wants 550 and crypto 330 of the projected 1100, but only 100
	// of new capital exists: both gaps scale by the same 100/880 factor.
	targets := models.AllocationTargets{
		string(models.AssetClassFII):    50,
		string(models.AssetClassCrypto): 30,
	}

	suggestions, err := engine.Suggest(snapshot, 100, targets)
	require.NoError(t, err)
	require.Len(t, suggestions, 2)
	total := 0.0
	for _, s := range suggestions {
		total += s.Amount
	}
	assert.InDelta(t, 100.0, total, 0.001)
	assert.Equal(t, string(models.AssetClassFII), suggestions[0].Target)
	assert.InDelta(t, 550.0/880.0*100.0, suggestions[0].Amount, 0.001)
	assert.InDelta(t, 330.0/880.0*100.0, suggestions[1].Amount, 0.001)
}

func TestSuggest_TargetWeightByTicker(t *testing.T) {
	engine := NewEngine()

	snapshot := snapshotOf(
		models.PositionValuation{Ticker: "AAAA3", AssetClass: models.AssetClassEquity, MarketValue: 100},
		models.PositionValuation{Ticker: "BBBB4", AssetClass: models.AssetClassEquity, MarketValue: 300},
	)
	targets := models.AllocationTargets{"AAAA3": 50}

	suggestions, err := engine.Suggest(snapshot, 0, targets)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "AAAA3", suggestions[0].Target)
	assert.InDelta(t, 100.0, suggestions[0].Amount, 0.001) // 400*0.5 - 100
}

func TestSuggest_EmptyPortfolio(t *testing.T) {
	engine := NewEngine()

	suggestions, err := engine.Suggest(&models.ValuationSnapshot{}, 1000, nil)
	require.NoError(t, err)
	assert.Empty(t, suggestions)

	suggestions, err = engine.Suggest(nil, 1000, nil)
	require.NoError(t, err)
	assert.Empty(t, suggestions)
}

func TestSuggest_InvalidInput(t *testing.T) {
	engine := NewEngine()
	snapshot := snapshotOf(models.PositionValuation{Ticker: "AAAA3", MarketValue: 100})

	_, err := engine.Suggest(snapshot, -1, nil)
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = engine.Suggest(snapshot, 100, models.AllocationTargets{"equity": 150})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}
