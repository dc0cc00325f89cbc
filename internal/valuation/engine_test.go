package valuation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carteiralab/carteira/internal/models"
)

func quote(ticker string, price float64) models.PriceQuote {
	return models.PriceQuote{Ticker: ticker, Price: price, AsOf: time.Now(), Available: true}
}

func TestValuate_SinglePosition(t *testing.T) {
	engine := NewEngine(nil)

	positions := []models.Position{
		{Ticker: "AAAA3", Quantity: 10, AvgCost: 100, AssetClass: models.AssetClassEquity},
	}
	quotes := models.QuoteMap{"AAAA3": quote("AAAA3", 150)}

	snapshot, err := engine.Valuate(positions, quotes, 1)
	require.NoError(t, err)
	require.Len(t, snapshot.Positions, 1)

	pv := snapshot.Positions[0]
	assert.InDelta(t, 1500.0, pv.MarketValue, 0.001)
	assert.InDelta(t, 1000.0, pv.CostBasis, 0.001)
	assert.InDelta(t, 500.0, pv.UnrealizedPnL, 0.001)
	assert.InDelta(t, 1.0, pv.Weight, 0.001)
	assert.False(t, pv.Stale)
	assert.Equal(t, 0, snapshot.StaleCount)
}

func TestValuate_WeightsSumToOne(t *testing.T) {
	engine := NewEngine(nil)

	positions := []models.Position{
		{Ticker: "AAAA3", Quantity: 10, AvgCost: 10, AssetClass: models.AssetClassEquity},
		{Ticker: "BBBB4", Quantity: 5, AvgCost: 20, AssetClass: models.AssetClassEquity},
		{Ticker: "CCCC11", Quantity: 7, AvgCost: 30, AssetClass: models.AssetClassFII},
	}
	quotes := models.QuoteMap{
		"AAAA3":  quote("AAAA3", 12.5),
		"BBBB4":  quote("BBBB4", 18.9),
		"CCCC11": quote("CCCC11", 33.1),
	}

	snapshot, err := engine.Valuate(positions, quotes, 1)
	require.NoError(t, err)

	sum := 0.0
	for _, pv := range snapshot.Positions {
		sum += pv.Weight
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestValuate_EmptyPortfolio(t *testing.T) {
	engine := NewEngine(nil)

	snapshot, err := engine.Valuate(nil, models.QuoteMap{}, 1)
	require.NoError(t, err)
	assert.Empty(t, snapshot.Positions)
	assert.Zero(t, snapshot.TotalMarketValue)
}

func TestValuate_MissingQuoteIsStaleNotError(t *testing.T) {
	engine := NewEngine(nil)

	positions := []models.Position{
		{Ticker: "AAAA3", Quantity: 10, AvgCost: 100, AssetClass: models.AssetClassEquity},
		{Ticker: "BBBB4", Quantity: 4, AvgCost: 25, AssetClass: models.AssetClassEquity},
	}
	quotes := models.QuoteMap{
		"AAAA3": quote("AAAA3", 150),
		// BBBB4 missing entirely
	}

	snapshot, err := engine.Valuate(positions, quotes, 1)
	require.NoError(t, err)
	require.Len(t, snapshot.Positions, 2)

	stale := snapshot.Positions[1]
	assert.True(t, stale.Stale)
	assert.Zero(t, stale.Price)
	assert.Zero(t, stale.MarketValue)
	// Zero-price position yields a PnL of exactly minus its cost basis.
	assert.InDelta(t, -100.0, stale.UnrealizedPnL, 0.001)
	assert.Equal(t, 1, snapshot.StaleCount)
}

func TestValuate_UnavailableQuoteIsStale(t *testing.T) {
	engine := NewEngine(nil)

	positions := []models.Position{
		{Ticker: "AAAA3", Quantity: 2, AvgCost: 50, AssetClass: models.AssetClassEquity},
	}
	quotes := models.QuoteMap{
		"AAAA3": {Ticker: "AAAA3", Price: 123, Available: false},
	}

	snapshot, err := engine.Valuate(positions, quotes, 1)
	require.NoError(t, err)
	assert.True(t, snapshot.Positions[0].Stale)
	assert.Zero(t, snapshot.Positions[0].MarketValue)
}

func TestValuate_FXAppliedToForeignOnly(t *testing.T) {
	engine := NewEngine(nil)

	positions := []models.Position{
		{Ticker: "PETR4", Quantity: 10, AvgCost: 30, AssetClass: models.AssetClassEquity},
		{Ticker: "AAPL", Quantity: 2, AvgCost: 500, AssetClass: models.AssetClassBDR},
	}
	quotes := models.QuoteMap{
		"PETR4": quote("PETR4", 38),
		"AAPL":  quote("AAPL", 200),
	}

	snapshot, err := engine.Valuate(positions, quotes, 5.0)
	require.NoError(t, err)

	domestic := snapshot.Positions[0]
	foreign := snapshot.Positions[1]
	assert.False(t, domestic.Foreign)
	assert.InDelta(t, 380.0, domestic.MarketValue, 0.001)
	assert.True(t, foreign.Foreign)
	assert.InDelta(t, 2000.0, foreign.MarketValue, 0.001) // 2 * 200 * 5
}

func TestValuate_CustomClassifier(t *testing.T) {
	everythingForeign := func(string) bool { return false }
	engine := NewEngine(everythingForeign)

	positions := []models.Position{
		{Ticker: "PETR4", Quantity: 1, AvgCost: 10, AssetClass: models.AssetClassEquity},
	}
	quotes := models.QuoteMap{"PETR4": quote("PETR4", 10)}

	snapshot, err := engine.Valuate(positions, quotes, 2.0)
	require.NoError(t, err)
	assert.InDelta(t, 20.0, snapshot.Positions[0].MarketValue, 0.001)
}

func TestValuate_InvalidInput(t *testing.T) {
	engine := NewEngine(nil)

	tests := []struct {
		name      string
		positions []models.Position
		quotes    models.QuoteMap
		fx        float64
	}{
		{
			name: "negative quantity",
			positions: []models.Position{
				{Ticker: "AAAA3", Quantity: -1, AvgCost: 10, AssetClass: models.AssetClassEquity},
			},
			quotes: models.QuoteMap{},
			fx:     1,
		},
		{
			name: "zero average cost",
			positions: []models.Position{
				{Ticker: "AAAA3", Quantity: 1, AvgCost: 0, AssetClass: models.AssetClassEquity},
			},
			quotes: models.QuoteMap{},
			fx:     1,
		},
		{
			name: "negative quoted price",
			positions: []models.Position{
				{Ticker: "AAAA3", Quantity: 1, AvgCost: 10, AssetClass: models.AssetClassEquity},
			},
			quotes: models.QuoteMap{"AAAA3": quote("AAAA3", -5)},
			fx:     1,
		},
		{
			name:   "zero fx rate",
			quotes: models.QuoteMap{},
			fx:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Valuate(tt.positions, tt.quotes, tt.fx)
			assert.ErrorIs(t, err, models.ErrInvalidInput)
		})
	}
}
