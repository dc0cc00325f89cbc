package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPosition(ticker string) *Position {
	return &Position{
		UserID:     "user1",
		Ticker:     ticker,
		Quantity:   10,
		AvgCost:    30,
		AssetClass: AssetClassEquity,
	}
}

func TestPosition_Validate_AcceptedTickers(t *testing.T) {
	tests := []struct {
		name   string
		ticker string
	}{
		{"common share", "PETR4"},
		{"ordinary share", "VALE3"},
		{"preferred class 5", "USIM5"},
		{"preferred class 6", "CPLE6"},
		{"preferred class 6 utility", "ELET6"},
		{"fii unit", "HGLG11"},
		{"bdr", "AAPL34"},
		{"bdr microsoft", "MSFT34"},
		{"foreign symbol", "AAPL"},
		{"crypto symbol", "BTC"},
		{"lowercase normalized", "petr4"},
		{"padded", "  HGLG11 "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, validPosition(tt.ticker).Validate())
		})
	}
}

func TestPosition_Validate_RejectedTickers(t *testing.T) {
	tests := []struct {
		name   string
		ticker string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"spaces inside", "not a ticker"},
		{"too many letters", "TOOLONGED"},
		{"digits first", "4PETR"},
		{"three digit suffix", "PETR345"},
		{"punctuation", "PETR-4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, validPosition(tt.ticker).Validate(), ErrInvalidInput)
		})
	}
}

func TestPosition_Validate_FieldInvariants(t *testing.T) {
	p := validPosition("PETR4")
	p.Quantity = -1
	assert.ErrorIs(t, p.Validate(), ErrInvalidInput)

	p = validPosition("PETR4")
	p.AvgCost = 0
	assert.ErrorIs(t, p.Validate(), ErrInvalidInput)

	p = validPosition("PETR4")
	p.AssetClass = "mystery"
	assert.ErrorIs(t, p.Validate(), ErrInvalidInput)
}

func TestParseAssetClass(t *testing.T) {
	ac, err := ParseAssetClass(" Equity ")
	require.NoError(t, err)
	assert.Equal(t, AssetClassEquity, ac)

	_, err = ParseAssetClass("bond")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestIsDomesticB3(t *testing.T) {
	assert.True(t, IsDomesticB3("PETR4"))
	assert.True(t, IsDomesticB3("CPLE6"))
	assert.True(t, IsDomesticB3("HGLG11"))
	assert.True(t, IsDomesticB3("AAPL34"))
	assert.False(t, IsDomesticB3("AAPL"))
	assert.False(t, IsDomesticB3("BTC"))
}
