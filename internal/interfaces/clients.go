// Package interfaces defines service and client contracts for Carteira
package interfaces

import (
	"context"

	"github.com/carteiralab/carteira/internal/models"
)

// MarketDataClient is the external market-data gateway: latest prices,
// historical series and dividend series per ticker. Implementations talk
// to a remote provider; a failed lookup is an error here and becomes an
// unavailable quote or empty series at the service layer.
type MarketDataClient interface {
	// GetQuote returns the latest trade price for a ticker.
	GetQuote(ctx context.Context, ticker string) (*models.PriceQuote, error)

	// GetPriceHistory returns up to five years of adjusted closes,
	// oldest first. An empty series means no data exists.
	GetPriceHistory(ctx context.Context, ticker string) (models.PriceHistory, error)

	// GetDividends returns the cash distributions per unit, oldest first.
	GetDividends(ctx context.Context, ticker string) (models.DividendHistory, error)
}
