// Package market provides the market data service
package market

import (
	"context"
	"sync"
	"time"

	"github.com/carteiralab/carteira/internal/common"
	"github.com/carteiralab/carteira/internal/interfaces"
	"github.com/carteiralab/carteira/internal/models"
)

const defaultMaxWorkers = 5

// Service implements MarketService on top of a market-data gateway
// client, with per-ticker TTL memoization and bounded-concurrency
// batch fetches.
type Service struct {
	client     interfaces.MarketDataClient
	cache      *cache
	logger     *common.Logger
	maxWorkers int
}

var _ interfaces.MarketService = (*Service)(nil)

// NewService creates a new market service.
func NewService(client interfaces.MarketDataClient, logger *common.Logger, quoteTTL time.Duration, maxWorkers int) *Service {
	if maxWorkers <= 0 {
		maxWorkers = defaultMaxWorkers
	}
	return &Service{
		client:     client,
		cache:      newCache(quoteTTL),
		logger:     logger,
		maxWorkers: maxWorkers,
	}
}

// QuoteBatch resolves quotes for all tickers in parallel. A gateway
// failure for one ticker yields an unavailable quote for it; the batch
// as a whole always returns a full map.
func (s *Service) QuoteBatch(ctx context.Context, tickers []string) models.QuoteMap {
	quotes := make(models.QuoteMap, len(tickers))
	if len(tickers) == 0 {
		return quotes
	}

	// Serve fresh entries from the cache, fetch the rest.
	var misses []string
	for _, ticker := range tickers {
		ticker = models.NormalizeTicker(ticker)
		if _, seen := quotes[ticker]; seen {
			continue
		}
		if quote, ok := s.cache.getQuote(ticker); ok {
			quotes[ticker] = quote
			continue
		}
		quotes[ticker] = models.PriceQuote{Ticker: ticker}
		misses = append(misses, ticker)
	}
	if len(misses) == 0 {
		return quotes
	}

	sem := make(chan struct{}, s.maxWorkers)
	var wg sync.WaitGroup
	var mu sync.Mutex

	for _, ticker := range misses {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			break
		}
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		go func(ticker string) {
			defer wg.Done()
			defer func() { <-sem }()

			quote, err := s.client.GetQuote(ctx, ticker)
			if err != nil {
				s.logger.Warn().Str("ticker", ticker).Err(err).Msg("Quote fetch failed")
				return
			}
			s.cache.putQuote(ticker, *quote)
			mu.Lock()
			quotes[ticker] = *quote
			mu.Unlock()
		}(ticker)
	}

	wg.Wait()
	return quotes
}

// History returns the price history for one ticker, memoized for a day.
func (s *Service) History(ctx context.Context, ticker string) (models.PriceHistory, error) {
	ticker = models.NormalizeTicker(ticker)
	if history, ok := s.cache.getHistory(ticker); ok {
		return history, nil
	}

	history, err := s.client.GetPriceHistory(ctx, ticker)
	if err != nil {
		return nil, err
	}
	s.cache.putHistory(ticker, history)
	s.logger.Debug().Str("ticker", ticker).Int("points", len(history)).Msg("Fetched price history")
	return history, nil
}

// Dividends returns the dividend history for one ticker, memoized for a day.
func (s *Service) Dividends(ctx context.Context, ticker string) (models.DividendHistory, error) {
	ticker = models.NormalizeTicker(ticker)
	if dividends, ok := s.cache.getDividends(ticker); ok {
		return dividends, nil
	}

	dividends, err := s.client.GetDividends(ctx, ticker)
	if err != nil {
		return nil, err
	}
	s.cache.putDividends(ticker, dividends)
	return dividends, nil
}

// Invalidate drops memoized data for one ticker.
func (s *Service) Invalidate(ticker string) {
	s.cache.invalidate(models.NormalizeTicker(ticker))
}

// InvalidateAll drops all memoized data.
func (s *Service) InvalidateAll() {
	s.cache.invalidateAll()
}
