package market

import (
	"sync"
	"time"

	"github.com/carteiralab/carteira/internal/common"
	"github.com/carteiralab/carteira/internal/models"
)

type cachedQuote struct {
	quote     models.PriceQuote
	fetchedAt time.Time
}

type cachedHistory struct {
	history   models.PriceHistory
	fetchedAt time.Time
}

type cachedDividends struct {
	dividends models.DividendHistory
	fetchedAt time.Time
}

// cache memoizes gateway responses per ticker with independent TTLs.
// It is safe for concurrent use by the batch worker pool.
type cache struct {
	mu        sync.RWMutex
	quoteTTL  time.Duration
	quotes    map[string]cachedQuote
	histories map[string]cachedHistory
	dividends map[string]cachedDividends
}

func newCache(quoteTTL time.Duration) *cache {
	if quoteTTL <= 0 {
		quoteTTL = common.FreshnessQuote
	}
	return &cache{
		quoteTTL:  quoteTTL,
		quotes:    make(map[string]cachedQuote),
		histories: make(map[string]cachedHistory),
		dividends: make(map[string]cachedDividends),
	}
}

func (c *cache) getQuote(ticker string) (models.PriceQuote, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.quotes[ticker]
	if !ok || !common.IsFresh(entry.fetchedAt, c.quoteTTL) {
		return models.PriceQuote{}, false
	}
	return entry.quote, true
}

func (c *cache) putQuote(ticker string, quote models.PriceQuote) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.quotes[ticker] = cachedQuote{quote: quote, fetchedAt: time.Now()}
}

func (c *cache) getHistory(ticker string) (models.PriceHistory, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.histories[ticker]
	if !ok || !common.IsFresh(entry.fetchedAt, common.FreshnessHistory) {
		return nil, false
	}
	return entry.history, true
}

func (c *cache) putHistory(ticker string, history models.PriceHistory) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.histories[ticker] = cachedHistory{history: history, fetchedAt: time.Now()}
}

func (c *cache) getDividends(ticker string) (models.DividendHistory, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.dividends[ticker]
	if !ok || !common.IsFresh(entry.fetchedAt, common.FreshnessDividends) {
		return nil, false
	}
	return entry.dividends, true
}

func (c *cache) putDividends(ticker string, dividends models.DividendHistory) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dividends[ticker] = cachedDividends{dividends: dividends, fetchedAt: time.Now()}
}

func (c *cache) invalidate(ticker string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.quotes, ticker)
	delete(c.histories, ticker)
	delete(c.dividends, ticker)
}

func (c *cache) invalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.quotes = make(map[string]cachedQuote)
	c.histories = make(map[string]cachedHistory)
	c.dividends = make(map[string]cachedDividends)
}
