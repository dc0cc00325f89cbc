// Package brapi provides a client for the brapi.dev market-data API
package brapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/carteiralab/carteira/internal/common"
	"github.com/carteiralab/carteira/internal/models"
)

// flexFloat64 handles JSON values that may be either a number or a string.
type flexFloat64 float64

func (f *flexFloat64) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*f = flexFloat64(num)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" || s == "N/A" {
			*f = 0
			return nil
		}
		num, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = flexFloat64(num)
		return nil
	}
	return fmt.Errorf("cannot unmarshal %s into float64", string(data))
}

const (
	DefaultBaseURL   = "https://brapi.dev/api"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 5 // requests per second

	historyRange = "5y"
)

// Client talks to the brapi.dev quote endpoints.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new brapi client. The token may be empty for the
// free tier.
func NewClient(token string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents an API error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("brapi API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// get performs a rate-limited GET request
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	if params == nil {
		params = url.Values{}
	}
	if c.token != "" {
		params.Set("token", c.token)
	}

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug().Str("url", c.baseURL+path).Msg("brapi API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// quoteResponse is the envelope for the /quote endpoint.
type quoteResponse struct {
	Results []quoteResult `json:"results"`
}

type quoteResult struct {
	Symbol              string          `json:"symbol"`
	RegularMarketPrice  flexFloat64     `json:"regularMarketPrice"`
	RegularMarketTime   string          `json:"regularMarketTime"`
	HistoricalDataPrice []historicalBar `json:"historicalDataPrice"`
	DividendsData       *dividendsData  `json:"dividendsData"`
}

type historicalBar struct {
	Date          int64       `json:"date"` // unix seconds
	Close         flexFloat64 `json:"close"`
	AdjustedClose flexFloat64 `json:"adjustedClose"`
}

type dividendsData struct {
	CashDividends []cashDividend `json:"cashDividends"`
}

type cashDividend struct {
	PaymentDate string      `json:"paymentDate"`
	Rate        flexFloat64 `json:"rate"`
}

// fetchQuote calls /quote/{ticker} with the given extra params and
// returns the first result.
func (c *Client) fetchQuote(ctx context.Context, ticker string, params url.Values) (*quoteResult, error) {
	ticker = models.NormalizeTicker(ticker)
	path := fmt.Sprintf("/quote/%s", url.PathEscape(ticker))

	var resp quoteResponse
	if err := c.get(ctx, path, params, &resp); err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, fmt.Errorf("no data returned for %s", ticker)
	}
	return &resp.Results[0], nil
}

// GetQuote retrieves the latest trade price for a ticker.
func (c *Client) GetQuote(ctx context.Context, ticker string) (*models.PriceQuote, error) {
	result, err := c.fetchQuote(ctx, ticker, nil)
	if err != nil {
		return nil, err
	}

	asOf := time.Now()
	if t, err := time.Parse(time.RFC3339, result.RegularMarketTime); err == nil {
		asOf = t
	}

	return &models.PriceQuote{
		Ticker:    models.NormalizeTicker(ticker),
		Price:     float64(result.RegularMarketPrice),
		AsOf:      asOf,
		Available: true,
	}, nil
}

// GetPriceHistory retrieves up to five years of daily adjusted closes,
// oldest first.
func (c *Client) GetPriceHistory(ctx context.Context, ticker string) (models.PriceHistory, error) {
	params := url.Values{}
	params.Set("range", historyRange)
	params.Set("interval", "1d")

	result, err := c.fetchQuote(ctx, ticker, params)
	if err != nil {
		return nil, err
	}

	history := make(models.PriceHistory, 0, len(result.HistoricalDataPrice))
	for _, bar := range result.HistoricalDataPrice {
		adjClose := float64(bar.AdjustedClose)
		if adjClose == 0 {
			adjClose = float64(bar.Close)
		}
		if adjClose == 0 {
			continue
		}
		history = append(history, models.PricePoint{
			Date:     time.Unix(bar.Date, 0).UTC(),
			AdjClose: adjClose,
		})
	}

	sort.Slice(history, func(i, j int) bool {
		return history[i].Date.Before(history[j].Date)
	})

	return history, nil
}

// GetDividends retrieves the cash distributions per unit, oldest first.
func (c *Client) GetDividends(ctx context.Context, ticker string) (models.DividendHistory, error) {
	params := url.Values{}
	params.Set("dividends", "true")

	result, err := c.fetchQuote(ctx, ticker, params)
	if err != nil {
		return nil, err
	}

	if result.DividendsData == nil {
		return models.DividendHistory{}, nil
	}

	dividends := make(models.DividendHistory, 0, len(result.DividendsData.CashDividends))
	for _, div := range result.DividendsData.CashDividends {
		date, err := parseDividendDate(div.PaymentDate)
		if err != nil {
			continue
		}
		if div.Rate <= 0 {
			continue
		}
		dividends = append(dividends, models.DividendPayment{
			Date:   date,
			Amount: float64(div.Rate),
		})
	}

	sort.Slice(dividends, func(i, j int) bool {
		return dividends[i].Date.Before(dividends[j].Date)
	})

	return dividends, nil
}

// parseDividendDate accepts the date formats brapi has been seen to use.
func parseDividendDate(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %s", s)
}
