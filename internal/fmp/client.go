// Package fmp is the HTTP client for the Financial Modeling Prep API, the
// upstream provider of ticker lists, fundamentals, and quotes.
//
// Every call carries a timeout and retries transient failures (network
// errors, 5xx, 429) with capped exponential backoff. Non-retryable HTTP
// statuses fail immediately. Rate limiting is handled by the caller keeping
// its worker pool small, not here.
package fmp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Client is the upstream-provider contract the ingestion pipeline depends on.
// Tests substitute a stub.
type Client interface {
	StockList(ctx context.Context) ([]ListedStock, error)
	Profile(ctx context.Context, ticker string) (*Profile, error)
	IncomeStatements(ctx context.Context, ticker string, limit int) ([]IncomeStatement, error)
	KeyMetrics(ctx context.Context, ticker string, limit int) ([]KeyMetrics, error)
	BatchQuotes(ctx context.Context, tickers []string) ([]Quote, error)
}

// HTTPClient talks to the real FMP REST API.
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client

	// maxElapsed caps the whole retry budget of a single logical call.
	maxElapsed time.Duration
}

// NewHTTPClient builds a client for the given base URL and API key.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		maxElapsed: 20 * time.Second,
	}
}

var _ Client = (*HTTPClient)(nil)

// StockList returns the full universe of tradeable instruments.
func (c *HTTPClient) StockList(ctx context.Context) ([]ListedStock, error) {
	var out []ListedStock
	if err := c.get(ctx, "/v3/stock/list", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Profile returns company identity data (country, sector, industry). A ticker
// FMP does not know yields nil, not an error.
func (c *HTTPClient) Profile(ctx context.Context, ticker string) (*Profile, error) {
	var out []Profile
	if err := c.get(ctx, "/v3/profile/"+url.PathEscape(ticker), nil, &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return &out[0], nil
}

// IncomeStatements returns up to limit annual income statements, most recent
// first.
func (c *HTTPClient) IncomeStatements(ctx context.Context, ticker string, limit int) ([]IncomeStatement, error) {
	q := url.Values{"period": {"annual"}, "limit": {fmt.Sprint(limit)}}
	var out []IncomeStatement
	if err := c.get(ctx, "/v3/income-statement/"+url.PathEscape(ticker), q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// KeyMetrics returns up to limit annual key-metric rows, most recent first.
func (c *HTTPClient) KeyMetrics(ctx context.Context, ticker string, limit int) ([]KeyMetrics, error) {
	q := url.Values{"period": {"annual"}, "limit": {fmt.Sprint(limit)}}
	var out []KeyMetrics
	if err := c.get(ctx, "/v3/key-metrics/"+url.PathEscape(ticker), q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// BatchQuotes fetches quotes for up to ~50 tickers in one call.
func (c *HTTPClient) BatchQuotes(ctx context.Context, tickers []string) ([]Quote, error) {
	if len(tickers) == 0 {
		return nil, nil
	}
	var out []Quote
	if err := c.get(ctx, "/v3/quote/"+url.PathEscape(strings.Join(tickers, ",")), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// get performs one GET with API-key injection and capped-backoff retry on
// transient failures.
func (c *HTTPClient) get(ctx context.Context, path string, query url.Values, out any) error {
	if query == nil {
		query = url.Values{}
	}
	query.Set("apikey", c.apiKey)
	endpoint := c.baseURL + path + "?" + query.Encode()

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			// Network-level failure: retryable.
			return fmt.Errorf("fmp get %s: %w", path, err)
		}
		defer func() { _ = resp.Body.Close() }()

		switch {
		case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
			_, _ = io.Copy(io.Discard, resp.Body)
			return fmt.Errorf("fmp get %s: status %d", path, resp.StatusCode)
		case resp.StatusCode != http.StatusOK:
			_, _ = io.Copy(io.Discard, resp.Body)
			return backoff.Permanent(fmt.Errorf("fmp get %s: status %d", path, resp.StatusCode))
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return backoff.Permanent(fmt.Errorf("fmp get %s: decode: %w", path, err))
		}
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 250 * time.Millisecond
	policy.MaxInterval = 5 * time.Second
	policy.MaxElapsedTime = c.maxElapsed

	return backoff.Retry(operation, backoff.WithContext(policy, ctx))
}
