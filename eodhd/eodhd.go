// Package eodhd implements holdings.MarketData with the EOD Historical Data API.
//
// Responses are cached on disk for the day, a portfolio analyzed twice the
// same day costs a single set of API calls.
package eodhd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/etnz/holdings"
	"github.com/etnz/holdings/date"
	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the EODHD API host.
const DefaultBaseURL = "https://eodhd.com"

// lookback is the number of days searched for the latest close.
const lookback = 10

// Client is an EODHD market data client.
type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

var _ holdings.MarketData = (*Client)(nil)

// NewClient returns a Client using apiKey, caching responses in cacheDir
// (empty for the system temporary directory).
func NewClient(apiKey, cacheDir string) *Client {
	return &Client{
		APIKey:     apiKey,
		BaseURL:    DefaultBaseURL,
		HTTPClient: holdings.NewDailyClient(cacheDir),
	}
}

func (c *Client) baseURL() string {
	if c.BaseURL == "" {
		return DefaultBaseURL
	}
	return c.BaseURL
}

func (c *Client) get(ctx context.Context, addr string, data any) error {
	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	err := holdings.GetJSON(ctx, client, addr, data)
	var status *holdings.StatusError
	if errors.As(err, &status) && status.Code == http.StatusNotFound {
		return fmt.Errorf("%w: %v", holdings.ErrNoProviderData, err)
	}
	return err
}

// Ticker returns the EODHD ticker of symbol: plain symbols are US listed.
func Ticker(symbol string) string {
	if strings.Contains(symbol, ".") {
		return symbol
	}
	return symbol + ".US"
}

// LatestPrice returns the most recent close of symbol.
func (c *Client) LatestPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	to := date.Today()
	records, err := c.fetchEOD(ctx, Ticker(symbol), to.Add(-lookback), to)
	if err != nil {
		return decimal.Decimal{}, err
	}
	var latest *eodRecord
	for i := range records {
		if latest == nil || records[i].Date.After(latest.Date) {
			latest = &records[i]
		}
	}
	if latest == nil {
		return decimal.Decimal{}, fmt.Errorf("%w for %s", holdings.ErrNoProviderData, symbol)
	}
	return latest.Close, nil
}

// Expirations lists the option expirations of root.
func (c *Client) Expirations(ctx context.Context, root string) ([]date.Date, error) {
	data, err := c.fetchOptions(ctx, Ticker(root))
	if err != nil {
		return nil, err
	}
	exps := make([]date.Date, 0, len(data))
	for _, e := range data {
		exps = append(exps, e.ExpirationDate)
	}
	return exps, nil
}

// OptionChain returns the chain of root at expiration.
func (c *Client) OptionChain(ctx context.Context, root string, expiration date.Date) (*holdings.Chain, error) {
	data, err := c.fetchOptions(ctx, Ticker(root))
	if errors.Is(err, holdings.ErrNoProviderData) {
		return nil, fmt.Errorf("%w: %v", holdings.ErrChainNotFound, err)
	}
	if err != nil {
		return nil, err
	}
	for _, e := range data {
		if e.ExpirationDate != expiration {
			continue
		}
		chain := &holdings.Chain{Root: root, Expiration: expiration}
		for _, o := range e.Options.Calls {
			chain.Calls = append(chain.Calls, o.quote())
		}
		for _, o := range e.Options.Puts {
			chain.Puts = append(chain.Puts, o.quote())
		}
		return chain, nil
	}
	return nil, fmt.Errorf("%w: %s on %s", holdings.ErrChainNotFound, root, expiration.USString())
}
