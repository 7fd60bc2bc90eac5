// Package yahoo implements holdings.MarketData on top of the public Yahoo
// Finance chart and options endpoints.
package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/holdings"
	"github.com/etnz/holdings/date"
	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the Yahoo Finance query host.
const DefaultBaseURL = "https://query2.finance.yahoo.com"

// DefaultUserAgent is sent with every request, Yahoo rejects empty agents.
const DefaultUserAgent = "Mozilla/5.0 (compatible; pfa/1.0)"

// Client is a Yahoo Finance market data client. Its zero value is usable.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	UserAgent  string
}

// NewClient returns a Client with default settings.
func NewClient() *Client {
	return &Client{BaseURL: DefaultBaseURL, UserAgent: DefaultUserAgent}
}

var _ holdings.MarketData = (*Client)(nil)

func (c *Client) baseURL() string {
	if c.BaseURL == "" {
		return DefaultBaseURL
	}
	return c.BaseURL
}

// httpClient wraps the configured client so that every request carries the User-Agent.
func (c *Client) httpClient() *http.Client {
	base := c.HTTPClient
	if base == nil {
		base = http.DefaultClient
	}
	ua := c.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	client := *base
	client.Transport = &userAgent{base: base.Transport, agent: ua}
	return &client
}

type userAgent struct {
	base  http.RoundTripper
	agent string
}

func (u *userAgent) RoundTrip(req *http.Request) (*http.Response, error) {
	base := u.base
	if base == nil {
		base = http.DefaultTransport
	}
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", u.agent)
	return base.RoundTrip(req)
}

// get fetches addr into data. A 404 means Yahoo does not know the symbol.
func (c *Client) get(ctx context.Context, addr string, data any) error {
	err := holdings.GetJSON(ctx, c.httpClient(), addr, data)
	var status *holdings.StatusError
	if errors.As(err, &status) && status.Code == http.StatusNotFound {
		return fmt.Errorf("%w: %v", holdings.ErrNoProviderData, err)
	}
	return err
}

// LatestPrice returns the regular market price of symbol, or the last close
// of the day when the market price is missing.
func (c *Client) LatestPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?range=1d&interval=1d", c.baseURL(), url.PathEscape(symbol))
	var jobj any
	if err := c.get(ctx, addr, &jobj); err != nil {
		return decimal.Decimal{}, err
	}
	price, ok := latestPrice(jobj)
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w for %s", holdings.ErrNoProviderData, symbol)
	}
	return price, nil
}

// latestPrice extracts the price from a chart response.
func latestPrice(jobj any) (decimal.Decimal, bool) {
	if v, err := jsonpath.Get("$.chart.result[0].meta.regularMarketPrice", jobj); err == nil {
		if f, ok := v.(float64); ok && f > 0 {
			return decimal.NewFromFloat(f), true
		}
	}
	v, err := jsonpath.Get("$.chart.result[0].indicators.quote[0].close", jobj)
	if err != nil {
		return decimal.Decimal{}, false
	}
	closes, ok := v.([]any)
	if !ok {
		return decimal.Decimal{}, false
	}
	// the last non null close is the most recent one.
	for i := len(closes) - 1; i >= 0; i-- {
		if f, ok := closes[i].(float64); ok {
			return decimal.NewFromFloat(f), true
		}
	}
	return decimal.Decimal{}, false
}

// optionsResponse is the subset of /v7/finance/options used here.
type optionsResponse struct {
	OptionChain struct {
		Result []struct {
			UnderlyingSymbol string  `json:"underlyingSymbol"`
			ExpirationDates  []int64 `json:"expirationDates"`
			Options          []struct {
				ExpirationDate int64         `json:"expirationDate"`
				Calls          []optionQuote `json:"calls"`
				Puts           []optionQuote `json:"puts"`
			} `json:"options"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"optionChain"`
}

type optionQuote struct {
	ContractSymbol string   `json:"contractSymbol"`
	Strike         float64  `json:"strike"`
	LastPrice      *float64 `json:"lastPrice"`
	Bid            *float64 `json:"bid"`
	Ask            *float64 `json:"ask"`
}

func (q optionQuote) quote() holdings.OptionQuote {
	return holdings.OptionQuote{
		Strike: decimal.NewFromFloat(q.Strike),
		Last:   holdings.NullFloat(q.LastPrice),
		Bid:    holdings.NullFloat(q.Bid),
		Ask:    holdings.NullFloat(q.Ask),
	}
}

func (c *Client) options(ctx context.Context, root string, expiration date.Date) (*optionsResponse, error) {
	addr := fmt.Sprintf("%s/v7/finance/options/%s", c.baseURL(), url.PathEscape(root))
	if !expiration.IsZero() {
		addr += fmt.Sprintf("?date=%d", expiration.Unix())
	}
	var resp optionsResponse
	if err := c.get(ctx, addr, &resp); err != nil {
		return nil, err
	}
	if e := resp.OptionChain.Error; e != nil {
		return nil, fmt.Errorf("%w: %s: %s", holdings.ErrNoProviderData, e.Code, e.Description)
	}
	if len(resp.OptionChain.Result) == 0 {
		return nil, fmt.Errorf("%w: no options for %s", holdings.ErrNoProviderData, root)
	}
	return &resp, nil
}

// Expirations lists the option expirations of root.
func (c *Client) Expirations(ctx context.Context, root string) ([]date.Date, error) {
	resp, err := c.options(ctx, root, date.Date{})
	if err != nil {
		return nil, err
	}
	var exps []date.Date
	for _, ts := range resp.OptionChain.Result[0].ExpirationDates {
		exps = append(exps, date.FromUnix(ts))
	}
	return exps, nil
}

// OptionChain returns the chain of root at expiration. It fails with
// holdings.ErrChainNotFound when Yahoo has nothing listed on that day.
func (c *Client) OptionChain(ctx context.Context, root string, expiration date.Date) (*holdings.Chain, error) {
	resp, err := c.options(ctx, root, expiration)
	if errors.Is(err, holdings.ErrNoProviderData) {
		return nil, fmt.Errorf("%w: %v", holdings.ErrChainNotFound, err)
	}
	if err != nil {
		return nil, err
	}
	for _, opt := range resp.OptionChain.Result[0].Options {
		if date.FromUnix(opt.ExpirationDate) != expiration {
			continue
		}
		chain := &holdings.Chain{Root: root, Expiration: expiration}
		for _, q := range opt.Calls {
			chain.Calls = append(chain.Calls, q.quote())
		}
		for _, q := range opt.Puts {
			chain.Puts = append(chain.Puts, q.quote())
		}
		return chain, nil
	}
	return nil, fmt.Errorf("%w: %s on %s", holdings.ErrChainNotFound, root, expiration.USString())
}
