package eodhd

import (
	"context"
	"fmt"
	"net/url"

	"github.com/etnz/holdings"
	"github.com/etnz/holdings/date"
	"github.com/shopspring/decimal"
)

// This file contains functions to access the EODHD API.

// eodRecord is one day of /api/eod.
type eodRecord struct {
	Date  date.Date       `json:"date"`
	Close decimal.Decimal `json:"close"`
	// AdjustedClose decimal.Decimal `json:"adjusted_close"`
}

// fetchEOD returns the daily records of ticker between from and to, both included.
func (c *Client) fetchEOD(ctx context.Context, ticker string, from, to date.Date) ([]eodRecord, error) {
	// https://eodhd.com/api/eod/MCD.US?api_token=demo&fmt=json&from=2025-01-05&to=2025-01-15
	// [
	//	{
	//		"date": "2025-01-13",
	//		"open": 285.1,
	//		"high": 288.3,
	//		"low": 284.0,
	//		"close": 287.21,
	//		"adjusted_close": 287.21,
	//		"volume": 2914000
	//	},
	q := url.Values{}
	q.Set("fmt", "json")
	q.Set("api_token", c.APIKey)
	q.Set("from", from.String())
	q.Set("to", to.String())
	addr := fmt.Sprintf("%s/api/eod/%s?%s", c.baseURL(), url.PathEscape(ticker), q.Encode())

	content := make([]eodRecord, 0)
	if err := c.get(ctx, addr, &content); err != nil {
		return nil, err
	}
	return content, nil
}

// optionContract is one contract of /api/options.
type optionContract struct {
	ContractName string   `json:"contractName"`
	Strike       float64  `json:"strike"`
	LastPrice    *float64 `json:"lastPrice"`
	Bid          *float64 `json:"bid"`
	Ask          *float64 `json:"ask"`
}

func (o optionContract) quote() holdings.OptionQuote {
	return holdings.OptionQuote{
		Strike: decimal.NewFromFloat(o.Strike),
		Last:   holdings.NullFloat(o.LastPrice),
		Bid:    holdings.NullFloat(o.Bid),
		Ask:    holdings.NullFloat(o.Ask),
	}
}

// optionExpiration groups the contracts of one expiration date.
type optionExpiration struct {
	ExpirationDate date.Date `json:"expirationDate"`
	Options        struct {
		Calls []optionContract `json:"CALL"`
		Puts  []optionContract `json:"PUT"`
	} `json:"options"`
}

// fetchOptions returns every listed expiration of ticker with its contracts.
func (c *Client) fetchOptions(ctx context.Context, ticker string) ([]optionExpiration, error) {
	// https://eodhd.com/api/options/AAPL.US?api_token=demo
	// {
	//   "code": "AAPL.US",
	//   "exchange": "US",
	//   "lastTradeDate": "2025-01-15",
	//   "lastTradePrice": 237.87,
	//   "data": [
	//     {
	//       "expirationDate": "2025-01-17",
	//       "impliedVolatility": 36.21,
	//       "options": {
	//         "CALL": [{"contractName": "AAPL250117C00100000", "strike": 100, "lastPrice": 137.5, "bid": 137.1, "ask": 138.05, ...}],
	//         "PUT": [...]
	//       }
	//     },
	q := url.Values{}
	q.Set("fmt", "json")
	q.Set("api_token", c.APIKey)
	addr := fmt.Sprintf("%s/api/options/%s?%s", c.baseURL(), url.PathEscape(ticker), q.Encode())

	var content struct {
		Code string             `json:"code"`
		Data []optionExpiration `json:"data"`
	}
	if err := c.get(ctx, addr, &content); err != nil {
		return nil, err
	}
	if len(content.Data) == 0 {
		return nil, fmt.Errorf("%w: no options for %s", holdings.ErrNoProviderData, ticker)
	}
	return content.Data, nil
}
