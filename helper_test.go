package holdings

import (
	"context"
	"fmt"
	"sync"

	"github.com/etnz/holdings/date"
	"github.com/shopspring/decimal"
)

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// d is a helper for test to create decimals from const
func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// nd is a helper for test to create a present provider field.
func nd(s string) decimal.NullDecimal { return decimal.NewNullDecimal(d(s)) }

// fakeMarket is an in memory MarketData. It counts calls per method.
type fakeMarket struct {
	prices      map[string]decimal.Decimal
	chains      map[string]*Chain // keyed by root + " " + ISO date
	expirations map[string][]date.Date
	err         error // returned by every call when set

	mu    sync.Mutex
	calls map[string]int
}

func (f *fakeMarket) count(method string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[method]++
}

func (f *fakeMarket) Calls(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *fakeMarket) LatestPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	f.count("LatestPrice")
	if f.err != nil {
		return decimal.Decimal{}, f.err
	}
	p, ok := f.prices[symbol]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w for %s", ErrNoProviderData, symbol)
	}
	return p, nil
}

func (f *fakeMarket) OptionChain(ctx context.Context, root string, expiration date.Date) (*Chain, error) {
	f.count("OptionChain")
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.chains[root+" "+expiration.String()]
	if !ok {
		return nil, fmt.Errorf("%w: %s %s", ErrChainNotFound, root, expiration)
	}
	return c, nil
}

func (f *fakeMarket) Expirations(ctx context.Context, root string) ([]date.Date, error) {
	f.count("Expirations")
	if f.err != nil {
		return nil, f.err
	}
	return f.expirations[root], nil
}

// addChain registers a chain and its expiration.
func (f *fakeMarket) addChain(c *Chain) {
	if f.chains == nil {
		f.chains = make(map[string]*Chain)
	}
	if f.expirations == nil {
		f.expirations = make(map[string][]date.Date)
	}
	f.chains[c.Root+" "+c.Expiration.String()] = c
	f.expirations[c.Root] = append(f.expirations[c.Root], c.Expiration)
}

// staticLookup is a PriceLookup backed by a fixed price list.
func staticLookup(prices map[string]string) PriceLookup {
	return func(ctx context.Context, symbol string) Quotation {
		p, ok := prices[symbol]
		if !ok {
			return FailedQuotation(symbol, ErrNoProviderData)
		}
		return NewQuotation(symbol, d(p))
	}
}
