package holdings

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Failure reasons carried by a Quotation. Match them with errors.Is.
var (
	ErrInvalidFormat      = errors.New("invalid contract format")
	ErrNoProviderData     = errors.New("no data available")
	ErrExpirationNotFound = errors.New("no option expiration found")
	ErrStrikeNotFound     = errors.New("strike not found")
	ErrNoPriceAvailable   = errors.New("no price data available")
	ErrProvider           = errors.New("market data provider error")
)

// ErrChainNotFound is returned by a MarketData when it has no option chain at
// the exact requested expiration.
var ErrChainNotFound = errors.New("option chain not found")

// Quotation is the outcome of resolving one symbol: either a unit price or an error.
//
// For contracts the price is per contract, already multiplied by
// ContractMultiplier, so that shares × price is the position value for every
// kind of instrument.
type Quotation struct {
	symbol string
	price  decimal.Decimal
	err    error
}

// NewQuotation returns a successful Quotation.
func NewQuotation(symbol string, price decimal.Decimal) Quotation {
	return Quotation{symbol: symbol, price: price}
}

// FailedQuotation returns a Quotation carrying err. A nil err is replaced by
// ErrNoProviderData so that a Quotation never has neither price nor error.
func FailedQuotation(symbol string, err error) Quotation {
	if err == nil {
		err = ErrNoProviderData
	}
	return Quotation{symbol: symbol, err: err}
}

// Symbol returns the symbol this Quotation was resolved for.
func (q Quotation) Symbol() string { return q.symbol }

// Price returns the unit price and true, or false if the Quotation failed.
func (q Quotation) Price() (decimal.Decimal, bool) {
	if q.Err() != nil {
		return decimal.Decimal{}, false
	}
	return q.price, true
}

// Err returns the failure reason, or nil for a priced Quotation.
// The zero Quotation reports ErrNoProviderData.
func (q Quotation) Err() error {
	if q.err == nil && q.symbol == "" {
		return ErrNoProviderData
	}
	return q.err
}

// OK reports whether the Quotation carries a price.
func (q Quotation) OK() bool { return q.Err() == nil }

func (q Quotation) String() string {
	if err := q.Err(); err != nil {
		return fmt.Sprintf("%s: %v", q.symbol, err)
	}
	return fmt.Sprintf("%s: %s", q.symbol, q.price.StringFixed(2))
}
