package holdings

import (
	"math"

	"github.com/etnz/holdings/date"
	"github.com/shopspring/decimal"
)

// OptionQuote is one row of an option chain.
//
// Last, Bid and Ask are null when the provider did not report them (or
// reported NaN).
type OptionQuote struct {
	Strike decimal.Decimal
	Last   decimal.NullDecimal
	Bid    decimal.NullDecimal
	Ask    decimal.NullDecimal
}

// Chain holds the contracts of a root for one expiration, split by side.
type Chain struct {
	Root       string
	Expiration date.Date
	Calls      []OptionQuote
	Puts       []OptionQuote
}

// Side returns the calls or the puts of the chain.
func (c *Chain) Side(r Right) []OptionQuote {
	if c == nil {
		return nil
	}
	switch r {
	case Call:
		return c.Calls
	case Put:
		return c.Puts
	default:
		return nil
	}
}

// NullFloat is a convenient factory for provider fields decoded as float64.
// NaN and infinities are treated as absent.
func NullFloat(f *float64) decimal.NullDecimal {
	if f == nil || math.IsNaN(*f) || math.IsInf(*f, 0) {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(decimal.NewFromFloat(*f))
}
