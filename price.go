package holdings

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// StrikeTolerance absorbs rounding noise in provider strikes.
var StrikeTolerance = decimal.RequireFromString("0.01")

var two = decimal.NewFromInt(2)

// priceRule derives a per-unit price from an option quote, or reports that it
// does not apply.
type priceRule struct {
	name  string
	price func(OptionQuote) (decimal.Decimal, bool)
}

// priceLadder is tried in order, the first rule that applies wins.
var priceLadder = []priceRule{
	{"last", lastPrice},
	{"mid", midPrice},
	{"one-sided", oneSidedPrice},
}

func positive(n decimal.NullDecimal) bool { return n.Valid && n.Decimal.IsPositive() }

func lastPrice(q OptionQuote) (decimal.Decimal, bool) {
	if positive(q.Last) {
		return q.Last.Decimal, true
	}
	return decimal.Decimal{}, false
}

func midPrice(q OptionQuote) (decimal.Decimal, bool) {
	if positive(q.Bid) && positive(q.Ask) {
		return q.Bid.Decimal.Add(q.Ask.Decimal).Div(two), true
	}
	return decimal.Decimal{}, false
}

func oneSidedPrice(q OptionQuote) (decimal.Decimal, bool) {
	switch {
	case positive(q.Bid):
		return q.Bid.Decimal, true
	case positive(q.Ask):
		return q.Ask.Decimal, true
	}
	return decimal.Decimal{}, false
}

// UnitPrice returns the per-unit price of an option quote and the name of the
// rule that produced it: the last trade, else the bid/ask midpoint, else
// whichever side is positive. It fails with ErrNoPriceAvailable.
func UnitPrice(q OptionQuote) (decimal.Decimal, string, error) {
	for _, rule := range priceLadder {
		if p, ok := rule.price(q); ok {
			return p, rule.name, nil
		}
	}
	return decimal.Decimal{}, "", ErrNoPriceAvailable
}

// ContractPrice is UnitPrice scaled by ContractMultiplier.
func ContractPrice(q OptionQuote) (decimal.Decimal, error) {
	p, _, err := UnitPrice(q)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return p.Mul(decimal.NewFromInt(ContractMultiplier)), nil
}

// StrikeMatches reports whether a provider strike equals the requested one
// within StrikeTolerance.
func StrikeMatches(provider, requested decimal.Decimal) bool {
	return provider.Sub(requested).Abs().LessThan(StrikeTolerance)
}

// MatchStrike returns the first quote of side whose strike matches.
func MatchStrike(side []OptionQuote, strike decimal.Decimal) (OptionQuote, error) {
	for _, q := range side {
		if StrikeMatches(q.Strike, strike) {
			return q, nil
		}
	}
	return OptionQuote{}, fmt.Errorf("%w: strike %s", ErrStrikeNotFound, strike.StringFixed(2))
}
