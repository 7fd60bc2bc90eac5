package holdings

import (
	"regexp"
	"strings"
)

// contractRegex matches "ROOT MM/DD/YYYY STRIKE C|P" on an upper-cased symbol.
// It checks the shape only, calendar validity is left to ParseContract.
var contractRegex = regexp.MustCompile(`^[A-Z]+\s+\d{2}/\d{2}/\d{4}\s+\d+\.?\d*\s+[CP]$`)

// Kind discriminates the two families of instruments a holding can refer to.
type Kind int

const (
	// Simple is a plain ticker, priced directly.
	Simple Kind = iota
	// ContractKind is an option contract symbol.
	ContractKind
)

func (k Kind) String() string {
	switch k {
	case Simple:
		return "simple"
	case ContractKind:
		return "contract"
	default:
		return "unknown"
	}
}

// CleanSymbol upper-cases and trims a raw holding symbol.
func CleanSymbol(s string) string { return strings.ToUpper(strings.TrimSpace(s)) }

// Classify tells whether symbol is written in the contract grammar.
//
// Classification is total: any string that is not exactly a contract symbol,
// including near misses, is Simple.
func Classify(symbol string) Kind {
	if contractRegex.MatchString(CleanSymbol(symbol)) {
		return ContractKind
	}
	return Simple
}

// UnderlyingRoot returns the symbol used to group a holding: the root of a
// contract, or the cleaned symbol itself. It never fails, a contract symbol
// that does not parse is grouped under its own name.
func UnderlyingRoot(symbol string) string {
	clean := CleanSymbol(symbol)
	if Classify(clean) != ContractKind {
		return clean
	}
	c, err := ParseContract(clean)
	if err != nil {
		return clean
	}
	return c.Root()
}

// Instrument is either an Equity or a Contract.
type Instrument interface {
	// Symbol returns the canonical holding symbol.
	Symbol() string
	// Root returns the symbol used for grouping.
	Root() string
	// Kind returns the instrument discriminant.
	Kind() Kind

	instrument()
}

// Equity is a plain instrument identified by its ticker.
type Equity struct {
	ticker string
}

// NewEquity returns the Equity for ticker, cleaned.
func NewEquity(ticker string) Equity { return Equity{ticker: CleanSymbol(ticker)} }

func (e Equity) Symbol() string { return e.ticker }
func (e Equity) Root() string   { return e.ticker }
func (e Equity) Kind() Kind     { return Simple }
func (e Equity) String() string { return e.ticker }
func (Equity) instrument()      {}

// NewInstrument classifies symbol and returns the matching Instrument.
//
// It only fails for contract symbols that match the grammar but do not
// parse, e.g. an impossible calendar date.
func NewInstrument(symbol string) (Instrument, error) {
	clean := CleanSymbol(symbol)
	switch Classify(clean) {
	case ContractKind:
		c, err := ParseContract(clean)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return NewEquity(clean), nil
	}
}
