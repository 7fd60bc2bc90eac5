package holdings

import (
	"fmt"
	"strings"

	"github.com/etnz/holdings/date"
	"github.com/shopspring/decimal"
)

// ContractMultiplier converts a per-unit option quote into a per-contract price.
const ContractMultiplier = 100

// Right is the side of an option contract.
type Right int

const (
	Call Right = iota + 1
	Put
)

// String returns the single letter used in contract symbols.
func (r Right) String() string {
	switch r {
	case Call:
		return "C"
	case Put:
		return "P"
	default:
		return "?"
	}
}

// parseRight maps C and P, case-insensitively. Anything else fails.
func parseRight(s string) (Right, error) {
	switch strings.ToUpper(s) {
	case "C":
		return Call, nil
	case "P":
		return Put, nil
	default:
		return 0, fmt.Errorf("%w: unknown option right %q", ErrInvalidFormat, s)
	}
}

// Contract is an option contract parsed from a "ROOT MM/DD/YYYY STRIKE C|P" symbol.
//
// A Contract is only built by ParseContract and is immutable.
type Contract struct {
	root       string
	expiration date.Date
	strike     decimal.Decimal
	right      Right
}

// ParseContract parses a contract symbol.
//
// The date must be a real MM/DD/YYYY calendar day and the strike a positive
// number. Errors wrap ErrInvalidFormat.
func ParseContract(symbol string) (Contract, error) {
	parts := strings.Fields(CleanSymbol(symbol))
	if len(parts) != 4 {
		return Contract{}, fmt.Errorf("%w: %q has %d parts, want 4", ErrInvalidFormat, symbol, len(parts))
	}

	exp, err := date.ParseUS(parts[1])
	if err != nil {
		return Contract{}, fmt.Errorf("%w: %q: %v", ErrInvalidFormat, symbol, err)
	}

	strike, err := decimal.NewFromString(parts[2])
	if err != nil {
		return Contract{}, fmt.Errorf("%w: %q: invalid strike %q", ErrInvalidFormat, symbol, parts[2])
	}
	if !strike.IsPositive() {
		return Contract{}, fmt.Errorf("%w: %q: strike must be positive", ErrInvalidFormat, symbol)
	}

	right, err := parseRight(parts[3])
	if err != nil {
		return Contract{}, err
	}

	return Contract{
		root:       parts[0],
		expiration: exp,
		strike:     strike,
		right:      right,
	}, nil
}

func (c Contract) Root() string            { return c.root }
func (c Contract) Expiration() date.Date   { return c.expiration }
func (c Contract) Strike() decimal.Decimal { return c.strike }
func (c Contract) Right() Right            { return c.right }
func (c Contract) Kind() Kind              { return ContractKind }
func (c Contract) Symbol() string          { return c.String() }
func (Contract) instrument()               {}

// String returns the canonical symbol, e.g. "QQQ 01/15/2027 380.00 C".
func (c Contract) String() string {
	return fmt.Sprintf("%s %s %s %s", c.root, c.expiration.USString(), c.strike.StringFixed(2), c.right)
}
