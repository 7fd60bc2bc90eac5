package holdings

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Percent is a weight in percent, e.g. 54.55 for 54.55%.
type Percent struct {
	value decimal.Decimal
}

// P returns a Percent.
func P[T float64 | int | int64 | decimal.Decimal](value T) Percent {
	return Percent{value: newDecimal(value)}
}

func (p Percent) Decimal() decimal.Decimal { return p.value }
func (p Percent) Add(q Percent) Percent    { return Percent{value: p.value.Add(q.value)} }

// Equal compares p and q exactly.
func (p Percent) Equal(q Percent) bool { return p.value.Equal(q.value) }

// Within reports whether p and q differ by at most tol percentage points.
func (p Percent) Within(q Percent, tol decimal.Decimal) bool {
	return p.value.Sub(q.value).Abs().LessThanOrEqual(tol)
}

func (p Percent) String() string {
	return p.value.StringFixed(2) + "%"
}

func (p Percent) MarshalJSON() ([]byte, error) {
	return []byte(p.value.StringFixed(2)), nil
}
