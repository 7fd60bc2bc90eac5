package holdings

// Holding is one row of the holdings file: a symbol and a number of shares
// (or of contracts, for option symbols).
type Holding struct {
	Symbol string
	Shares Quantity
}

// NewHolding returns a Holding with a cleaned symbol.
func NewHolding[T float64 | int | int64](symbol string, shares T) Holding {
	return Holding{Symbol: CleanSymbol(symbol), Shares: Q(shares)}
}

func (h Holding) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Field("symbol", h.Symbol)
	w.Field("shares", h.Shares)
	return w.MarshalJSON()
}

// ValuedHolding is a Holding priced by a successful Quotation.
type ValuedHolding struct {
	Holding
	Price      Money   // unit price, per contract for options
	Value      Money   // Shares × Price
	Root       string  // underlying root used for grouping
	Percentage Percent // Value / total portfolio value
}

func (v ValuedHolding) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Merge(v.Holding)
	w.Amount("price", v.Price)
	w.Amount("value", v.Value)
	w.Field("underlying", v.Root)
	w.Field("percentage", v.Percentage)
	return w.MarshalJSON()
}
