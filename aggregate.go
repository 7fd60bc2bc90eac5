package holdings

// Group is the part of the portfolio sharing an underlying root.
type Group struct {
	Root       string
	Shares     Quantity // summed over the group, contracts and shares alike
	Value      Money
	Percentage Percent
}

func (g Group) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Field("underlying", g.Root)
	w.Field("shares", g.Shares)
	w.Amount("value", g.Value)
	w.Field("percentage", g.Percentage)
	return w.MarshalJSON()
}

// Summary holds the portfolio wide statistics.
type Summary struct {
	TotalValue Money
	Count      int
	Average    Money // zero when Count is 0
	Groups     []Group
}

// Aggregate values holdings with quotes, keyed by symbol.
//
// Holdings without a successful Quotation are left out of every total. The
// returned holdings keep the input order, groups are in order of first
// appearance of their root. Amounts are in DefaultCurrency.
func Aggregate(holdings []Holding, quotes map[string]Quotation) (Summary, []ValuedHolding) {
	return aggregate(DefaultCurrency, holdings, quotes)
}

func aggregate(currency string, holdings []Holding, quotes map[string]Quotation) (Summary, []ValuedHolding) {
	valued := make([]ValuedHolding, 0, len(holdings))
	total := M(0, currency)
	for _, h := range holdings {
		q, ok := quotes[CleanSymbol(h.Symbol)]
		if !ok {
			continue
		}
		price, ok := q.Price()
		if !ok {
			continue
		}
		unit := M(price, currency)
		value := unit.Mul(h.Shares)
		total = total.Add(value)
		valued = append(valued, ValuedHolding{
			Holding: h,
			Price:   unit,
			Value:   value,
			Root:    UnderlyingRoot(h.Symbol),
		})
	}

	// second pass, weights need the total.
	for i := range valued {
		valued[i].Percentage = valued[i].Value.PercentOf(total)
	}

	s := Summary{
		TotalValue: total,
		Count:      len(valued),
		Average:    M(0, currency),
		Groups:     groupByRoot(valued, total),
	}
	if s.Count > 0 {
		s.Average = total.Div(Q(s.Count))
	}
	return s, valued
}

func groupByRoot(valued []ValuedHolding, total Money) []Group {
	index := make(map[string]int)
	groups := make([]Group, 0)
	for _, v := range valued {
		i, ok := index[v.Root]
		if !ok {
			i = len(groups)
			index[v.Root] = i
			groups = append(groups, Group{Root: v.Root, Value: M(0, total.Currency())})
		}
		groups[i].Shares = groups[i].Shares.Add(v.Shares)
		groups[i].Value = groups[i].Value.Add(v.Value)
	}
	for i := range groups {
		groups[i].Percentage = groups[i].Value.PercentOf(total)
	}
	return groups
}
