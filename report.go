package holdings

import (
	"context"
	"encoding/json"
)

// Report is the valued portfolio: statistics, priced holdings and the
// symbols that could not be priced.
type Report struct {
	Currency string
	Summary
	Holdings []ValuedHolding
	Failures []Quotation // failed quotations, one per distinct symbol
}

// Evaluate resolves the distinct symbols of holdings with lookup and
// aggregates the result. It is a pure pipeline: the same holdings and
// lookup give the same Report.
func Evaluate(ctx context.Context, holdings []Holding, lookup PriceLookup, opts ...Option) *Report {
	o := newOptions(opts)

	symbols := make([]string, 0, len(holdings))
	for _, h := range holdings {
		symbols = append(symbols, h.Symbol)
	}
	quotes := ResolveAll(ctx, symbols, lookup, opts...)

	summary, valued := aggregate(o.currency, holdings, quotes)
	r := &Report{
		Currency: o.currency,
		Summary:  summary,
		Holdings: valued,
	}
	for _, symbol := range Distinct(symbols) {
		if q := quotes[symbol]; !q.OK() {
			r.Failures = append(r.Failures, q)
		}
	}
	return r
}

// IsEmpty reports whether no holding could be valued.
func (r *Report) IsEmpty() bool { return r == nil || len(r.Holdings) == 0 }

func (r *Report) MarshalJSON() ([]byte, error) {
	type failure struct {
		Symbol string `json:"symbol"`
		Error  string `json:"error"`
	}
	failures := make([]failure, 0, len(r.Failures))
	for _, q := range r.Failures {
		failures = append(failures, failure{Symbol: q.Symbol(), Error: q.Err().Error()})
	}

	var w jsonObjectWriter
	w.Field("currency", r.Currency)
	w.Amount("totalValue", r.TotalValue)
	w.Field("count", r.Count)
	w.Amount("average", r.Average)
	w.List("holdings", r.Holdings)
	w.List("groups", r.Groups)
	w.List("failures", failures)
	return w.MarshalJSON()
}

var _ json.Marshaler = (*Report)(nil)
