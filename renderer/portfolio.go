package renderer

import (
	"sort"

	"github.com/etnz/holdings"
	"github.com/etnz/holdings/date"
)

// Portfolio is the rendering view of a holdings.Report.
// Amounts are already formatted in the report currency.
type Portfolio struct {
	// Date of the valuation.
	Date date.Date `json:"date"`
	// Currency is the ISO code amounts are expressed in.
	Currency string `json:"currency"`
	// TotalValue is the value of every priced holding.
	TotalValue string `json:"totalValue"`
	// Count is the number of priced holdings.
	Count int `json:"count"`
	// Average is TotalValue divided by Count.
	Average string `json:"average"`
	// Groups is the distribution by underlying, largest first.
	Groups []Group `json:"groups"`
	// Holdings is the detailed breakdown, largest first.
	Holdings []Holding `json:"holdings"`
	// Failures lists the symbols that could not be priced.
	Failures []Failure `json:"failures,omitempty"`
}

// Group is one underlying of the distribution.
type Group struct {
	Root       string `json:"root"`
	Shares     string `json:"shares"`
	Value      string `json:"value"`
	Percentage string `json:"percentage"`
}

// Holding is one line of the detailed breakdown.
type Holding struct {
	Symbol     string `json:"symbol"`
	Shares     string `json:"shares"`
	Price      string `json:"price"`
	Value      string `json:"value"`
	Root       string `json:"root"`
	Percentage string `json:"percentage"`
}

// Failure is a symbol left out of the totals.
type Failure struct {
	Symbol string `json:"symbol"`
	Reason string `json:"reason"`
}

// NewPortfolio creates the view of report valued on day.
func NewPortfolio(report *holdings.Report, day date.Date) *Portfolio {
	p := &Portfolio{
		Date:       day,
		Currency:   report.Currency,
		TotalValue: report.TotalValue.String(),
		Count:      report.Count,
		Average:    report.Average.String(),
	}

	groups := append([]holdings.Group(nil), report.Groups...)
	sort.SliceStable(groups, func(i, j int) bool { return groups[j].Value.LessThan(groups[i].Value) })
	for _, g := range groups {
		p.Groups = append(p.Groups, Group{
			Root:       g.Root,
			Shares:     g.Shares.String(),
			Value:      g.Value.String(),
			Percentage: g.Percentage.String(),
		})
	}

	valued := append([]holdings.ValuedHolding(nil), report.Holdings...)
	sort.SliceStable(valued, func(i, j int) bool { return valued[j].Value.LessThan(valued[i].Value) })
	for _, v := range valued {
		p.Holdings = append(p.Holdings, Holding{
			Symbol:     v.Symbol,
			Shares:     v.Shares.String(),
			Price:      v.Price.String(),
			Value:      v.Value.String(),
			Root:       v.Root,
			Percentage: v.Percentage.String(),
		})
	}

	for _, q := range report.Failures {
		p.Failures = append(p.Failures, Failure{Symbol: q.Symbol(), Reason: q.Err().Error()})
	}
	return p
}
