package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/holdings"
)

// Summary renders report as the plain text brief handed to an analyst.
//
// Holdings and groups keep the report order.
func Summary(report *holdings.Report) string {
	var b strings.Builder
	fmt.Fprintln(&b, "PORTFOLIO SUMMARY:")
	fmt.Fprintf(&b, "Total Portfolio Value: %s\n", report.TotalValue)
	fmt.Fprintf(&b, "Total Number of Holdings: %d\n", report.Count)
	fmt.Fprintf(&b, "Average Holding Value: %s\n", report.Average)
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "HOLDINGS DETAILS:")
	for _, h := range report.Holdings {
		fmt.Fprintf(&b, "- %s: %s shares @ %s = %s (%s)\n", h.Symbol, h.Shares, h.Price, h.Value, h.Percentage)
	}

	listSection(&b, "GROUPED BY UNDERLYING TICKER:", report.Groups, func(g holdings.Group) string {
		return fmt.Sprintf("%s: %s (%s) - %s total shares", g.Root, g.Value, g.Percentage, g.Shares)
	})
	return b.String()
}
