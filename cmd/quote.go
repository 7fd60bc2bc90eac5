package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/holdings"
	"github.com/google/subcommands"
)

type quoteCmd struct {
	providerFlag
}

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "resolve the price of symbols" }
func (*quoteCmd) Usage() string {
	return `pfa quote [-provider yahoo|eodhd] <symbol>...

  Prints the unit price of each stock, or the per contract price of each
  option contract. Quote contracts to keep them as one argument:

$ pfa quote AAPL "QQQ 01/15/2027 380.00 C"
`
}

func (c *quoteCmd) SetFlags(f *flag.FlagSet) { c.providerFlag.SetFlags(f) }

func (c *quoteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one symbol is required")
		return subcommands.ExitUsageError
	}
	cfg, err := configure(c.apply)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error in configuration: %v\n", err)
		return subcommands.ExitUsageError
	}

	symbols := holdings.Distinct(f.Args())
	quotes := holdings.ResolveAll(ctx, symbols, NewResolver(cfg).Resolve,
		holdings.WithConcurrency(cfg.Concurrency),
		holdings.WithRateLimit(cfg.Rate),
	)
	if printQuotes(os.Stdout, symbols, quotes) > 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// printQuotes prints one line per symbol and returns the number of failures.
func printQuotes(w io.Writer, symbols []string, quotes map[string]holdings.Quotation) int {
	failed := 0
	for _, s := range symbols {
		q := quotes[s]
		if !q.OK() {
			failed++
		}
		fmt.Fprintln(w, q)
	}
	return failed
}
