package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/holdings/renderer"
	"github.com/google/subcommands"
)

type summaryCmd struct {
	providerFlag
	file string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "print the plain text brief handed to the AI analyst" }
func (*summaryCmd) Usage() string {
	return `pfa summary -f <holdings.csv> [-provider yahoo|eodhd]

  Values the portfolio and prints the total value, the holdings and the
  underlying groups as plain text.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	c.providerFlag.SetFlags(f)
	f.StringVar(&c.file, "f", "", "Holdings CSV file")
}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := configure(c.apply)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error in configuration: %v\n", err)
		return subcommands.ExitUsageError
	}
	report, err := evaluate(ctx, cfg, c.file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error analyzing portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	warnFailures(report)
	fmt.Print(renderer.Summary(report))
	return subcommands.ExitSuccess
}
