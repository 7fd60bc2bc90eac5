package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/etnz/holdings"
	"github.com/etnz/holdings/date"
	"github.com/etnz/holdings/renderer"
	"github.com/google/subcommands"
)

// autoOutput asks analyze to pick a timestamped CSV name.
const autoOutput = "auto"

type analyzeCmd struct {
	providerFlag
	file   string
	output string
	json   bool
}

func (*analyzeCmd) Name() string     { return "analyze" }
func (*analyzeCmd) Synopsis() string { return "value a portfolio and print a markdown report" }
func (*analyzeCmd) Usage() string {
	return `pfa analyze -f <holdings.csv> [-o <file.csv>|auto] [-json] [-provider yahoo|eodhd]

  Resolves the price of every stock and option contract of the holdings file,
  then prints the total value, the distribution by underlying, and the
  detailed breakdown. Symbols that cannot be priced are listed as warnings.

Usage Examples:
# Writes the valued holdings to portfolio_analysis_<timestamp>.csv
$ pfa analyze -f holdings.csv -o auto

`
}

func (c *analyzeCmd) SetFlags(f *flag.FlagSet) {
	c.providerFlag.SetFlags(f)
	f.StringVar(&c.file, "f", "", "Holdings CSV file")
	f.StringVar(&c.output, "o", "", "Write the valued holdings as CSV to this file, 'auto' for a timestamped name, or a directory")
	f.BoolVar(&c.json, "json", false, "Print the report as JSON instead of markdown")
}

func (c *analyzeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	if c.output != "" {
		name := outputName(c.output, time.Now())
		if err := writeCSV(name, report); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", name, err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(os.Stderr, "Valued holdings written to %s\n", name)
	}

	if c.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding report: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.Markdown(report, date.Today()))
	return subcommands.ExitSuccess
}

// outputName resolves the -o flag: "auto" and directories get a timestamped file name.
func outputName(output string, now time.Time) string {
	name := "portfolio_analysis_" + now.Format("20060102_150405") + ".csv"
	if output == autoOutput {
		return name
	}
	if info, err := os.Stat(output); err == nil && info.IsDir() {
		return filepath.Join(output, name)
	}
	return output
}

func writeCSV(name string, report *holdings.Report) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := holdings.WriteCSV(f, report); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
