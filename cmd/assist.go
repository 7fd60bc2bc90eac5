package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/holdings/agent"
	"github.com/etnz/holdings/renderer"
	"github.com/google/subcommands"
)

// assistCmd is the subcommand for the AI analyst.
type assistCmd struct {
	providerFlag
	file  string
	model string
	ai    string
}

func (*assistCmd) Name() string { return "assist" }
func (*assistCmd) Synopsis() string {
	return "start an interactive session with the AI analyst about a portfolio"
}
func (*assistCmd) Usage() string {
	return `pfa assist -f <holdings.csv> [-ai gemini|claude] [-model <name>] [question...]

  Values the portfolio, prints a comprehensive analysis, then answers
  questions until 'bye'. Remaining arguments are asked as a first question.
`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	c.providerFlag.SetFlags(f)
	f.StringVar(&c.file, "f", "", "Holdings CSV file")
	f.StringVar(&c.ai, "ai", "", "AI analyst (gemini, claude), overrides the configuration")
	f.StringVar(&c.model, "model", "", "Model name, overrides the configuration")
}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := configure(c.apply, func(cfg *Config) {
		if c.ai != "" {
			cfg.AI.Provider = strings.ToLower(c.ai)
		}
		if c.model != "" {
			cfg.AI.Model = c.model
		}
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error in configuration: %v\n", err)
		return subcommands.ExitUsageError
	}

	analyst, err := NewAnalyst(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing the AI analyst: %v\n", err)
		return subcommands.ExitFailure
	}

	report, err := evaluate(ctx, cfg, c.file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error analyzing portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	warnFailures(report)
	if report.IsEmpty() {
		fmt.Fprintln(os.Stderr, "Error: no holding could be priced, nothing to analyze")
		return subcommands.ExitFailure
	}

	var prompts []string
	if f.NArg() > 0 {
		prompts = append(prompts, strings.Join(f.Args(), " "))
	}

	s := agent.NewSession(os.Stdout, os.Stdin, analyst, renderer.Summary(report))
	s.Render = renderMarkdown
	if err := s.Run(ctx, prompts...); err != nil {
		fmt.Fprintln(os.Stderr, "Analyst session failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
