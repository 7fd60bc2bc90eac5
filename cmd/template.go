package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/holdings"
	"github.com/google/subcommands"
)

type templateCmd struct{}

func (*templateCmd) Name() string     { return "template" }
func (*templateCmd) Synopsis() string { return "print a sample holdings file" }
func (*templateCmd) Usage() string {
	return `pfa template > holdings.csv

  Prints a holdings CSV file with a few stocks and an option contract.
`
}

func (*templateCmd) SetFlags(*flag.FlagSet) {}

func (*templateCmd) Execute(context.Context, *flag.FlagSet, ...interface{}) subcommands.ExitStatus {
	if err := holdings.SampleCSV(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing template: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
