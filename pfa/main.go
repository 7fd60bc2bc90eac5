// Command pfa values a portfolio of stocks and option contracts.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/holdings/cmd"
	"github.com/etnz/holdings/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	completion().Complete("pfa")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	ctx := cmd.NewLogger(*cmd.Verbose).WithContext(context.Background())

	if name := flag.Arg(0); name != "" && !registered(commander, name) {
		if ok, code := cmd.RunExtension(ctx, name, flag.Args()[1:]); ok {
			os.Exit(code)
		}
	}

	os.Exit(int(commander.Execute(ctx)))
}

func registered(c *subcommands.Commander, name string) (found bool) {
	c.VisitCommands(func(_ *subcommands.CommandGroup, sub subcommands.Command) {
		if sub.Name() == name {
			found = true
		}
	})
	return found
}

// completion describes the command line for shell completion.
func completion() *complete.Command {
	csv := predict.Files("*.csv")
	providers := predict.Set{"yahoo", "eodhd"}
	topics, _ := docs.GetAllTopics()

	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"config":   predict.Files("*.toml"),
			"currency": predict.Something,
			"v":        predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"analyze": {Flags: map[string]complete.Predictor{
				"f":        csv,
				"o":        predict.Files("*.csv"),
				"json":     predict.Nothing,
				"provider": providers,
			}},
			"summary": {Flags: map[string]complete.Predictor{
				"f":        csv,
				"provider": providers,
			}},
			"quote": {
				Flags: map[string]complete.Predictor{"provider": providers},
				Args:  predict.Something,
			},
			"assist": {Flags: map[string]complete.Predictor{
				"f":        csv,
				"provider": providers,
				"ai":       predict.Set{"gemini", "claude"},
				"model":    predict.Something,
			}},
			"template": {},
			"topic": {
				Flags: map[string]complete.Predictor{"raw": predict.Nothing},
				Args:  predict.Set(topics),
			},
			"help":     {},
			"flags":    {},
			"commands": {},
		},
	}
}
