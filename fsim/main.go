package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
	"github.com/tjpapenfuss/foliosim/cmd"
)

// completer describes the CLI to the shell completion machinery.
func completer() *complete.Command {
	jsonl := predict.Files("*.jsonl")
	dates := predict.Something
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"ledger-file":    jsonl,
			"market-file":    jsonl,
			"snapshots-file": jsonl,
			"currency":       predict.Set{"USD", "EUR", "GBP"},
			"v":              predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"run": {Flags: map[string]complete.Predictor{
				"c": predict.Files("*.json"),
				"q": predict.Nothing,
			}},
			"summary": {Flags: map[string]complete.Predictor{
				"tax-rate": predict.Something,
			}},
			"history": {},
			"transactions": {Flags: map[string]complete.Predictor{
				"s":        dates,
				"d":        dates,
				"security": predict.Something,
			}},
			"gains": {Flags: map[string]complete.Predictor{
				"period": predict.Set{"day", "week", "month", "quarter", "year"},
				"s":      dates,
				"d":      dates,
			}},
			"holdings": {Flags: map[string]complete.Predictor{
				"d":          dates,
				"sell-order": predict.Set{"loss-first", "most-recent-first"},
			}},
			"fetch": {Flags: map[string]complete.Predictor{
				"eodhd-api-key": predict.Nothing,
				"s":             dates,
				"d":             dates,
				"tickers":       predict.Files("*.csv"),
			}},
			"search": {Flags: map[string]complete.Predictor{
				"eodhd-api-key": predict.Nothing,
			}},
			"export": {Args: predict.Something},
			"import": {
				Args: predict.Files("*.csv"),
				Flags: map[string]complete.Predictor{
					"o": jsonl,
				},
			},
			"topic": {Args: predict.Set{
				"readme", "getting-started", "configuration",
				"harvesting", "rebalancing", "ledger-format",
			}},
			"assist": {Flags: map[string]complete.Predictor{
				"tax-rate": predict.Something,
			}},
		},
	}
}

func main() {
	// Shell completion runs first and exits when the shell asks for it.
	completer().Complete("fsim")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")
	cmd.Register(commander)

	flag.Parse()

	// Unknown subcommands fall through to fsim-<name> binaries on PATH.
	if name := flag.Arg(0); name != "" && !cmd.Known(name) {
		if found, code := cmd.RunExtension(name, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}

	os.Exit(int(commander.Execute(context.Background())))
}
