package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/tjpapenfuss/foliosim"
	"github.com/tjpapenfuss/foliosim/date"
	"github.com/tjpapenfuss/foliosim/renderer"
)

// runCmd holds the flags for the 'run' subcommand.
type runCmd struct {
	configFile string
	quiet      bool
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "run a portfolio simulation" }
func (*runCmd) Usage() string {
	return `fsim run [-c <config>] [-q]

  Runs a full simulation over the configured date range against the market
  data file: scheduled deposits, tax-loss harvesting, cash deployment and
  rebalancing. The resulting transaction ledger and snapshot history are
  written to the app files, and a performance summary is printed.

Usage Examples:
# Run with the default configuration against market.jsonl.
$ fsim run

# Run a custom scenario.
$ fsim run -c aggressive.json
`
}

func (c *runCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.configFile, "c", "", "Simulation config file (JSON). Defaults apply when omitted.")
	f.BoolVar(&c.quiet, "q", false, "Skip the summary report after the run.")
}

func (c *runCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	config := foliosim.DefaultConfig()
	if c.configFile != "" {
		var err error
		config, err = foliosim.LoadConfig(c.configFile)
		if err != nil {
			return fail("could not load config: %v", err)
		}
	}

	if config.TickersSource != "" && len(config.Tickers) == 0 {
		tickers, err := foliosim.LoadTickersCSV(config.TickersSource, config.TopN)
		if err != nil {
			return fail("could not load tickers from %q: %v", config.TickersSource, err)
		}
		config.Tickers = tickers
	}
	if config.WeightsSource != "" && len(config.Weights) == 0 {
		weights, err := foliosim.LoadWeightsCSV(config.WeightsSource)
		if err != nil {
			return fail("could not load weights from %q: %v", config.WeightsSource, err)
		}
		config.Weights = weights
	}

	market, err := DecodeMarket()
	if err != nil {
		return fail("could not load market data: %v", err)
	}
	if len(market.Tickers()) == 0 {
		return fail("market data %q is empty, fetch prices first (see 'fsim fetch')", *marketFile)
	}

	result, err := foliosim.RunSimulation(config, market)
	if err != nil {
		return fail("simulation failed: %v", err)
	}

	if err := foliosim.SaveLedgerFile(*ledgerFile, result.Portfolio.Ledger()); err != nil {
		return fail("could not save ledger: %v", err)
	}
	if err := foliosim.SaveSnapshotsFile(*snapshotsFile, result.Snapshots); err != nil {
		return fail("could not save snapshots: %v", err)
	}

	fmt.Fprintf(os.Stderr, "✅ Run %s finished: %d transactions, %d snapshots.\n",
		result.RunID, result.Portfolio.Ledger().Len(), len(result.Snapshots))

	if !c.quiet {
		rng := date.Span(config.StartDate, config.EndDate)
		printMarkdown(renderer.SummaryMarkdown(rng, result.Metrics()))
	}
	return subcommands.ExitSuccess
}
