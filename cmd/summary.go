package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/tjpapenfuss/foliosim"
	"github.com/tjpapenfuss/foliosim/date"
	"github.com/tjpapenfuss/foliosim/renderer"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	taxRate float64
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the performance summary of the saved run" }
func (*summaryCmd) Usage() string {
	return `fsim summary [-tax-rate <rate>]

  Recomputes and displays the performance summary from the saved ledger and
  snapshot history, without re-running the simulation.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.taxRate, "tax-rate", 0.30, "Tax rate used to estimate savings from realized losses.")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		return fail("could not load ledger: %v", err)
	}
	snapshots, err := DecodeSnapshots()
	if err != nil {
		return fail("could not load snapshots: %v", err)
	}
	if len(snapshots) == 0 {
		return fail("no snapshot history in %q, run a simulation first", *snapshotsFile)
	}

	metrics := foliosim.ComputeMetrics(ledger, snapshots, c.taxRate)
	rng := date.Span(snapshots[0].Date, snapshots[len(snapshots)-1].Date)
	printMarkdown(renderer.SummaryMarkdown(rng, metrics))
	return subcommands.ExitSuccess
}
