package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/tjpapenfuss/foliosim/renderer"
)

type historyCmd struct{}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display the portfolio value over time" }
func (*historyCmd) Usage() string {
	return `fsim history

  Displays the saved snapshot history: cash, invested value and total value
  after every simulation step, with the growth against the first snapshot.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	snapshots, err := DecodeSnapshots()
	if err != nil {
		return fail("could not load snapshots: %v", err)
	}
	printMarkdown(renderer.HistoryMarkdown(snapshots))
	return subcommands.ExitSuccess
}
