package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/tjpapenfuss/foliosim/date"
	"github.com/tjpapenfuss/foliosim/renderer"
)

// transactionsCmd holds the flags for the 'transactions' subcommand.
type transactionsCmd struct {
	start    string
	end      string
	security string
}

func (*transactionsCmd) Name() string     { return "transactions" }
func (*transactionsCmd) Synopsis() string { return "list ledger transactions" }
func (*transactionsCmd) Usage() string {
	return `fsim transactions [-s <date>] [-d <date>] [-security <ticker>]

  Lists the transactions of the ledger in chronological order, one row per
  entry, with the per-lot gain detail on sells. The range defaults to the
  whole ledger.
`
}

func (c *transactionsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "s", "", "Start date of the listing, the oldest transaction if empty.")
	f.StringVar(&c.end, "d", "", "End date of the listing, the newest transaction if empty.")
	f.StringVar(&c.security, "security", "", "Only list transactions on this ticker.")
}

func (c *transactionsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		return fail("could not load ledger: %v", err)
	}

	from := ledger.OldestTransactionDate()
	to := ledger.NewestTransactionDate()
	if c.start != "" {
		if from, err = date.Parse(c.start); err != nil {
			return usage("Error parsing start date: %v", err)
		}
	}
	if c.end != "" {
		if to, err = date.Parse(c.end); err != nil {
			return usage("Error parsing end date: %v", err)
		}
	}

	printMarkdown(renderer.TransactionsMarkdown(ledger, date.Span(from, to), c.security))
	return subcommands.ExitSuccess
}
