package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/tjpapenfuss/foliosim"
	"github.com/tjpapenfuss/foliosim/date"
	"github.com/tjpapenfuss/foliosim/renderer"
)

// holdingsCmd holds the flags for the 'holdings' subcommand.
type holdingsCmd struct {
	date      string
	sellOrder string
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "display positions and open tax lots" }
func (*holdingsCmd) Usage() string {
	return `fsim holdings [-d <date>]

  Replays the saved ledger and displays the resulting positions with their
  market value, unrealized gains, and every open tax lot.
`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Valuation date for the holdings report.")
	f.StringVar(&c.sellOrder, "sell-order", "loss-first", "Lot order used when replaying sells (loss-first, most-recent-first).")
}

func (c *holdingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := date.Parse(c.date)
	if err != nil {
		return usage("Error parsing date: %v", err)
	}
	order, err := foliosim.ParseSellOrder(c.sellOrder)
	if err != nil {
		return usage("Error: %v", err)
	}

	ledger, err := DecodeLedger()
	if err != nil {
		return fail("could not load ledger: %v", err)
	}
	market, err := DecodeMarket()
	if err != nil {
		return fail("could not load market data: %v", err)
	}

	p, err := foliosim.Replay(ledger, *defaultCurrency, order)
	if err != nil {
		return fail("could not replay ledger: %v", err)
	}

	printMarkdown(renderer.HoldingsMarkdown(p, market, on))
	return subcommands.ExitSuccess
}
