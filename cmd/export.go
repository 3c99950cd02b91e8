package cmd

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
	"github.com/tjpapenfuss/foliosim"
)

type exportCmd struct{}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write market data to stdout as JSONL" }
func (*exportCmd) Usage() string {
	return `fsim export [<ticker>...]

  Writes the market file to stdout, one ticker per line, for piping into jq
  or another tool. With arguments, only the named tickers are exported.

  Example:
    fsim export AAPL | jq .history
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	market, err := foliosim.LoadMarketFile(*marketFile)
	if err != nil {
		return fail("could not load market data: %v", err)
	}

	if f.NArg() > 0 {
		filtered := foliosim.NewMarket()
		for _, ticker := range f.Args() {
			s := market.Get(ticker)
			if s == nil {
				return fail("unknown ticker %q in %q", ticker, *marketFile)
			}
			for day, price := range s.Values() {
				filtered.Add(ticker, day, price)
			}
		}
		market = filtered
	}

	if err := foliosim.ExportMarket(os.Stdout, market); err != nil {
		return fail("could not export market data: %v", err)
	}
	return subcommands.ExitSuccess
}
