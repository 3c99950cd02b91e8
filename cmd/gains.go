package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/tjpapenfuss/foliosim"
	"github.com/tjpapenfuss/foliosim/date"
	"github.com/tjpapenfuss/foliosim/renderer"
)

// gainsCmd holds the flags for the 'gains' subcommand.
type gainsCmd struct {
	period string
	start  string
	end    string
}

func (*gainsCmd) Name() string     { return "gains" }
func (*gainsCmd) Synopsis() string { return "realized gains report, split short term and long term" }
func (*gainsCmd) Usage() string {
	return `fsim gains [-period <period>] [-s <date>] [-d <date>]

  Calculates and displays the realized gains and losses of the period, split
  by holding period into short term and long term buckets, with per-security
  and per-month detail. Without -s the period containing the end date is
  reported.
`
}

func (c *gainsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "period", date.Yearly.String(), "Predefined period (day, month, quarter, year)")
	f.StringVar(&c.start, "s", "", "Start date of the reporting period. Overrides -period.")
	f.StringVar(&c.end, "d", date.Today().String(), "End date of the reporting period.")
}

func (c *gainsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	endDate, err := date.Parse(c.end)
	if err != nil {
		return usage("Error parsing end date: %v", err)
	}

	var period date.Range
	if c.start != "" {
		startDate, err := date.Parse(c.start)
		if err != nil {
			return usage("Error parsing start date: %v", err)
		}
		period = date.Span(startDate, endDate)
	} else {
		p, err := date.ParsePeriod(c.period)
		if err != nil {
			return usage("Error parsing period: %v", err)
		}
		period = date.NewRange(endDate, p)
	}

	ledger, err := DecodeLedger()
	if err != nil {
		return fail("could not load ledger: %v", err)
	}

	report := foliosim.CalculateGains(ledger, period, *defaultCurrency)
	printMarkdown(renderer.GainsMarkdown(report))
	return subcommands.ExitSuccess
}
