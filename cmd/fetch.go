package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/tjpapenfuss/foliosim"
	"github.com/tjpapenfuss/foliosim/date"
	"github.com/tjpapenfuss/foliosim/eodhd"
)

const eodhdAPIKeyEnv = "EODHD_API_KEY"

// fetchCmd holds the flags for the 'fetch' subcommand.
type fetchCmd struct {
	apiKeyFlag string
	start      string
	end        string
	tickers    string
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetch daily prices from eodhd.com into the market file" }
func (*fetchCmd) Usage() string {
	return `fsim fetch [-s <date>] [-d <date>] [<ticker>...]

  Fetches daily closing prices from eodhd.com and merges them into the market
  file. Without tickers it refreshes every ticker already in the market file.
  Without -s it continues from the last recorded day, or fetches one year of
  history for an empty market.

  Requires an API key, from the -eodhd-api-key flag or the ` + eodhdAPIKeyEnv + `
  environment variable. Plain US tickers like AAPL are fetched as AAPL.US.

  Examples:
    fsim fetch AAPL MSFT GOOG
    fsim fetch -s 2023-01-01 -d 2023-12-31 AAPL
    fsim fetch -tickers sp500.csv
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.apiKeyFlag, "eodhd-api-key", "", "EODHD API key. Takes precedence over the "+eodhdAPIKeyEnv+" environment variable. You can get one at https://eodhd.com/")
	f.StringVar(&c.start, "s", "", "First day to fetch. Defaults to the day after the last recorded price.")
	f.StringVar(&c.end, "d", date.Today().String(), "Last day to fetch.")
	f.StringVar(&c.tickers, "tickers", "", "CSV file with a Symbol column to fetch tickers from.")
}

// apiKey resolves the EODHD API key, the flag taking precedence over the
// environment variable.
func (c *fetchCmd) apiKey() string {
	if c.apiKeyFlag == "" {
		c.apiKeyFlag = os.Getenv(eodhdAPIKeyEnv)
	}
	return c.apiKeyFlag
}

func (c *fetchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	key := c.apiKey()
	if key == "" {
		return fail("EODHD API key is not set. Use the -eodhd-api-key flag or the %s environment variable", eodhdAPIKeyEnv)
	}

	market, err := DecodeMarket()
	if err != nil {
		return fail("could not load market data: %v", err)
	}

	tickers, status := c.resolveTickers(f, market)
	if status != subcommands.ExitSuccess {
		return status
	}

	rng, status := c.resolveRange(market)
	if status != subcommands.ExitSuccess {
		return status
	}

	added, err := eodhd.UpdateMarket(key, market, tickers, rng)
	if err != nil {
		return fail("could not fetch from eodhd.com: %v", err)
	}
	if err := foliosim.SaveMarketFile(*marketFile, market); err != nil {
		return fail("could not save market data: %v", err)
	}

	days := 0
	for range market.TradingDays() {
		days++
	}
	fmt.Fprintf(os.Stderr, "✅ Fetched %d prices for %d tickers; market now covers %s (%d trading days).\n",
		added, len(tickers), market.Range(), days)
	return subcommands.ExitSuccess
}

// resolveTickers picks the tickers to fetch: the positional arguments, the
// -tickers CSV, or every ticker already in the market file.
func (c *fetchCmd) resolveTickers(f *flag.FlagSet, market *foliosim.Market) ([]string, subcommands.ExitStatus) {
	if args := f.Args(); len(args) > 0 {
		return args, subcommands.ExitSuccess
	}
	if c.tickers != "" {
		tickers, err := foliosim.LoadTickersCSV(c.tickers, 0)
		if err != nil {
			return nil, fail("could not read tickers from %q: %v", c.tickers, err)
		}
		return tickers, subcommands.ExitSuccess
	}
	if tickers := market.Tickers(); len(tickers) > 0 {
		return tickers, subcommands.ExitSuccess
	}
	return nil, usage("Error: no tickers to fetch. Pass them as arguments or with -tickers.")
}

// resolveRange picks the fetch window. The default continues one day past the
// market's last price, or reaches one year back when the market is empty.
func (c *fetchCmd) resolveRange(market *foliosim.Market) (date.Range, subcommands.ExitStatus) {
	end, err := date.Parse(c.end)
	if err != nil {
		return date.Range{}, usage("Error parsing end date: %v", err)
	}
	var start date.Date
	switch {
	case c.start != "":
		if start, err = date.Parse(c.start); err != nil {
			return date.Range{}, usage("Error parsing start date: %v", err)
		}
	case market.Range().To.IsZero():
		start = end.Add(-365)
	default:
		start = market.Range().To.Add(1)
	}
	return date.Span(start, end), subcommands.ExitSuccess
}
