package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/tjpapenfuss/foliosim/eodhd"
)

// searchCmd holds the flags for the 'search' subcommand.
type searchCmd struct {
	apiKeyFlag string
}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "search securities on eodhd.com" }
func (*searchCmd) Usage() string {
	return `fsim search <term>...

  Searches securities on eodhd.com by name, symbol or ISIN, and prints the
  ticker to use in a fetch or in a simulation config.

  Requires an API key, from the -eodhd-api-key flag or the ` + eodhdAPIKeyEnv + `
  environment variable.
`
}

func (c *searchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.apiKeyFlag, "eodhd-api-key", "", "EODHD API key. Takes precedence over the "+eodhdAPIKeyEnv+" environment variable.")
}

func (c *searchCmd) apiKey() string {
	if c.apiKeyFlag == "" {
		c.apiKeyFlag = os.Getenv(eodhdAPIKeyEnv)
	}
	return c.apiKeyFlag
}

func (c *searchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		return usage("Error: a search term is required.")
	}
	term := strings.Join(f.Args(), " ")

	key := c.apiKey()
	if key == "" {
		return fail("EODHD API key is not set. Use the -eodhd-api-key flag or the %s environment variable", eodhdAPIKeyEnv)
	}

	results, err := eodhd.Search(key, term)
	if err != nil {
		return fail("could not search securities: %v", err)
	}
	if len(results) == 0 {
		fmt.Printf("No results found for %q.\n", term)
		return subcommands.ExitSuccess
	}

	fmt.Printf("Found %d results for %q:\n\n", len(results), term)
	for _, item := range results {
		fmt.Printf("➡️   Name       : %s (%s)\n", item.Name, item.Code)
		fmt.Printf("    Type        : %s, Country: %s, Currency: %s\n", item.Type, item.Country, item.Currency)
		fmt.Printf("    Ticker      : %s\n", item.Ticker())
		fmt.Printf("    Prev. Close : %.2f on %s\n", item.PreviousClose, item.PreviousCloseDate)
		fmt.Printf("    $ fsim fetch %s\n\n", item.Ticker())
	}
	return subcommands.ExitSuccess
}
