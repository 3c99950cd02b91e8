// Package cmd implements the CLI application to run and inspect portfolio
// simulations.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/tjpapenfuss/foliosim"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&runCmd{}, "simulation")
	c.Register(&summaryCmd{}, "simulation")
	c.Register(&historyCmd{}, "simulation")

	c.Register(&transactionsCmd{}, "reports")
	c.Register(&gainsCmd{}, "reports")
	c.Register(&holdingsCmd{}, "reports")

	c.Register(&fetchCmd{}, "market data")
	c.Register(&searchCmd{}, "market data")
	c.Register(&exportCmd{}, "market data")

	c.Register(&importCmd{}, "ledger")

	c.Register(&topicCmd{}, "documentation")
	c.Register(&assistCmd{}, "documentation")
}

// Known reports whether 'name' is a built-in subcommand, as opposed to a
// candidate fsim-<name> extension.
func Known(name string) bool {
	switch name {
	case "run", "summary", "history",
		"transactions", "gains", "holdings",
		"fetch", "search", "export",
		"import",
		"topic", "assist",
		"help", "flags", "commands":
		return true
	}
	return false
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var ledgerFile = flag.String("ledger-file", "ledger.jsonl", "Path to the transaction ledger file (JSONL format)")
var marketFile = flag.String("market-file", "market.jsonl", "Path to the market data file (JSONL format)")
var snapshotsFile = flag.String("snapshots-file", "snapshots.jsonl", "Path to the snapshot history file (JSONL format)")
var defaultCurrency = flag.String("currency", "USD", "Currency used for cash and valuations")

// Verbose enables extra logging in every subcommand.
var Verbose = flag.Bool("v", false, "Verbose output")

// DecodeLedger loads the app ledger file, an empty ledger if the file does not exist.
func DecodeLedger() (*foliosim.Ledger, error) {
	return foliosim.LoadLedgerFile(*ledgerFile)
}

// DecodeMarket loads the app market data file, an empty market if the file does not exist.
func DecodeMarket() (*foliosim.Market, error) {
	return foliosim.LoadMarketFile(*marketFile)
}

// DecodeSnapshots loads the app snapshot history, empty if the file does not exist.
func DecodeSnapshots() ([]foliosim.PortfolioSnapshot, error) {
	return foliosim.LoadSnapshotsFile(*snapshotsFile)
}

// fail prints an error for the user and returns the failure exit status. Use
// usage() instead when the user can fix the invocation.
func fail(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	return subcommands.ExitFailure
}

func usage(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	return subcommands.ExitUsageError
}
