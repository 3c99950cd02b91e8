package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/tjpapenfuss/foliosim"
)

// importCmd holds the flags for the 'import' subcommand.
type importCmd struct {
	output string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "convert a legacy transactions CSV into a ledger" }
func (*importCmd) Usage() string {
	return `fsim import [-o <file>] <transactions.csv>

  Converts a legacy transactions CSV export into the JSONL ledger format, so
  old runs stay readable by the report commands. Legacy sells carry no lot
  reference; the lot date is derived from the recorded holding period.

  Example:
    fsim import -o ledger.jsonl output/transactions.csv
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Ledger file to write. Defaults to the global -ledger-file.")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usage("Error: exactly one transactions CSV file is required.")
	}
	path := f.Arg(0)
	if c.output == "" {
		c.output = *ledgerFile
	}

	in, err := os.Open(path)
	if err != nil {
		return fail("could not open %q: %v", path, err)
	}
	defer in.Close()

	ledger, err := foliosim.ImportTransactionsCSV(in, *defaultCurrency)
	if err != nil {
		return fail("could not import %q: %v", path, err)
	}

	if err := foliosim.SaveLedgerFile(c.output, ledger); err != nil {
		return fail("could not save ledger: %v", err)
	}

	fmt.Fprintf(os.Stderr, "✅ Imported %d transactions from %q into %q.\n", ledger.Len(), path, c.output)
	return subcommands.ExitSuccess
}
