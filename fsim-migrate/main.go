// fsim-migrate converts the CSV exports of the legacy forecasting scripts
// into the JSONL stores fsim reads.
//
// Installed on PATH it runs as an fsim extension:
//
//	fsim migrate ledger -in transactions.csv
//	fsim migrate history -in history.csv
//	fsim migrate check
//
// Output locations and the currency come from the FSIM_* environment
// variables fsim passes to extensions, with flags to override them.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/google/subcommands"
	"github.com/tjpapenfuss/foliosim"
	"github.com/tjpapenfuss/foliosim/date"
)

func main() {
	// The extension needs its own flag set, independent of the fsim tool.
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)

	commander := subcommands.NewCommander(flag.CommandLine, "fsim-migrate")
	commander.Register(&ledgerCmd{}, "")
	commander.Register(&historyCmd{}, "")
	commander.Register(&checkCmd{}, "")
	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// envOr reads the environment fsim passes to extensions, with a fallback
// for standalone use.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func currency() string { return envOr("FSIM_CURRENCY", "USD") }

// --- ledgerCmd ---

type ledgerCmd struct {
	in  string
	out string
}

func (*ledgerCmd) Name() string     { return "ledger" }
func (*ledgerCmd) Synopsis() string { return "convert a legacy transactions.csv into a JSONL ledger" }
func (*ledgerCmd) Usage() string {
	return `fsim-migrate ledger -in <transactions.csv> [-out <ledger.jsonl>]

Converts the transactions.csv export of the legacy forecasting scripts into
the JSONL transaction ledger fsim reads.
`
}
func (c *ledgerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.in, "in", "", "Path to the legacy transactions.csv export.")
	f.StringVar(&c.out, "out", envOr("FSIM_LEDGER_FILE", "ledger.jsonl"), "Path of the ledger to write.")
}

func (c *ledgerCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.in == "" {
		fmt.Fprintln(os.Stderr, "Error: the -in flag is required.")
		return subcommands.ExitUsageError
	}

	in, err := os.Open(c.in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening %q: %v\n", c.in, err)
		return subcommands.ExitFailure
	}
	defer in.Close()

	ledger, err := foliosim.ImportTransactionsCSV(in, currency())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error converting %q: %v\n", c.in, err)
		return subcommands.ExitFailure
	}

	if err := foliosim.SaveLedgerFile(c.out, ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Migrated %d transactions into %s\n", ledger.Len(), c.out)
	return subcommands.ExitSuccess
}

// --- historyCmd ---

type historyCmd struct {
	in  string
	out string
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "convert a legacy history.csv into a JSONL snapshot history" }
func (*historyCmd) Usage() string {
	return `fsim-migrate history -in <history.csv> [-out <snapshots.jsonl>]

Converts the history.csv export of the legacy forecasting scripts, one row
of cash and holdings value per simulation step, into the JSONL snapshot
history fsim reads.
`
}
func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.in, "in", "", "Path to the legacy history.csv export.")
	f.StringVar(&c.out, "out", envOr("FSIM_SNAPSHOTS_FILE", "snapshots.jsonl"), "Path of the snapshot history to write.")
}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.in == "" {
		fmt.Fprintln(os.Stderr, "Error: the -in flag is required.")
		return subcommands.ExitUsageError
	}

	in, err := os.Open(c.in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening %q: %v\n", c.in, err)
		return subcommands.ExitFailure
	}
	defer in.Close()

	snapshots, err := readHistoryCSV(in, currency())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error converting %q: %v\n", c.in, err)
		return subcommands.ExitFailure
	}

	if err := foliosim.SaveSnapshotsFile(c.out, snapshots); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing snapshots: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Migrated %d snapshots into %s\n", len(snapshots), c.out)
	return subcommands.ExitSuccess
}

// readHistoryCSV parses the legacy history export: columns date, cash,
// investments_value and total_value. The total is rederived from cash and
// invested value rather than trusted.
func readHistoryCSV(r io.Reader, cur string) ([]foliosim.PortfolioSnapshot, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("cannot read csv: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("no history rows to migrate")
	}

	header := records[0]
	dateCol := column(header, "date")
	cashCol := column(header, "cash")
	investedCol := column(header, "investments_value")
	if dateCol < 0 || cashCol < 0 || investedCol < 0 {
		return nil, fmt.Errorf("history header must name the date, cash and investments_value columns, got %v", header)
	}

	var snapshots []foliosim.PortfolioSnapshot
	for i, rec := range records[1:] {
		row := i + 2
		day, err := date.Parse(strings.TrimSpace(rec[dateCol]))
		if err != nil {
			return nil, fmt.Errorf("row %d: bad date %q", row, rec[dateCol])
		}
		cash, err := strconv.ParseFloat(strings.TrimSpace(rec[cashCol]), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad cash %q", row, rec[cashCol])
		}
		invested, err := strconv.ParseFloat(strings.TrimSpace(rec[investedCol]), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad investments_value %q", row, rec[investedCol])
		}
		snapshots = append(snapshots, foliosim.NewSnapshot(day, foliosim.M(cash, cur), foliosim.M(invested, cur)))
	}
	return snapshots, nil
}

// column finds the index of a header name, -1 when absent.
func column(header []string, names ...string) int {
	for i, h := range header {
		h = strings.TrimSpace(h)
		for _, name := range names {
			if h == name {
				return i
			}
		}
	}
	return -1
}

// --- checkCmd ---

type checkCmd struct {
	ledger    string
	snapshots string
	market    string
}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "verify a migrated ledger against its snapshot history" }
func (*checkCmd) Usage() string {
	return `fsim-migrate check [-ledger <file>] [-snapshots <file>] [-market <file>]

Replays the migrated ledger and compares the resulting state against the
last migrated snapshot. Cash must match the ledger's cash flow; when market
data is available the invested value is compared too.
`
}
func (c *checkCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ledger, "ledger", envOr("FSIM_LEDGER_FILE", "ledger.jsonl"), "Path to the migrated ledger.")
	f.StringVar(&c.snapshots, "snapshots", envOr("FSIM_SNAPSHOTS_FILE", "snapshots.jsonl"), "Path to the migrated snapshot history.")
	f.StringVar(&c.market, "market", envOr("FSIM_MARKET_FILE", "market.jsonl"), "Path to the market data used for valuation.")
}

func (c *checkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := foliosim.LoadLedgerFile(c.ledger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	snapshots, err := foliosim.LoadSnapshotsFile(c.snapshots)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading snapshots: %v\n", err)
		return subcommands.ExitFailure
	}
	if len(snapshots) == 0 {
		fmt.Fprintf(os.Stderr, "Error: no snapshots in %q, migrate the history first.\n", c.snapshots)
		return subcommands.ExitFailure
	}

	p, err := foliosim.Replay(ledger, currency(), foliosim.LossFirst)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: the ledger does not replay cleanly: %v\n", err)
		return subcommands.ExitFailure
	}

	last := snapshots[len(snapshots)-1]
	ok := true

	if !almostEqual(p.Cash().AsFloat(), last.Cash.AsFloat(), 0.01) {
		fmt.Printf("MISMATCH cash: the ledger replays to %s, the last snapshot records %s\n", p.Cash(), last.Cash)
		ok = false
	}

	market, err := foliosim.LoadMarketFile(c.market)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading market data: %v\n", err)
		return subcommands.ExitFailure
	}
	if len(market.Tickers()) == 0 {
		fmt.Println("no market data: skipping the invested value comparison")
	} else {
		invested := p.InvestedValue(market, last.Date)
		if !almostEqual(invested.AsFloat(), last.Invested.AsFloat(), 0.01) {
			fmt.Printf("MISMATCH invested: the holdings value %s on %s, the last snapshot records %s\n", invested, last.Date, last.Invested)
			ok = false
		}
	}

	if !ok {
		return subcommands.ExitFailure
	}
	fmt.Printf("OK: %d transactions replay into the state of %s\n", ledger.Len(), last.Date)
	return subcommands.ExitSuccess
}

// almostEqual compares two floats for approximate equality using a relative
// tolerance.
func almostEqual(a, b, tolerance float64) bool {
	if a == b {
		return true
	}
	if a == 0 {
		return math.Abs(b) < tolerance
	}
	diff := math.Abs(a - b)
	return (diff / math.Abs(a)) < tolerance
}
