package renderer

import (
	"fmt"
	"strings"

	"github.com/tjpapenfuss/foliosim"
	"github.com/tjpapenfuss/foliosim/date"
)

// TransactionsMarkdown renders the ledger as a table, filtered to rng and,
// when security is not empty, to one security.
func TransactionsMarkdown(ledger *foliosim.Ledger, rng date.Range, security string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Transactions from %s to %s\n\n", rng.From.String(), rng.To.String())

	filters := []func(foliosim.Transaction) bool{foliosim.ByRange(rng)}
	if security != "" {
		filters = append(filters, foliosim.BySecurity(security))
	}

	fmt.Fprintln(&b, "| Date | Type | Security | Shares | Price | Amount | Gain | Held | Memo |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|---:|---:|---:|:---|")

	count := 0
	for _, tx := range ledger.Transactions(filters...) {
		count++
		switch v := tx.(type) {
		case foliosim.Deposit:
			fmt.Fprintf(&b, "| %s | %s | | | | %s | | | %s |\n",
				v.When(), v.What(), v.Amount, v.Rationale())
		case foliosim.Buy:
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | | | %s |\n",
				v.When(), v.What(), v.Security, v.Quantity, v.Price, v.Amount, v.Rationale())
		case foliosim.Sell:
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %dd | %s |\n",
				v.When(), v.What(), v.Security, v.Quantity, v.Price, v.Amount,
				v.Gain.SignedString(), v.DaysHeld, v.Rationale())
		default:
			fmt.Fprintf(&b, "| %s | %s | | | | | | | |\n", tx.When(), tx.What())
		}
	}
	if count == 0 {
		fmt.Fprint(&b, "\nNo transactions in this range.\n")
	}

	return b.String()
}
