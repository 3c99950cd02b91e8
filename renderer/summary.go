package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"
	"github.com/tjpapenfuss/foliosim"
	"github.com/tjpapenfuss/foliosim/date"
)

// SummaryMarkdown renders the headline figures of a simulation.
func SummaryMarkdown(rng date.Range, m foliosim.Metrics) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Simulation Summary from %s to %s", rng.From, rng.To))
	doc.PlainText(fmt.Sprintf("Final Value: %s", m.FinalValue))

	doc.H2("Performance")

	table := md.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Total Deposits", m.TotalDeposits.String()},
			{"Final Value", m.FinalValue.String()},
			{"Total Return", m.TotalReturn.SignedString()},
			{"Total Return %", m.TotalReturnPct.SignedString()},
			{"Annualized Return", m.AnnualizedReturn.SignedString()},
		},
	}
	doc.Table(table)

	doc.H2("Taxes")

	taxes := md.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Realized Losses", m.RealizedLosses.SignedString()},
			{"Estimated Tax Savings", m.TaxSavings.String()},
			{"Transactions", fmt.Sprintf("%d", m.Transactions)},
		},
	}
	doc.Table(taxes)

	return doc.String()
}
