package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"
	"github.com/tjpapenfuss/foliosim"
)

// HistoryMarkdown renders the equity curve recorded by a simulation, one row
// per snapshot.
func HistoryMarkdown(snapshots []foliosim.PortfolioSnapshot) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	if len(snapshots) == 0 {
		doc.H1("Portfolio History")
		doc.PlainText("No snapshots recorded.")
		return doc.String()
	}

	first, last := snapshots[0], snapshots[len(snapshots)-1]
	doc.H1(fmt.Sprintf("Portfolio History from %s to %s", first.Date, last.Date))

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Date", "Cash", "Invested", "Total", "Growth"},
		Rows:   [][]string{},
	}
	base := first.Total
	for _, s := range snapshots {
		growth := "n/a"
		if base.IsPositive() {
			growth = foliosim.Percent(100 * (s.Total.AsFloat()/base.AsFloat() - 1)).SignedString()
		}
		table.Rows = append(table.Rows, []string{
			s.Date.String(),
			s.Cash.String(),
			s.Invested.String(),
			s.Total.String(),
			growth,
		})
	}
	doc.Table(table)

	return doc.String()
}
