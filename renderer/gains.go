package renderer

import (
	"fmt"
	"strings"

	"github.com/tjpapenfuss/foliosim"
)

// GainsMarkdown renders a realized gains report with the short term and long
// term split a tax return asks for.
func GainsMarkdown(report *foliosim.GainsReport) string {
	var b strings.Builder

	if _, ok := report.Range.Period(); ok {
		fmt.Fprintf(&b, "# Realized Gains Report for %s\n\n", report.Range.Identifier())
	} else {
		fmt.Fprintf(&b, "# Realized Gains Report from %s to %s\n\n", report.Range.From, report.Range.To)
	}

	fmt.Fprint(&b, "## Gains per Security\n\n")
	fmt.Fprintln(&b, "| Security | ST Gains | ST Losses | LT Gains | LT Losses | Net |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|")

	for _, sg := range report.Securities {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			sg.Security,
			sg.ShortTermGains.SignedString(),
			sg.ShortTermLosses.SignedString(),
			sg.LongTermGains.SignedString(),
			sg.LongTermLosses.SignedString(),
			sg.Net().SignedString(),
		)
	}
	fmt.Fprintf(&b, "| **%s** | **%s** | **%s** | **%s** | **%s** | **%s** |\n",
		"Total",
		report.ShortTermGains.SignedString(),
		report.ShortTermLosses.SignedString(),
		report.LongTermGains.SignedString(),
		report.LongTermLosses.SignedString(),
		report.Net().SignedString(),
	)

	if len(report.Monthly) > 0 {
		fmt.Fprint(&b, "\n## Gains per Month\n\n")
		fmt.Fprintln(&b, "| Month | ST Gains | ST Losses | LT Gains | LT Losses | Net |")
		fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|")
		for _, mg := range report.Monthly {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
				mg.Month.Format("2006-01"),
				mg.ShortTermGains.SignedString(),
				mg.ShortTermLosses.SignedString(),
				mg.LongTermGains.SignedString(),
				mg.LongTermLosses.SignedString(),
				mg.Net().SignedString(),
			)
		}
	}

	return b.String()
}
