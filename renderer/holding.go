package renderer

import (
	"fmt"
	"strings"

	"github.com/tjpapenfuss/foliosim"
	"github.com/tjpapenfuss/foliosim/date"
)

// HoldingsMarkdown renders the open positions of a portfolio valued at the
// prices known on a given day, with the per-lot detail that drives the sell
// and harvest decisions.
func HoldingsMarkdown(p *foliosim.Portfolio, m *foliosim.Market, on date.Date) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Holdings on %s\n\n", on.String())
	fmt.Fprintf(&b, "Cash: %s\n\n", p.Cash())

	fmt.Fprintln(&b, "| Security | Shares | Avg Cost | Price | Value | Unrealized |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|")

	total := p.Cash()
	for _, h := range p.Holdings() {
		if !h.Shares.IsPositive() {
			continue
		}
		value, ok := m.PriceAsOf(h.Symbol, on)
		if !ok {
			fmt.Fprintf(&b, "| %s | %s | %s | n/a | n/a | n/a |\n", h.Symbol, h.Shares, h.CostBasis)
			continue
		}
		price := foliosim.M(value, p.Currency())
		market := h.MarketValue(price)
		unrealized := market.Sub(h.Cost())
		total = total.Add(market)
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			h.Symbol, h.Shares, h.CostBasis, price, market, unrealized.SignedString())
	}
	fmt.Fprintf(&b, "\nTotal Value: %s\n", total)

	fmt.Fprint(&b, "\n## Open Lots\n\n")
	fmt.Fprintln(&b, "| Security | Purchased | Shares | Price | Cost | Return |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|---:|")
	for _, h := range p.Holdings() {
		value, ok := m.PriceAsOf(h.Symbol, on)
		for _, l := range h.OpenLots() {
			ret := "n/a"
			if ok {
				ret = l.Return(foliosim.M(value, p.Currency())).SignedString()
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
				h.Symbol, l.Date, l.Remaining, l.Price, l.RemainingCost(), ret)
		}
	}

	return b.String()
}
