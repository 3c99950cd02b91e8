package foliosim

import (
	"github.com/tjpapenfuss/foliosim/date"
)

// HarvestReason is the memo recorded on every harvesting sell.
const HarvestReason = "tax-loss harvest"

// HarvestLosses runs one tax-loss harvesting pass over every open lot of
// every holding.
//
// A lot qualifies when its return, computed on the remaining shares against
// their prorated cost, has fallen to the trigger threshold or below. The
// trigger is a negative percentage, -10 meaning "down ten percent or worse".
// A qualifying lot is liquidated entirely, one sell transaction per lot.
//
// The second return value lists the tickers that realized a loss this pass.
// Callers feed it to the allocation and rebalancing passes so the same
// security is not bought back the same day.
//
// Holdings without a price on 'on' are left untouched. The pass is idempotent
// within a step: a harvested lot is closed, so running the pass again at the
// same prices sells nothing further.
func (p *Portfolio) HarvestLosses(m *Market, on date.Date, trigger Percent) ([]Transaction, []string) {
	var txs []Transaction
	var sold []string

	for _, h := range p.Holdings() {
		value, ok := m.Price(h.Symbol, on)
		if !ok {
			continue
		}
		price := M(value, p.currency)

		tickerSold := false
		for _, l := range h.OpenLots() {
			if l.Return(price) > trigger {
				continue
			}
			tx := p.sellFromLot(h, l, l.Remaining, price, on, HarvestReason)
			txs = append(txs, tx)
			tickerSold = true
		}
		if tickerSold {
			sold = append(sold, h.Symbol)
		}
	}
	return txs, sold
}
