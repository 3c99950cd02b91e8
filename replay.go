package foliosim

import (
	"fmt"

	"github.com/tjpapenfuss/foliosim/date"
)

// Replay reconstructs the portfolio a ledger describes, without running any
// policy pass: deposits restore cash, buys reopen their lots, and each sell
// consumes the exact lot its transaction recorded.
//
// Cash moves by the recorded transaction amounts, so a replayed portfolio
// lands on the same balance the run left behind. The returned portfolio
// shares the given ledger.
func Replay(ledger *Ledger, currency string, order SellOrder) (*Portfolio, error) {
	p := NewPortfolio(currency, order)

	for i, tx := range ledger.Transactions() {
		if err := tx.Validate(); err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		switch t := tx.(type) {
		case Deposit:
			p.cash = p.cash.Add(t.Amount)
		case Buy:
			p.holding(t.Security).addLot(t.Date, t.Quantity, t.Price)
			p.cash = p.cash.Sub(t.Amount)
		case Sell:
			if err := p.replaySell(t); err != nil {
				return nil, fmt.Errorf("transaction %d: %w", i, err)
			}
		default:
			return nil, fmt.Errorf("transaction %d: cannot replay command %q", i, tx.What())
		}
	}

	p.ledger = ledger
	return p, nil
}

// replaySell consumes the lot a recorded sell points at through its LotDate.
func (p *Portfolio) replaySell(t Sell) error {
	h := p.holdings[t.Security]
	if h == nil {
		return fmt.Errorf("sell of %s before any buy", t.Security)
	}
	l := h.Lots.boughtOn(t.LotDate, t.Quantity)
	if l == nil {
		return fmt.Errorf("sell of %s refers to no open lot bought on %s", t.Security, t.LotDate)
	}
	sold := l.consume(t.Quantity)
	if !sold.Equal(t.Quantity) {
		return fmt.Errorf("sell of %s %s consumed only %s from the lot bought on %s",
			t.Security, t.Quantity, sold, t.LotDate)
	}
	h.removeShares(sold)
	p.cash = p.cash.Add(t.Amount)
	return nil
}

// boughtOn finds the open lot a recorded sell consumed, preferring a lot that
// still holds enough shares when several share the purchase date.
func (ls lots) boughtOn(day date.Date, want Quantity) *Lot {
	var fallback *Lot
	for _, l := range ls {
		if l.Sold || l.Date != day {
			continue
		}
		if !l.Remaining.LessThan(want) {
			return l
		}
		if fallback == nil {
			fallback = l
		}
	}
	return fallback
}
