package foliosim

import (
	"slices"

	"github.com/tjpapenfuss/foliosim/date"
)

// Lot represents a single purchase of a security: one tax lot, with its own
// purchase date and cost basis.
//
// A lot is created whole by a buy and only ever shrinks through sells.
// Closed lots are kept so the ledger's cost basis history stays auditable.
type Lot struct {
	Date      date.Date // purchase date
	Initial   Quantity  // shares originally purchased
	Remaining Quantity  // shares still held
	Price     Money     // purchase price per share
	Cost      Money     // Initial * Price at purchase time
	Sold      bool      // true exactly when Remaining is zero
}

func newLot(on date.Date, quantity Quantity, price Money) *Lot {
	return &Lot{
		Date:      on,
		Initial:   quantity,
		Remaining: quantity,
		Price:     price,
		Cost:      price.Mul(quantity),
	}
}

// consume removes up to quantity shares from the lot and returns the amount
// actually removed, never more than Remaining.
func (l *Lot) consume(quantity Quantity) Quantity {
	sold := quantity.Min(l.Remaining)
	l.Remaining = l.Remaining.Sub(sold)
	l.Sold = l.Remaining.IsZero()
	return sold
}

// RemainingCost returns the share of the original cost still held, prorated
// by Remaining/Initial. A partially sold lot's basis shrinks with it.
func (l *Lot) RemainingCost() Money {
	if l.Sold {
		return M(0, l.Cost.Currency())
	}
	return l.Cost.Mul(l.Remaining).Div(l.Initial)
}

// DaysHeld returns the holding period of the lot as of the given date.
func (l *Lot) DaysHeld(on date.Date) int { return on.Sub(l.Date) }

// Return computes the gain or loss percentage of the remaining shares at the
// given price, against the prorated remaining cost.
func (l *Lot) Return(price Money) Percent {
	cost := l.RemainingCost()
	if !cost.IsPositive() {
		return 0
	}
	value := price.Mul(l.Remaining)
	return Percent(100 * (value.AsFloat()/cost.AsFloat() - 1))
}

type lots []*Lot

// open returns the lots that still hold shares, in purchase (insertion) order.
func (ls lots) open() lots {
	var o lots
	for _, l := range ls {
		if !l.Sold {
			o = append(o, l)
		}
	}
	return o
}

// shares sums the remaining shares over open lots.
func (ls lots) shares() Quantity {
	var total Quantity
	for _, l := range ls {
		total = total.Add(l.Remaining)
	}
	return total
}

// cost sums the prorated remaining cost over open lots.
func (ls lots) cost(currency string) Money {
	total := M(0, currency)
	for _, l := range ls {
		if !l.Sold {
			total = total.Add(l.RemainingCost())
		}
	}
	return total
}

// ordered returns the open lots arranged in the order a sell at the given
// price consumes them.
//
// LossFirst splits open lots around the sell price: lots bought above it
// (losses) come first, biggest loss per share first, then lots bought at or
// below it (gains) oldest first. MostRecentFirst is plain reverse
// chronological order. Both sorts are stable so same-day lots keep their
// purchase order.
func (ls lots) ordered(order SellOrder, price Money) lots {
	open := ls.open()
	switch order {
	case MostRecentFirst:
		sorted := slices.Clone(open)
		slices.SortStableFunc(sorted, func(a, b *Lot) int {
			if a.Date.After(b.Date) {
				return -1
			}
			if a.Date.Before(b.Date) {
				return 1
			}
			return 0
		})
		return sorted
	default: // LossFirst
		var losses, gains lots
		for _, l := range open {
			if l.Price.GreaterThan(price) {
				losses = append(losses, l)
			} else {
				gains = append(gains, l)
			}
		}
		// Loss per share grows with the purchase price, the sell price being fixed.
		slices.SortStableFunc(losses, func(a, b *Lot) int { return b.Price.Cmp(a.Price) })
		slices.SortStableFunc(gains, func(a, b *Lot) int {
			if a.Date.Before(b.Date) {
				return -1
			}
			if a.Date.After(b.Date) {
				return 1
			}
			return 0
		})
		return append(losses, gains...)
	}
}
