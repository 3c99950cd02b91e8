package foliosim

import "github.com/tjpapenfuss/foliosim/date"

// Holding aggregates every lot of a single security held by a portfolio.
//
// Shares and CostBasis are maintained alongside the lot list: Shares always
// equals the sum of open lots' remaining shares, and CostBasis is the
// weighted average cost per share of those open shares.
type Holding struct {
	Symbol    string
	Lots      lots
	Shares    Quantity
	CostBasis Money // average cost per share of the open shares
}

func newHolding(symbol, currency string) *Holding {
	return &Holding{Symbol: symbol, CostBasis: M(0, currency)}
}

// addLot opens a new lot and folds its cost into the average basis.
func (h *Holding) addLot(on date.Date, quantity Quantity, price Money) *Lot {
	l := newLot(on, quantity, price)
	h.Lots = append(h.Lots, l)

	// (old basis x old shares + new cost) / new shares
	oldValue := h.CostBasis.Mul(h.Shares)
	h.Shares = h.Shares.Add(quantity)
	h.CostBasis = oldValue.Add(l.Cost).Div(h.Shares)
	return l
}

// removeShares records the consumption of shares by a sell and re-derives the
// average basis from the open lots that remain.
func (h *Holding) removeShares(quantity Quantity) {
	h.Shares = h.Shares.Sub(quantity)
	if h.Shares.IsPositive() {
		h.CostBasis = h.Lots.cost(h.CostBasis.Currency()).Div(h.Shares)
	} else {
		h.CostBasis = M(0, h.CostBasis.Currency())
	}
}

// OpenLots returns the lots still holding shares, in purchase order.
func (h *Holding) OpenLots() []*Lot { return h.Lots.open() }

// MarketValue values the open shares at the given price.
func (h *Holding) MarketValue(price Money) Money { return price.Mul(h.Shares) }

// Cost returns the total remaining cost of the open lots.
func (h *Holding) Cost() Money { return h.Lots.cost(h.CostBasis.Currency()) }
