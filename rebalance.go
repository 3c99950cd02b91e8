package foliosim

import (
	"log"
	"slices"

	"github.com/tjpapenfuss/foliosim/date"
)

// Memos recorded on rebalancing transactions.
const (
	rebalanceSellReason = "rebalance liquidation"
	rebalanceTrimReason = "rebalance trim"
	rebalanceAddReason  = "rebalance add"
)

// rebalanceWarmup is the minimum age of a portfolio before the first
// time-triggered rebalance, in days.
const rebalanceWarmup = 90

// minRebalanceBuy is the smallest purchase a rebalance will place, to avoid
// churning on rounding noise.
var minRebalanceBuy = M(10, "")

// CheckAndRebalance realigns the portfolio to the target allocation when
// either the calendar or the drift threshold says so.
//
// The time trigger fires when 'on' falls in a later calendar period than the
// last executed rebalance, at the given frequency. A portfolio that has never
// rebalanced waits out a 90 day warm-up from the simulation start instead.
// The drift trigger fires when any holding's current weight strays more than
// 'threshold' percentage points from its target weight.
//
// Tickers in 'excluded' were harvested this step and are not traded in either
// direction. The last-rebalance date moves only when at least one trade
// actually executes.
func (p *Portfolio) CheckAndRebalance(table AllocationTable, m *Market, on, start date.Date, freq date.Period, threshold Percent, excluded ...string) []Transaction {
	if len(p.symbols) == 0 {
		return nil
	}

	adjusted := table.Excluding(excluded...)
	if len(adjusted) == 0 {
		return nil
	}

	timeTriggered := false
	if p.lastRebalance.IsZero() {
		timeTriggered = on.Sub(start) >= rebalanceWarmup
	} else {
		timeTriggered = !on.SamePeriod(p.lastRebalance, freq)
	}

	if !timeTriggered && !p.drifted(adjusted, m, on, threshold) {
		return nil
	}

	txs := p.rebalance(adjusted, m, on, excluded)
	if len(txs) > 0 {
		p.lastRebalance = on
	}
	return txs
}

// drifted reports whether any holding's live weight deviates from its target
// by more than the threshold, in percentage points.
func (p *Portfolio) drifted(adjusted AllocationTable, m *Market, on date.Date, threshold Percent) bool {
	total := p.TotalValue(m, on)
	if !total.IsPositive() {
		return false
	}

	var maxDrift Percent
	for _, h := range p.Holdings() {
		target, ok := adjusted[h.Symbol]
		if !ok {
			continue
		}
		value, ok := m.Price(h.Symbol, on)
		if !ok || !h.Shares.IsPositive() {
			continue
		}
		current := h.MarketValue(M(value, p.currency))
		drift := Percent(100*current.AsFloat()/total.AsFloat() - 100*target)
		if drift < 0 {
			drift = -drift
		}
		if drift > maxDrift {
			maxDrift = drift
		}
	}
	return maxDrift > threshold
}

// rebalance executes one rebalancing pass: trim or liquidate overweight
// holdings first, then deploy the cash into underweight ones. A 2% buffer on
// both sides keeps rounding noise from generating trades.
func (p *Portfolio) rebalance(adjusted AllocationTable, m *Market, on date.Date, excluded []string) []Transaction {
	total := p.TotalValue(m, on)

	target := make(map[string]Money, len(adjusted))
	for ticker, weight := range adjusted {
		target[ticker] = total.Mul(Q(weight))
	}

	var txs []Transaction

	// Sells: positions out of the target set are closed entirely, positions
	// above target are trimmed down to it.
	for _, h := range p.Holdings() {
		if !h.Shares.IsPositive() || slices.Contains(excluded, h.Symbol) {
			continue
		}
		value, ok := m.Price(h.Symbol, on)
		if !ok {
			log.Printf("no price for %s on %s: not rebalanced", h.Symbol, on)
			continue
		}
		price := M(value, p.currency)
		current := h.MarketValue(price)

		want, inTarget := target[h.Symbol]
		if !inTarget {
			txs = append(txs, p.Sell(h.Symbol, h.Shares, price, on, rebalanceSellReason)...)
			continue
		}
		if current.GreaterThan(want.Mul(Q(1.02))) {
			shares := current.Sub(want).DivPrice(price).Floor()
			if shares.GreaterThan(minTradableShares) {
				txs = append(txs, p.Sell(h.Symbol, shares, price, on, rebalanceTrimReason)...)
			}
		}
	}

	// Buys: bring underweight positions back up to target with the cash
	// raised, largest trades capped by what is left.
	if p.cash.GreaterThan(minRebalanceBuy) {
		for _, ticker := range adjusted.Tickers() {
			value, ok := m.Price(ticker, on)
			if !ok {
				continue
			}
			price := M(value, p.currency)

			current := M(0, p.currency)
			if h := p.holdings[ticker]; h != nil {
				current = h.MarketValue(price)
			}
			want := target[ticker]
			if current.GreaterThanOrEqual(want.Mul(Q(0.98))) {
				continue
			}

			amount := want.Sub(current)
			if p.cash.LessThan(amount) {
				amount = p.cash
			}
			shares := amount.DivPrice(price).Floor()
			if shares.LessThan(minTradableShares) || amount.LessThanOrEqual(minRebalanceBuy) {
				continue
			}
			tx, err := p.Buy(ticker, shares, price, on, rebalanceAddReason)
			if err != nil {
				log.Printf("cannot rebalance %s on %s: %v", ticker, on, err)
				continue
			}
			if tx != nil {
				txs = append(txs, tx)
			}
		}
	}

	return txs
}
