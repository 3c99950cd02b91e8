package foliosim

import (
	"errors"
	"fmt"
	"log"
	"slices"
	"sort"

	"github.com/tjpapenfuss/foliosim/date"
)

// minTradableShares is the smallest fractional-share order the simulated
// brokerage accepts.
var minTradableShares = Q(0.01)

// ErrEmptyAllocation reports an allocation table with no investable weight.
var ErrEmptyAllocation = errors.New("allocation table has no investable weight")

// AllocationTable maps tickers to non-negative target weights. A valid table
// is normalized: weights sum to one over the eligible tickers.
type AllocationTable map[string]float64

// EqualWeights returns an allocation giving every ticker the same weight.
func EqualWeights(tickers []string) AllocationTable {
	table := make(AllocationTable, len(tickers))
	if len(tickers) == 0 {
		return table
	}
	weight := 1.0 / float64(len(tickers))
	for _, ticker := range tickers {
		table[ticker] = weight
	}
	return table
}

// ExplicitWeights returns a normalized allocation from user supplied weights.
// Non-positive weights are dropped.
func ExplicitWeights(weights map[string]float64) AllocationTable {
	table := make(AllocationTable, len(weights))
	var sum float64
	for _, w := range weights {
		if w > 0 {
			sum += w
		}
	}
	if sum <= 0 {
		return table
	}
	for ticker, w := range weights {
		if w > 0 {
			table[ticker] = w / sum
		}
	}
	return table
}

// Tickers returns the allocated tickers in lexical order.
func (t AllocationTable) Tickers() []string {
	tickers := make([]string, 0, len(t))
	for ticker := range t {
		tickers = append(tickers, ticker)
	}
	sort.Strings(tickers)
	return tickers
}

// Sum returns the sum of all weights.
func (t AllocationTable) Sum() float64 {
	var sum float64
	for _, w := range t {
		sum += w
	}
	return sum
}

// Excluding returns a copy of the table without the excluded tickers, with the
// remaining weights renormalized to sum to one. Excluding everything returns
// an empty table.
func (t AllocationTable) Excluding(excluded ...string) AllocationTable {
	adjusted := make(AllocationTable, len(t))
	var sum float64
	for ticker, w := range t {
		if slices.Contains(excluded, ticker) {
			continue
		}
		adjusted[ticker] = w
		sum += w
	}
	if sum <= 0 {
		return AllocationTable{}
	}
	for ticker, w := range adjusted {
		adjusted[ticker] = w / sum
	}
	return adjusted
}

// Validate checks that the table is usable: non-empty, no negative weights,
// and a strictly positive total.
func (t AllocationTable) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("%w: table is empty", ErrEmptyAllocation)
	}
	for ticker, w := range t {
		if w < 0 {
			return fmt.Errorf("allocation weight for %q is negative: %v", ticker, w)
		}
	}
	if t.Sum() <= 0 {
		return fmt.Errorf("%w: weights sum to %v", ErrEmptyAllocation, t.Sum())
	}
	return nil
}

// InvestAvailableCash deploys the portfolio's cash across the allocation
// table, excluding tickers harvested this step.
//
// Each eligible ticker with a price on 'on' receives its weighted share of the
// current cash pool, floored to cents, converted to fractional shares at the
// day's price. Buys below the minimum tradable increment of 0.01 share are
// skipped. Tickers without a price are skipped and their allocation stays in
// cash until the next step.
func (p *Portfolio) InvestAvailableCash(table AllocationTable, m *Market, on date.Date, excluded ...string) []Transaction {
	if !p.cash.IsPositive() {
		return nil
	}
	adjusted := table.Excluding(excluded...)
	if len(adjusted) == 0 {
		return nil
	}

	// Snapshot the cash pool before buying, so every ticker's amount is
	// computed against the same base. Buy clamps the last order to whatever
	// cash is actually left.
	available := p.cash

	var txs []Transaction
	for _, ticker := range adjusted.Tickers() {
		value, ok := m.Price(ticker, on)
		if !ok {
			log.Printf("no price for %s on %s: allocation kept as cash", ticker, on)
			continue
		}
		price := M(value, p.currency)
		amount := available.Mul(Q(adjusted[ticker])).Floor()
		shares := amount.DivPrice(price).Floor()
		if shares.LessThan(minTradableShares) {
			continue
		}
		tx, err := p.Buy(ticker, shares, price, on, "regular purchase")
		if err != nil {
			log.Printf("cannot buy %s on %s: %v", ticker, on, err)
			continue
		}
		if tx != nil {
			txs = append(txs, tx)
		}
	}
	return txs
}
