package foliosim

import (
	"testing"
	"time"

	"github.com/tjpapenfuss/foliosim/date"
)

// twoAssetMarket quotes AAPL at $100 and MSFT at $50 on every day of 2023.
func twoAssetMarket() *Market {
	m := NewMarket()
	for day := date.New(2023, time.January, 1); !day.After(date.New(2023, time.December, 31)); day = day.Add(1) {
		m.Add("AAPL", day, 100)
		m.Add("MSFT", day, 50)
	}
	return m
}

func TestPortfolio_CheckAndRebalance_drift(t *testing.T) {
	m := twoAssetMarket()
	start := date.New(2023, time.January, 3)
	on := date.New(2023, time.February, 1) // 29 days in: the time trigger is still warming up

	p := NewPortfolio("USD", LossFirst)
	p.Deposit(USD(10000), start, "initial investment")
	p.Buy("AAPL", Q(70), USD(100), start, "regular purchase")
	p.Buy("MSFT", Q(60), USD(50), start, "regular purchase")

	// AAPL sits at 70% against a 50% target: 20 points of drift, over the
	// 5 point threshold.
	table := AllocationTable{"AAPL": 0.5, "MSFT": 0.5}
	txs := p.CheckAndRebalance(table, m, on, start, date.Quarterly, 5)
	if len(txs) == 0 {
		t.Fatal("CheckAndRebalance() made no trades on a 20 point drift")
	}

	if shares := p.Holding("AAPL").Shares; !shares.Equal(Q(50)) {
		t.Errorf("AAPL shares = %s, want 50 after the trim", shares)
	}
	if shares := p.Holding("MSFT").Shares; !shares.Equal(Q(100)) {
		t.Errorf("MSFT shares = %s, want 100 after the add", shares)
	}
	if p.LastRebalance() != on {
		t.Errorf("LastRebalance() = %s, want %s", p.LastRebalance(), on)
	}
}

func TestPortfolio_CheckAndRebalance_warmup(t *testing.T) {
	m := twoAssetMarket()
	start := date.New(2023, time.January, 3)

	p := NewPortfolio("USD", LossFirst)
	p.Deposit(USD(10000), start, "initial investment")
	p.Buy("AAPL", Q(52), USD(100), start, "regular purchase")
	p.Buy("MSFT", Q(96), USD(50), start, "regular purchase")

	// 2 points of drift: below the threshold, so only the time trigger can
	// fire, and it waits out the 90 day warm-up.
	table := AllocationTable{"AAPL": 0.5, "MSFT": 0.5}

	if txs := p.CheckAndRebalance(table, m, start.Add(89), start, date.Quarterly, 5); len(txs) != 0 {
		t.Errorf("CheckAndRebalance() traded %d times on day 89, want 0", len(txs))
	}
	if !p.LastRebalance().IsZero() {
		t.Errorf("LastRebalance() = %s, want zero before any rebalance", p.LastRebalance())
	}

	txs := p.CheckAndRebalance(table, m, start.Add(90), start, date.Quarterly, 5)
	if len(txs) == 0 {
		t.Fatal("CheckAndRebalance() made no trades once the warm-up elapsed")
	}
	if shares := p.Holding("AAPL").Shares; !shares.Equal(Q(50)) {
		t.Errorf("AAPL shares = %s, want 50", shares)
	}
	if shares := p.Holding("MSFT").Shares; !shares.Equal(Q(100)) {
		t.Errorf("MSFT shares = %s, want 100", shares)
	}
}

func TestPortfolio_CheckAndRebalance_excluded(t *testing.T) {
	m := twoAssetMarket()
	start := date.New(2023, time.January, 3)
	on := date.New(2023, time.June, 1)

	p := NewPortfolio("USD", LossFirst)
	p.Deposit(USD(2500), start, "initial investment")
	p.Buy("AAPL", Q(10), USD(100), start, "regular purchase")
	p.Buy("MSFT", Q(20), USD(50), start, "regular purchase")

	// AAPL realized a loss earlier this step. Without the exclusion it would
	// be liquidated outright, its weight having been folded into MSFT.
	table := AllocationTable{"AAPL": 0.5, "MSFT": 0.5}
	txs := p.CheckAndRebalance(table, m, on, start, date.Quarterly, 5, "AAPL")
	if len(txs) == 0 {
		t.Fatal("CheckAndRebalance() made no trades")
	}
	for _, tx := range txs {
		if sell, ok := tx.(Sell); ok && sell.Security == "AAPL" {
			t.Errorf("CheckAndRebalance() sold the excluded AAPL: %v", sell)
		}
		if buy, ok := tx.(Buy); ok && buy.Security == "AAPL" {
			t.Errorf("CheckAndRebalance() bought the excluded AAPL: %v", buy)
		}
	}
	if shares := p.Holding("AAPL").Shares; !shares.Equal(Q(10)) {
		t.Errorf("AAPL shares = %s, want 10 untouched", shares)
	}
	if shares := p.Holding("MSFT").Shares; !shares.Equal(Q(30)) {
		t.Errorf("MSFT shares = %s, want 30 after deploying the spare cash", shares)
	}
}

func TestPortfolio_CheckAndRebalance_liquidatesDropped(t *testing.T) {
	m := twoAssetMarket()
	start := date.New(2023, time.January, 3)
	on := date.New(2023, time.June, 1)

	p := NewPortfolio("USD", LossFirst)
	p.Deposit(USD(2000), start, "initial investment")
	p.Buy("AAPL", Q(10), USD(100), start, "regular purchase")
	p.Buy("MSFT", Q(20), USD(50), start, "regular purchase")

	// AAPL is gone from the target allocation: close it and recycle the cash.
	table := AllocationTable{"MSFT": 1}
	txs := p.CheckAndRebalance(table, m, on, start, date.Quarterly, 5)
	if len(txs) == 0 {
		t.Fatal("CheckAndRebalance() made no trades")
	}

	first, ok := txs[0].(Sell)
	if !ok || first.Security != "AAPL" || first.Rationale() != "rebalance liquidation" {
		t.Errorf("first trade = %v, want a rebalance liquidation of AAPL", txs[0])
	}
	if shares := p.Holding("AAPL").Shares; !shares.IsZero() {
		t.Errorf("AAPL shares = %s, want 0", shares)
	}
	if shares := p.Holding("MSFT").Shares; !shares.Equal(Q(40)) {
		t.Errorf("MSFT shares = %s, want 40", shares)
	}
}

func TestPortfolio_CheckAndRebalance_noTrigger(t *testing.T) {
	m := twoAssetMarket()
	start := date.New(2023, time.January, 3)

	p := NewPortfolio("USD", LossFirst)
	p.Deposit(USD(10000), start, "initial investment")
	p.Buy("AAPL", Q(50), USD(100), start, "regular purchase")
	p.Buy("MSFT", Q(100), USD(50), start, "regular purchase")

	// Perfectly balanced inside the warm-up window: nothing to do.
	table := AllocationTable{"AAPL": 0.5, "MSFT": 0.5}
	if txs := p.CheckAndRebalance(table, m, start.Add(30), start, date.Quarterly, 5); txs != nil {
		t.Errorf("CheckAndRebalance() = %v, want nil", txs)
	}
	if !p.LastRebalance().IsZero() {
		t.Errorf("LastRebalance() = %s, want zero", p.LastRebalance())
	}
}

func TestPortfolio_CheckAndRebalance_emptyPortfolio(t *testing.T) {
	m := twoAssetMarket()
	p := NewPortfolio("USD", LossFirst)
	p.Deposit(USD(1000), date.New(2023, time.January, 3), "initial investment")

	table := AllocationTable{"AAPL": 1}
	if txs := p.CheckAndRebalance(table, m, date.New(2023, time.June, 1), date.New(2023, time.January, 3), date.Quarterly, 5); txs != nil {
		t.Errorf("CheckAndRebalance() on a cash-only portfolio = %v, want nil", txs)
	}
}
