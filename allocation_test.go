package foliosim

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/tjpapenfuss/foliosim/date"
)

func TestEqualWeights(t *testing.T) {
	table := EqualWeights([]string{"AAPL", "MSFT", "GOOG"})
	if len(table) != 3 {
		t.Fatalf("len(table) = %d, want 3", len(table))
	}
	for ticker, w := range table {
		if math.Abs(w-1.0/3) > 1e-9 {
			t.Errorf("weight[%s] = %v, want 1/3", ticker, w)
		}
	}
	if table := EqualWeights(nil); len(table) != 0 {
		t.Errorf("EqualWeights(nil) has %d entries, want 0", len(table))
	}
}

func TestExplicitWeights(t *testing.T) {
	table := ExplicitWeights(map[string]float64{"AAPL": 3, "MSFT": 1, "GOOG": -2})
	if len(table) != 2 {
		t.Fatalf("len(table) = %d, want 2: non-positive weights are dropped", len(table))
	}
	if math.Abs(table["AAPL"]-0.75) > 1e-9 {
		t.Errorf("weight[AAPL] = %v, want 0.75", table["AAPL"])
	}
	if math.Abs(table.Sum()-1) > 1e-9 {
		t.Errorf("Sum() = %v, want 1", table.Sum())
	}
}

func TestAllocationTable_Excluding(t *testing.T) {
	table := AllocationTable{"AAPL": 0.5, "MSFT": 0.3, "GOOG": 0.2}

	adjusted := table.Excluding("AAPL")
	if _, ok := adjusted["AAPL"]; ok {
		t.Error("Excluding(AAPL) still contains AAPL")
	}
	if math.Abs(adjusted["MSFT"]-0.6) > 1e-9 {
		t.Errorf("weight[MSFT] = %v, want 0.6", adjusted["MSFT"])
	}
	if math.Abs(adjusted["GOOG"]-0.4) > 1e-9 {
		t.Errorf("weight[GOOG] = %v, want 0.4", adjusted["GOOG"])
	}

	if got := table.Excluding("AAPL", "MSFT", "GOOG"); len(got) != 0 {
		t.Errorf("Excluding(everything) has %d entries, want 0", len(got))
	}
	if got := table.Excluding(); math.Abs(got.Sum()-1) > 1e-9 {
		t.Errorf("Excluding() Sum() = %v, want 1", got.Sum())
	}
}

func TestAllocationTable_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		table   AllocationTable
		wantErr bool
	}{
		{"valid", AllocationTable{"AAPL": 0.5, "MSFT": 0.5}, false},
		{"empty", AllocationTable{}, true},
		{"negative weight", AllocationTable{"AAPL": -0.5, "MSFT": 1.5}, true},
		{"all zero", AllocationTable{"AAPL": 0, "MSFT": 0}, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.table.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}

	if err := (AllocationTable{}).Validate(); !errors.Is(err, ErrEmptyAllocation) {
		t.Errorf("Validate() error = %v, want ErrEmptyAllocation", err)
	}
}

func TestPortfolio_InvestAvailableCash(t *testing.T) {
	m := NewMarket()
	m.Add("AAPL", date.New(2023, time.January, 3), 100)
	m.Add("MSFT", date.New(2023, time.January, 3), 50)

	p := NewPortfolio("USD", LossFirst)
	p.Deposit(USD(10000), date.New(2023, time.January, 3), "initial investment")

	table := AllocationTable{"AAPL": 0.5, "MSFT": 0.5}
	txs := p.InvestAvailableCash(table, m, date.New(2023, time.January, 3))
	if len(txs) != 2 {
		t.Fatalf("InvestAvailableCash() made %d buys, want 2", len(txs))
	}

	if shares := p.Holding("AAPL").Shares; !shares.Equal(Q(50)) {
		t.Errorf("AAPL shares = %s, want 50", shares)
	}
	if shares := p.Holding("MSFT").Shares; !shares.Equal(Q(100)) {
		t.Errorf("MSFT shares = %s, want 100", shares)
	}
	if !p.Cash().IsZero() {
		t.Errorf("Cash() = %s, want $0.00 after a clean split", p.Cash())
	}
}

func TestPortfolio_InvestAvailableCash_excluded(t *testing.T) {
	m := NewMarket()
	m.Add("AAPL", date.New(2023, time.January, 3), 100)
	m.Add("MSFT", date.New(2023, time.January, 3), 50)

	p := NewPortfolio("USD", LossFirst)
	p.Deposit(USD(1000), date.New(2023, time.January, 3), "initial investment")

	// AAPL was harvested this step: its weight flows to MSFT.
	table := AllocationTable{"AAPL": 0.5, "MSFT": 0.5}
	txs := p.InvestAvailableCash(table, m, date.New(2023, time.January, 3), "AAPL")
	if len(txs) != 1 {
		t.Fatalf("InvestAvailableCash() made %d buys, want 1", len(txs))
	}
	if p.Holding("AAPL") != nil {
		t.Error("InvestAvailableCash() bought back the excluded AAPL")
	}
	if shares := p.Holding("MSFT").Shares; !shares.Equal(Q(20)) {
		t.Errorf("MSFT shares = %s, want 20", shares)
	}
}

func TestPortfolio_InvestAvailableCash_missingPrice(t *testing.T) {
	m := NewMarket()
	m.Add("AAPL", date.New(2023, time.January, 3), 100)

	p := NewPortfolio("USD", LossFirst)
	p.Deposit(USD(1000), date.New(2023, time.January, 3), "initial investment")

	// MSFT has no quote: its half stays in cash for the next step.
	table := AllocationTable{"AAPL": 0.5, "MSFT": 0.5}
	p.InvestAvailableCash(table, m, date.New(2023, time.January, 3))

	if shares := p.Holding("AAPL").Shares; !shares.Equal(Q(5)) {
		t.Errorf("AAPL shares = %s, want 5", shares)
	}
	if !p.Cash().Equal(USD(500)) {
		t.Errorf("Cash() = %s, want $500.00 kept for MSFT", p.Cash())
	}
}

func TestPortfolio_InvestAvailableCash_dust(t *testing.T) {
	m := NewMarket()
	m.Add("AAPL", date.New(2023, time.January, 3), 100)

	p := NewPortfolio("USD", LossFirst)
	p.Deposit(USD(0.5), date.New(2023, time.January, 3), "initial investment")

	// $0.50 buys less than the 0.01 share minimum: no order.
	table := AllocationTable{"AAPL": 1}
	if txs := p.InvestAvailableCash(table, m, date.New(2023, time.January, 3)); len(txs) != 0 {
		t.Errorf("InvestAvailableCash() made %d buys, want 0", len(txs))
	}
}
