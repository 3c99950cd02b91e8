package foliosim

import (
	"errors"
	"testing"
	"time"

	"github.com/tjpapenfuss/foliosim/date"
)

// flatMarket prices every calendar day of the range, so every scheduled date
// is a trading day and valuations stay constant.
func flatMarket(from, to date.Date, prices map[string]float64) *Market {
	m := NewMarket()
	for day := from; !day.After(to); day = day.Add(1) {
		for ticker, price := range prices {
			m.Add(ticker, day, price)
		}
	}
	return m
}

func simConfig() Config {
	c := DefaultConfig()
	c.StartDate = date.New(2023, time.January, 15)
	c.EndDate = date.New(2023, time.March, 20)
	c.Tickers = []string{"AAPL", "MSFT"}
	return c
}

func TestRunSimulation(t *testing.T) {
	c := simConfig()
	m := flatMarket(date.New(2023, time.January, 1), date.New(2023, time.March, 31),
		map[string]float64{"AAPL": 100, "MSFT": 50})

	result, err := RunSimulation(c, m)
	if err != nil {
		t.Fatalf("RunSimulation() error = %v", err)
	}
	if result.RunID == "" {
		t.Error("RunID is empty")
	}

	// Jan 15, Feb 15 and Mar 15 all trade, so three steps run.
	if len(result.Snapshots) != 3 {
		t.Fatalf("len(Snapshots) = %d, want 3", len(result.Snapshots))
	}

	// Flat prices and exact share counts: each snapshot equals the cash
	// deposited so far, fully invested.
	wantTotals := []Money{USD(10000), USD(11000), USD(12000)}
	for i, s := range result.Snapshots {
		if !s.Total.Equal(wantTotals[i]) {
			t.Errorf("Snapshots[%d].Total = %s, want %s", i, s.Total, wantTotals[i])
		}
		if !s.Cash.IsZero() {
			t.Errorf("Snapshots[%d].Cash = %s, want fully deployed", i, s.Cash)
		}
	}

	ledger := result.Portfolio.Ledger()
	if !ledger.TotalDeposits().Equal(USD(12000)) {
		t.Errorf("TotalDeposits = %s, want $12,000.00", ledger.TotalDeposits())
	}

	var initial, monthly int
	for _, tx := range ledger.Transactions(ByCommand(CmdDeposit)) {
		switch tx.(Deposit).Memo {
		case "initial investment":
			initial++
		case "monthly investment":
			monthly++
		}
	}
	if initial != 1 || monthly != 2 {
		t.Errorf("deposits = %d initial, %d monthly, want 1 and 2", initial, monthly)
	}

	metrics := result.Metrics()
	if !metrics.TotalReturn.IsZero() {
		t.Errorf("TotalReturn = %s, want zero on flat prices", metrics.TotalReturn)
	}
	if metrics.Transactions != 9 {
		t.Errorf("Transactions = %d, want 3 deposits and 6 buys", metrics.Transactions)
	}
}

func TestRunSimulation_harvestsLosses(t *testing.T) {
	// AAPL trades at 100 through January, then drops to 85: the February step
	// must harvest the whole lot and redeploy in March.
	m := NewMarket()
	for day := date.New(2023, time.January, 1); !day.After(date.New(2023, time.March, 31)); day = day.Add(1) {
		price := 100.0
		if day.After(date.New(2023, time.January, 31)) {
			price = 85.0
		}
		m.Add("AAPL", day, price)
	}

	c := simConfig()
	c.Tickers = []string{"AAPL"}
	c.RebalanceThreshold = 50 // keep drift rebalancing out of this scenario

	result, err := RunSimulation(c, m)
	if err != nil {
		t.Fatalf("RunSimulation() error = %v", err)
	}
	if len(result.Snapshots) != 3 {
		t.Fatalf("len(Snapshots) = %d, want 3", len(result.Snapshots))
	}

	ledger := result.Portfolio.Ledger()
	var harvests []Sell
	for _, tx := range ledger.Transactions(ByCommand(CmdSell)) {
		if sell := tx.(Sell); sell.Rationale() == HarvestReason {
			harvests = append(harvests, sell)
		}
	}
	if len(harvests) != 1 {
		t.Fatalf("harvest sells = %d, want 1", len(harvests))
	}
	if !harvests[0].Gain.Equal(USD(-1500)) {
		t.Errorf("harvest Gain = %s, want -$1,500.00", harvests[0].Gain)
	}

	// The harvested ticker is not bought back within the same step, so the
	// February snapshot sits in cash.
	feb := result.Snapshots[1]
	if !feb.Invested.IsZero() {
		t.Errorf("February Invested = %s, want everything harvested to cash", feb.Invested)
	}
	if !feb.Cash.Equal(USD(9500)) {
		t.Errorf("February Cash = %s, want $9,500.00", feb.Cash)
	}

	// March redeploys at 85: 10500 buys 123.52 shares, leaving cents behind.
	mar := result.Snapshots[2]
	if !mar.Total.Equal(USD(10500)) {
		t.Errorf("March Total = %s, want $10,500.00", mar.Total)
	}
	if !mar.Invested.Equal(USD(10499.20)) {
		t.Errorf("March Invested = %s, want $10,499.20", mar.Invested)
	}

	metrics := result.Metrics()
	if !metrics.RealizedLosses.Equal(USD(-1500)) {
		t.Errorf("RealizedLosses = %s, want -$1,500.00", metrics.RealizedLosses)
	}
	if !metrics.TaxSavings.Equal(USD(450)) {
		t.Errorf("TaxSavings = %s, want $450.00 at the default rate", metrics.TaxSavings)
	}
}

func TestRunSimulation_skipsPeriodsWithoutData(t *testing.T) {
	// Quotes stop at the end of January: February and March have no trading
	// day within reach and are skipped whole, deposits included.
	c := simConfig()
	m := flatMarket(date.New(2023, time.January, 1), date.New(2023, time.January, 31),
		map[string]float64{"AAPL": 100, "MSFT": 50})

	result, err := RunSimulation(c, m)
	if err != nil {
		t.Fatalf("RunSimulation() error = %v", err)
	}
	if len(result.Snapshots) != 1 {
		t.Fatalf("len(Snapshots) = %d, want only the January step", len(result.Snapshots))
	}
	if !result.Portfolio.Ledger().TotalDeposits().Equal(USD(10000)) {
		t.Errorf("TotalDeposits = %s, want the initial deposit only", result.Portfolio.Ledger().TotalDeposits())
	}
}

func TestRunSimulation_dropsTickersWithoutData(t *testing.T) {
	c := simConfig()
	c.Tickers = []string{"AAPL", "FAKE"}
	m := flatMarket(date.New(2023, time.January, 1), date.New(2023, time.March, 31),
		map[string]float64{"AAPL": 100})

	result, err := RunSimulation(c, m)
	if err != nil {
		t.Fatalf("RunSimulation() error = %v", err)
	}
	for _, tx := range result.Portfolio.Ledger().Transactions(BySecurity("FAKE")) {
		t.Errorf("traded a ticker without market data: %+v", tx)
	}
	// the surviving ticker absorbs the full allocation
	if h := result.Portfolio.Holding("AAPL"); h == nil || !h.Shares.Equal(Q(120)) {
		t.Errorf("AAPL holding = %+v, want 120 shares from three full deposits", h)
	}
}

func TestRunSimulation_noUsableTickers(t *testing.T) {
	c := simConfig()
	c.Tickers = []string{"FAKE"}
	m := flatMarket(date.New(2023, time.January, 1), date.New(2023, time.March, 31),
		map[string]float64{"AAPL": 100})

	_, err := RunSimulation(c, m)
	if err == nil {
		t.Fatal("RunSimulation() = nil error with no usable tickers")
	}
	if !errors.Is(err, ErrNoInstruments) {
		t.Errorf("error = %q, want ErrNoInstruments", err)
	}
}

func TestRunSimulation_invalidConfig(t *testing.T) {
	c := simConfig()
	c.RebalanceThreshold = 0
	m := flatMarket(date.New(2023, time.January, 1), date.New(2023, time.March, 31),
		map[string]float64{"AAPL": 100})

	if _, err := RunSimulation(c, m); err == nil {
		t.Error("RunSimulation() = nil error for an invalid configuration")
	}
}
