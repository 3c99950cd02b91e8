package foliosim

import (
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/tjpapenfuss/foliosim/date"
)

// ErrNoInstruments reports a simulation universe in which no instrument has
// market data to trade on.
var ErrNoInstruments = errors.New("no instrument in the universe has market data")

// SimResult bundles everything a finished simulation run produced: the final
// portfolio with its transaction ledger, and the snapshot taken after each
// processed step.
type SimResult struct {
	RunID     string
	Config    Config
	Portfolio *Portfolio
	Snapshots []PortfolioSnapshot
}

// Metrics derives the performance metrics of this run from its ledger and
// snapshot history.
func (r *SimResult) Metrics() Metrics {
	return ComputeMetrics(r.Portfolio.Ledger(), r.Snapshots, r.Config.TaxRate)
}

// RunSimulation executes a full simulation over the configured date range
// against the given market data.
//
// Each scheduled date resolves to its nearest trading day and then runs the
// step pipeline in a fixed order: deposit, harvest losses, deploy cash per
// the allocation, rebalance, snapshot. Tickers harvested in a step are not
// bought back within it. Steps with no trading day within five calendar days
// are skipped whole, with a warning.
//
// Recoverable data problems (a missing price, a clamped buy) never abort the
// run; they are logged and the loop continues. Only configuration problems
// detected before the first step are fatal.
func RunSimulation(c Config, m *Market) (*SimResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	// Validate accepted these
	freq, _ := ParseFrequency(c.InvestmentFrequency)
	order, _ := ParseSellOrder(c.SellOrder)
	rebalanceFreq, _ := date.ParsePeriod(c.RebalanceFrequency)

	universe := c.Tickers
	if len(universe) == 0 {
		universe = m.Tickers()
	}
	var valid []string
	for _, ticker := range universe {
		if m.Has(ticker) {
			valid = append(valid, ticker)
		} else {
			log.Printf("no market data for %s: dropped from universe", ticker)
		}
	}
	if len(valid) == 0 {
		return nil, fmt.Errorf("%w: dropped all %d configured tickers", ErrNoInstruments, len(universe))
	}

	table := c.ResolveAllocation(valid)
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("cannot resolve allocation: %w", err)
	}

	p := NewPortfolio(c.Currency, order)
	result := &SimResult{
		RunID:     uuid.NewString(),
		Config:    c,
		Portfolio: p,
	}

	dates := InvestmentDates(c.StartDate, c.EndDate, freq)
	p.Deposit(M(c.InitialInvestment, c.Currency), dates[0], "initial investment")

	trigger := Percent(c.SellTrigger)
	threshold := Percent(c.RebalanceThreshold)

	for i, scheduled := range dates {
		on, ok := m.NearestTradingDay(scheduled)
		if !ok {
			log.Printf("no trading data within 5 days of %s: skipping this period", scheduled)
			continue
		}
		if i > 0 {
			p.Deposit(M(c.RecurringInvestment, c.Currency), scheduled, freq.String()+" investment")
		}

		_, sold := p.HarvestLosses(m, on, trigger)
		p.InvestAvailableCash(table, m, on, sold...)
		p.CheckAndRebalance(table, m, on, c.StartDate, rebalanceFreq, threshold, sold...)

		result.Snapshots = append(result.Snapshots, NewSnapshot(on, p.Cash(), p.InvestedValue(m, on)))
	}

	return result, nil
}
