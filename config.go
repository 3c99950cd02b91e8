package foliosim

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tjpapenfuss/foliosim/date"
)

// Config drives one simulation run. Zero values fall back to DefaultConfig
// when loaded from a file, so a config file only needs the fields it changes.
type Config struct {
	// InitialInvestment is the lump sum deposited on the start date.
	InitialInvestment float64 `json:"initial_investment"`
	// RecurringInvestment is deposited on every later scheduled date.
	RecurringInvestment float64 `json:"recurring_investment"`
	// InvestmentFrequency is the deposit cadence: "monthly" or "bimonthly".
	InvestmentFrequency string `json:"investment_frequency"`

	StartDate date.Date `json:"start_date"`
	EndDate   date.Date `json:"end_date"`

	// SellTrigger is the loss percentage at which a lot is harvested.
	// It is negative: -10 means "sell once down ten percent".
	SellTrigger float64 `json:"sell_trigger"`
	// SellOrder names the lot selection policy for sells:
	// "loss-first" or "most-recent-first".
	SellOrder string `json:"sell_order"`

	// RebalanceFrequency is the calendar period between time-triggered
	// rebalances: "monthly", "quarterly" or "yearly".
	RebalanceFrequency string `json:"rebalance_frequency"`
	// RebalanceThreshold is the weight drift, in percentage points, beyond
	// which a rebalance fires between calendar boundaries.
	RebalanceThreshold float64 `json:"rebalance_threshold"`

	// TaxRate estimates the tax benefit of realized losses. 0.30 means 30%.
	TaxRate float64 `json:"tax_rate"`

	Currency string `json:"currency"`

	// Tickers is the investable universe. Empty means every ticker the
	// market data covers.
	Tickers []string `json:"tickers"`
	// TickersSource optionally names a CSV file the universe is read from.
	TickersSource string `json:"tickers_source"`
	// TopN caps how many tickers are taken from TickersSource.
	TopN int `json:"top_n"`

	// Weights maps tickers to explicit target weights. Empty means equal
	// weight across the universe.
	Weights map[string]float64 `json:"weights"`
	// WeightsSource optionally names a CSV file the weights are read from.
	WeightsSource string `json:"weights_source"`
}

// DefaultConfig returns the configuration used when a field is not set:
// $10,000 initial and $1,000 monthly deposits through calendar year 2023,
// harvesting at -10%, quarterly rebalancing with a 5 point drift threshold.
func DefaultConfig() Config {
	return Config{
		InitialInvestment:   10000,
		RecurringInvestment: 1000,
		InvestmentFrequency: "monthly",
		StartDate:           date.New(2023, 1, 1),
		EndDate:             date.New(2024, 1, 1),
		SellTrigger:         -10,
		SellOrder:           LossFirst.String(),
		RebalanceFrequency:  "quarterly",
		RebalanceThreshold:  5,
		TaxRate:             0.30,
		Currency:            "USD",
		TopN:                250,
	}
}

// LoadConfig reads a JSON config file on top of the defaults.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("cannot read config: %w", err)
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("cannot parse config %q: %w", path, err)
	}
	return c, nil
}

// Validate checks the configuration before a run starts. Anything it reports
// is fatal: the simulation refuses to start on a config it cannot honor.
func (c Config) Validate() error {
	if c.InitialInvestment < 0 {
		return fmt.Errorf("initial_investment is negative: %v", c.InitialInvestment)
	}
	if c.RecurringInvestment < 0 {
		return fmt.Errorf("recurring_investment is negative: %v", c.RecurringInvestment)
	}
	if c.InitialInvestment == 0 && c.RecurringInvestment == 0 {
		return fmt.Errorf("nothing to invest: both deposits are zero")
	}
	if c.StartDate.IsZero() || c.EndDate.IsZero() {
		return fmt.Errorf("start_date and end_date are required")
	}
	if !c.StartDate.Before(c.EndDate) {
		return fmt.Errorf("start_date %s is not before end_date %s", c.StartDate, c.EndDate)
	}
	if _, err := ParseFrequency(c.InvestmentFrequency); err != nil {
		return err
	}
	if _, err := ParseSellOrder(c.SellOrder); err != nil {
		return err
	}
	if _, err := date.ParsePeriod(c.RebalanceFrequency); err != nil {
		return fmt.Errorf("invalid rebalance_frequency: %w", err)
	}
	if c.SellTrigger > 0 {
		return fmt.Errorf("sell_trigger must not be positive, got %v", c.SellTrigger)
	}
	if c.RebalanceThreshold <= 0 {
		return fmt.Errorf("rebalance_threshold must be positive, got %v", c.RebalanceThreshold)
	}
	if c.TaxRate < 0 || c.TaxRate >= 1 {
		return fmt.Errorf("tax_rate must be in [0, 1), got %v", c.TaxRate)
	}
	return nil
}

// ResolveAllocation resolves the configured allocation policy into a concrete
// normalized table over the given tickers. Explicit weights are filtered to
// the universe and renormalized; if none of them survive, or no weights are
// configured, every ticker gets an equal share.
func (c Config) ResolveAllocation(tickers []string) AllocationTable {
	if len(c.Weights) == 0 {
		return EqualWeights(tickers)
	}
	filtered := make(map[string]float64, len(tickers))
	for _, t := range tickers {
		if w, ok := c.Weights[t]; ok {
			filtered[t] = w
		}
	}
	table := ExplicitWeights(filtered)
	if len(table) == 0 {
		return EqualWeights(tickers)
	}
	return table
}
