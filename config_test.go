package foliosim

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tjpapenfuss/foliosim/date"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	if err := c.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v, want valid", err)
	}
	if c.InitialInvestment != 10000 || c.RecurringInvestment != 1000 {
		t.Errorf("default deposits = %v / %v, want 10000 / 1000", c.InitialInvestment, c.RecurringInvestment)
	}
	if c.InvestmentFrequency != "monthly" {
		t.Errorf("default investment_frequency = %q, want monthly", c.InvestmentFrequency)
	}
	if c.SellOrder != "loss-first" {
		t.Errorf("default sell_order = %q, want loss-first", c.SellOrder)
	}
	if c.TaxRate != 0.30 {
		t.Errorf("default tax_rate = %v, want 0.30", c.TaxRate)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"initial_investment": 50000,
		"start_date": "2020-06-01",
		"end_date": "2021-06-01",
		"tickers": ["AAPL", "MSFT"]
	}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if c.InitialInvestment != 50000 {
		t.Errorf("InitialInvestment = %v, want the file value 50000", c.InitialInvestment)
	}
	if c.StartDate != date.New(2020, time.June, 1) {
		t.Errorf("StartDate = %s, want 2020-06-01", c.StartDate)
	}
	if len(c.Tickers) != 2 || c.Tickers[0] != "AAPL" {
		t.Errorf("Tickers = %v, want [AAPL MSFT]", c.Tickers)
	}
	// fields absent from the file keep their defaults
	if c.RecurringInvestment != 1000 {
		t.Errorf("RecurringInvestment = %v, want the default 1000", c.RecurringInvestment)
	}
	if c.Currency != "USD" {
		t.Errorf("Currency = %q, want the default USD", c.Currency)
	}
}

func TestLoadConfig_missingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("LoadConfig() = nil error for a missing file")
	}
}

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"negative initial", func(c *Config) { c.InitialInvestment = -1 }, "initial_investment"},
		{"negative recurring", func(c *Config) { c.RecurringInvestment = -1 }, "recurring_investment"},
		{"nothing to invest", func(c *Config) { c.InitialInvestment = 0; c.RecurringInvestment = 0 }, "nothing to invest"},
		{"missing dates", func(c *Config) { c.StartDate = date.Date{}; c.EndDate = date.Date{} }, "required"},
		{"start after end", func(c *Config) { c.StartDate = date.New(2024, 1, 1); c.EndDate = date.New(2023, 1, 1) }, "not before"},
		{"bad frequency", func(c *Config) { c.InvestmentFrequency = "weekly" }, "frequency"},
		{"bad sell order", func(c *Config) { c.SellOrder = "fifo" }, "sell order"},
		{"bad rebalance frequency", func(c *Config) { c.RebalanceFrequency = "fortnightly" }, "rebalance_frequency"},
		{"positive sell trigger", func(c *Config) { c.SellTrigger = 10 }, "sell_trigger"},
		{"zero threshold", func(c *Config) { c.RebalanceThreshold = 0 }, "rebalance_threshold"},
		{"tax rate too high", func(c *Config) { c.TaxRate = 1 }, "tax_rate"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := DefaultConfig()
			tc.mutate(&c)
			err := c.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want an error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("Validate() = %q, want mention of %q", err, tc.wantErr)
			}
		})
	}
}

func TestConfig_ResolveAllocation(t *testing.T) {
	tickers := []string{"AAPL", "MSFT"}

	c := DefaultConfig()
	table := c.ResolveAllocation(tickers)
	if w := table["AAPL"]; math.Abs(w-0.5) > 1e-9 {
		t.Errorf("equal weight AAPL = %v, want 0.5", w)
	}

	c.Weights = map[string]float64{"AAPL": 3, "MSFT": 1, "TSLA": 4}
	table = c.ResolveAllocation(tickers)
	if w := table["AAPL"]; math.Abs(w-0.75) > 1e-9 {
		t.Errorf("filtered weight AAPL = %v, want 0.75 after dropping TSLA", w)
	}
	if _, ok := table["TSLA"]; ok {
		t.Error("ResolveAllocation kept a ticker outside the universe")
	}

	// weights that miss the whole universe fall back to equal weighting
	c.Weights = map[string]float64{"TSLA": 1}
	table = c.ResolveAllocation(tickers)
	if w := table["MSFT"]; math.Abs(w-0.5) > 1e-9 {
		t.Errorf("fallback weight MSFT = %v, want 0.5", w)
	}
}
