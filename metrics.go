package foliosim

import (
	"math"
)

// Metrics summarizes a simulation run. Every figure derives from the
// transaction ledger and the snapshot history alone, so the same numbers can
// be recomputed from the persisted files long after the run.
type Metrics struct {
	// TotalDeposits is the sum of every deposit transaction.
	TotalDeposits Money
	// FinalValue is the total value of the last snapshot.
	FinalValue Money
	// TotalReturn is FinalValue minus TotalDeposits.
	TotalReturn Money
	// TotalReturnPct is the total return relative to deposits.
	TotalReturnPct Percent
	// AnnualizedReturn is the CAGR-style return over the elapsed years.
	AnnualizedReturn Percent
	// RealizedLosses sums the realized gain/loss of losing sells. It is
	// negative or zero.
	RealizedLosses Money
	// TaxSavings estimates the tax benefit of the realized losses at the
	// configured tax rate. It is positive or zero.
	TaxSavings Money
	// Transactions counts every ledger entry of the run.
	Transactions int
}

// ComputeMetrics derives the performance metrics of a run from its ledger and
// snapshot history. An empty history yields zero metrics.
func ComputeMetrics(ledger *Ledger, snapshots []PortfolioSnapshot, taxRate float64) Metrics {
	var metrics Metrics
	if len(snapshots) == 0 {
		return metrics
	}

	deposits := ledger.TotalDeposits()
	final := snapshots[len(snapshots)-1].Total

	perf := NewPerformance(deposits, final)
	metrics.TotalDeposits = deposits
	metrics.FinalValue = final
	metrics.TotalReturn = perf.Change()
	metrics.TotalReturnPct = perf.Percent()

	// Elapsed time runs from the first processed step to the last.
	days := snapshots[len(snapshots)-1].Date.Sub(snapshots[0].Date)
	years := float64(days) / 365.25
	if years > 0 {
		pct := float64(metrics.TotalReturnPct)
		metrics.AnnualizedReturn = Percent(100 * (math.Pow(1+pct/100, 1/years) - 1))
	}

	losses := M(0, deposits.Currency())
	for _, tx := range ledger.Transactions(ByCommand(CmdSell)) {
		if gain := tx.(Sell).Gain; gain.IsNegative() {
			losses = losses.Add(gain)
		}
	}
	metrics.RealizedLosses = losses
	metrics.TaxSavings = losses.Mul(Q(-taxRate))
	metrics.Transactions = ledger.Len()

	return metrics
}
