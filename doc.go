// Package foliosim implements a lot-based portfolio simulation engine. It
// tracks every purchase of a security as an individual tax lot, applies a
// tax-loss-harvesting sell policy, periodically rebalances holdings toward
// target allocation weights, and records an auditable transaction ledger
// along with per-step portfolio snapshots.
//
// The core functionalities include:
//   - Lot Ledger: every buy opens a tax lot with its own cost basis and
//     purchase date; sells consume lots according to a configurable order
//     and emit one ledger transaction per consumed lot.
//   - Harvesting Policy: open lots whose return crosses a loss trigger are
//     liquidated, and their tickers are excluded from repurchase for the
//     rest of the step to approximate wash-sale compliance.
//   - Rebalancing Policy: holdings are realigned to target weights on a
//     calendar schedule or when allocation drift exceeds a threshold.
//   - Scheduler & Metrics: investment dates are generated from a start date
//     and frequency, resolved to trading days, and the resulting ledger and
//     snapshot history yield deposits, returns, realized losses, and an
//     estimated tax benefit.
//   - Data Persistence: ledgers, snapshots, and price histories are encoded
//     to and from human-readable JSONL files.
//
// This package serves as the foundational logic for the `fsim` command-line
// tool; prices and allocation targets are supplied by external collaborators
// (a market data file or downloader, a CSV of weights, or a static config).
package foliosim
