package foliosim

import (
	"fmt"
	"os"
	"path/filepath"
)

// This file holds the file-level load and save helpers for the three stores a
// simulation works with: the transaction ledger, the market data, and the
// snapshot history. Loading a missing file returns an empty value, so a fresh
// working directory just works.

// LoadLedgerFile reads a transaction ledger from a JSONL file.
func LoadLedgerFile(path string) (*Ledger, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return NewLedger(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open ledger file %q: %w", path, err)
	}
	defer f.Close()

	ledger, err := DecodeLedger(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode ledger file %q: %w", path, err)
	}
	return ledger, nil
}

// SaveLedgerFile writes the ledger to a JSONL file, creating parent
// directories as needed.
func SaveLedgerFile(path string, ledger *Ledger) error {
	f, err := createFile(path)
	if err != nil {
		return fmt.Errorf("error opening ledger file %q for writing: %w", path, err)
	}
	defer f.Close()
	return EncodeLedger(f, ledger)
}

// LoadMarketFile reads market data from a JSONL file.
func LoadMarketFile(path string) (*Market, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return NewMarket(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open market file %q: %w", path, err)
	}
	defer f.Close()

	m, err := ImportMarket(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode market file %q: %w", path, err)
	}
	return m, nil
}

// SaveMarketFile writes the market data to a JSONL file, creating parent
// directories as needed.
func SaveMarketFile(path string, m *Market) error {
	f, err := createFile(path)
	if err != nil {
		return fmt.Errorf("error opening market file %q for writing: %w", path, err)
	}
	defer f.Close()
	return ExportMarket(f, m)
}

// LoadSnapshotsFile reads a snapshot history from a JSONL file.
func LoadSnapshotsFile(path string) ([]PortfolioSnapshot, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open snapshots file %q: %w", path, err)
	}
	defer f.Close()

	snapshots, err := DecodeSnapshots(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode snapshots file %q: %w", path, err)
	}
	return snapshots, nil
}

// SaveSnapshotsFile writes the snapshot history to a JSONL file, creating
// parent directories as needed.
func SaveSnapshotsFile(path string, snapshots []PortfolioSnapshot) error {
	f, err := createFile(path)
	if err != nil {
		return fmt.Errorf("error opening snapshots file %q for writing: %w", path, err)
	}
	defer f.Close()
	return EncodeSnapshots(f, snapshots)
}

func createFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("could not create directory for %q: %w", path, err)
		}
	}
	return os.Create(path)
}
