package foliosim

import (
	"encoding/csv"
	"fmt"
	"os"
	"slices"
	"strconv"
)

// findColumn returns the index of the first header cell matching one of the
// candidate names, or -1.
func findColumn(header []string, names ...string) int {
	for _, name := range names {
		if i := slices.Index(header, name); i >= 0 {
			return i
		}
	}
	return -1
}

// LoadTickersCSV extracts up to topN tickers from a CSV file, in file order.
// The file must carry a "Symbol" or "Ticker" column; index constituent lists
// like the S&P 500 companies file ship in that shape. topN <= 0 means all.
func LoadTickersCSV(path string, topN int) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open tickers file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv %q: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("no tickers in %q", path)
	}

	col := findColumn(records[0], "Symbol", "Ticker")
	if col < 0 {
		return nil, fmt.Errorf("%q has no \"Symbol\" or \"Ticker\" column", path)
	}

	var tickers []string
	for _, record := range records[1:] {
		if topN > 0 && len(tickers) >= topN {
			break
		}
		if col < len(record) && record[col] != "" {
			tickers = append(tickers, record[col])
		}
	}
	return tickers, nil
}

// LoadWeightsCSV extracts ticker weights from a CSV file with a
// "Symbol"/"Ticker" column and a "Weight"/"weight" column. Weights need not
// sum to one: normalization happens when the allocation table is built.
func LoadWeightsCSV(path string) (map[string]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open weights file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv %q: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("no weights in %q", path)
	}

	tickerCol := findColumn(records[0], "Symbol", "Ticker")
	if tickerCol < 0 {
		return nil, fmt.Errorf("%q has no \"Symbol\" or \"Ticker\" column", path)
	}
	weightCol := findColumn(records[0], "Weight", "weight")
	if weightCol < 0 {
		return nil, fmt.Errorf("%q has no \"Weight\" column", path)
	}

	weights := make(map[string]float64)
	for _, record := range records[1:] {
		if tickerCol >= len(record) || weightCol >= len(record) {
			continue
		}
		ticker := record[tickerCol]
		if ticker == "" || record[weightCol] == "" {
			continue
		}
		w, err := strconv.ParseFloat(record[weightCol], 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse weight %q for %q: %w", record[weightCol], ticker, err)
		}
		weights[ticker] = w
	}
	return weights, nil
}
