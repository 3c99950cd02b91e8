package foliosim

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/tjpapenfuss/foliosim/date"
)

// this file contains functions to handle the market import/export format.
// It should remain human readable, single file and be easy to merge into a database.

// the readable version of the format can be summarized by a single type.
type jseries struct {
	Ticker  string             `json:"ticker"`
	History map[string]float64 `json:"history"`
}

// ImportMarket imports price series from 'r' in the import/export format.
//
// The format is a JSONL file, where each line is a JSON object representing one
// ticker: property 'ticker' contains the ticker, and property 'history' is a
// single json object whose keys are dates parseable by the [date] package and
// whose values are closing prices as numbers.
func ImportMarket(r io.Reader) (*Market, error) {
	m := NewMarket()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var js jseries
		if err := json.Unmarshal(line, &js); err != nil {
			return nil, fmt.Errorf("cannot parse line for market import format: %q: %w", string(line), err)
		}
		for day, price := range js.History {
			d, err := date.Parse(day)
			if err != nil {
				return nil, fmt.Errorf("invalid date in history of %q: %w", js.Ticker, err)
			}
			m.Add(js.Ticker, d, price)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading market data: %w", err)
	}
	return m, nil
}

// ExportMarket exports the price series to 'w' in the import/export format,
// one ticker per line, tickers in lexical order.
func ExportMarket(w io.Writer, m *Market) error {
	for _, s := range m.series {
		js := jseries{
			Ticker:  s.Ticker(),
			History: make(map[string]float64),
		}
		for day, price := range s.prices.Values() {
			js.History[day.String()] = price
		}
		data, err := json.Marshal(js)
		if err != nil {
			return fmt.Errorf("cannot marshal series %q: %w", s.Ticker(), err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("cannot write market format: %w", err)
		}
	}
	return nil
}
