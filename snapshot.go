package foliosim

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tjpapenfuss/foliosim/date"
)

// PortfolioSnapshot records the end-of-step valuation of a portfolio: cash on
// hand, the market value of open positions, and their sum.
type PortfolioSnapshot struct {
	Date     date.Date
	Cash     Money
	Invested Money
	Total    Money
}

// NewSnapshot returns a snapshot for a given day, deriving the total from cash
// and invested value.
func NewSnapshot(on date.Date, cash, invested Money) PortfolioSnapshot {
	return PortfolioSnapshot{
		Date:     on,
		Cash:     cash.exact(),
		Invested: invested.exact(),
		Total:    cash.Add(invested).exact(),
	}
}

func (s PortfolioSnapshot) Equal(o PortfolioSnapshot) bool {
	return s.Date == o.Date &&
		s.Cash.Equal(o.Cash) &&
		s.Invested.Equal(o.Invested) &&
		s.Total.Equal(o.Total)
}

func (s PortfolioSnapshot) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("date", s.Date)
	w.Optional("currency", s.Total.Currency())
	w.Append("cash", s.Cash.value)
	w.Append("invested", s.Invested.value)
	w.Append("total", s.Total.value)
	return w.MarshalJSON()
}

func (s *PortfolioSnapshot) UnmarshalJSON(data []byte) error {
	temp := struct {
		Date     date.Date       `json:"date"`
		Currency string          `json:"currency"`
		Cash     decimal.Decimal `json:"cash"`
		Invested decimal.Decimal `json:"invested"`
		Total    decimal.Decimal `json:"total"`
	}{}
	if err := json.Unmarshal(data, &temp); err != nil {
		return fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	s.Date = temp.Date
	s.Cash = M(temp.Cash, temp.Currency).exact()
	s.Invested = M(temp.Invested, temp.Currency).exact()
	s.Total = M(temp.Total, temp.Currency).exact()
	return nil
}

// DecodeSnapshots decodes a snapshot history from a stream of JSONL data,
// one snapshot per line, and returns it in chronological order.
func DecodeSnapshots(r io.Reader) ([]PortfolioSnapshot, error) {
	var snapshots []PortfolioSnapshot
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var s PortfolioSnapshot
		if err := json.Unmarshal(line, &s); err != nil {
			return nil, fmt.Errorf("cannot parse line for snapshot format: %q: %w", string(line), err)
		}
		snapshots = append(snapshots, s)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading snapshots: %w", err)
	}
	sort.SliceStable(snapshots, func(i, j int) bool {
		return snapshots[i].Date.Before(snapshots[j].Date)
	})
	return snapshots, nil
}

// EncodeSnapshots writes the snapshot history to 'w', one JSON object per line.
func EncodeSnapshots(w io.Writer, snapshots []PortfolioSnapshot) error {
	decimal.MarshalJSONWithoutQuotes = true
	for _, s := range snapshots {
		data, err := json.Marshal(s)
		if err != nil {
			return fmt.Errorf("cannot marshal snapshot at %s: %w", s.Date, err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("cannot write snapshot: %w", err)
		}
	}
	return nil
}
