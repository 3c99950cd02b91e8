package foliosim

import (
	"iter"
	"slices"
	"strings"

	"github.com/tjpapenfuss/foliosim/date"
)

// Market holds daily closing prices for a set of tickers.
//
// All amounts are plain numbers in the simulation currency. Conversion to
// Money happens at the edge, where the portfolio trades.
type Market struct {
	series []*PriceSeries
	index  map[string]*PriceSeries
}

// PriceSeries is the daily price history of a single ticker.
type PriceSeries struct {
	ticker string
	prices date.History[float64]
}

// Ticker returns the ticker of this series.
func (s *PriceSeries) Ticker() string { return s.ticker }

// Len returns the number of recorded prices.
func (s *PriceSeries) Len() int { return s.prices.Len() }

// Values returns an iterator over all date/price pairs in chronological order.
func (s *PriceSeries) Values() iter.Seq2[date.Date, float64] { return s.prices.Values() }

// Latest returns the most recent date and price in the series.
func (s *PriceSeries) Latest() (date.Date, float64) { return s.prices.Latest() }

// NewMarket returns a new empty market data collection.
func NewMarket() *Market {
	return &Market{
		series: make([]*PriceSeries, 0),
		index:  make(map[string]*PriceSeries),
	}
}

func (m *Market) Has(ticker string) bool {
	_, ok := m.index[ticker]
	return ok
}

// Get returns the price series for a ticker, or nil if unknown.
func (m *Market) Get(ticker string) *PriceSeries { return m.index[ticker] }

// Tickers returns all known tickers in lexical order.
func (m *Market) Tickers() []string {
	tickers := make([]string, 0, len(m.series))
	for _, s := range m.series {
		tickers = append(tickers, s.ticker)
	}
	return tickers
}

// Add records the closing price of a ticker for a given day, creating the
// series on first use. An existing value at that day is overwritten.
func (m *Market) Add(ticker string, day date.Date, price float64) {
	s, ok := m.index[ticker]
	if !ok {
		s = &PriceSeries{ticker: ticker}
		m.series = append(m.series, s)
		m.index[ticker] = s
		slices.SortFunc(m.series, func(a, b *PriceSeries) int {
			return strings.Compare(a.ticker, b.ticker)
		})
	}
	s.prices.Append(day, price)
}

// Price reads the closing price recorded for (ticker, day). It returns false
// when the ticker is unknown or the day has no entry.
func (m *Market) Price(ticker string, day date.Date) (float64, bool) {
	s, ok := m.index[ticker]
	if !ok {
		return 0.0, false
	}
	return s.prices.Get(day)
}

// PriceAsOf returns the price on a given day, or the most recent price before
// it. Used for valuation, where a quote gap must not zero out a position.
func (m *Market) PriceAsOf(ticker string, day date.Date) (float64, bool) {
	s, ok := m.index[ticker]
	if !ok {
		return 0.0, false
	}
	return s.prices.ValueAsOf(day)
}

// IsTradingDay reports whether at least one ticker has a price on that day.
func (m *Market) IsTradingDay(day date.Date) bool {
	for _, s := range m.series {
		if _, ok := s.prices.Get(day); ok {
			return true
		}
	}
	return false
}

// NearestTradingDay finds the closest day with recorded prices within five
// calendar days of 'day'. For each distance it probes forward first, then
// backward, so weekends and holidays resolve to the following session. It
// returns false when no prices exist in the whole window.
func (m *Market) NearestTradingDay(day date.Date) (date.Date, bool) {
	if m.IsTradingDay(day) {
		return day, true
	}
	for i := 1; i <= 5; i++ {
		if forward := day.Add(i); m.IsTradingDay(forward) {
			return forward, true
		}
		if backward := day.Add(-i); m.IsTradingDay(backward) {
			return backward, true
		}
	}
	return date.Date{}, false
}

// TradingDays returns an iterator over every day at least one ticker has a
// recorded price, each day yielded once in chronological order.
func (m *Market) TradingDays() iter.Seq[date.Date] {
	histories := make([]date.History[float64], 0, len(m.series))
	for _, s := range m.series {
		histories = append(histories, s.prices)
	}
	return date.Iterate(histories...)
}

// Range returns the date range covered by the market, from the oldest to the
// newest recorded price across all tickers. Empty markets return a zero range.
func (m *Market) Range() date.Range {
	var r date.Range
	for _, s := range m.series {
		if s.prices.Len() == 0 {
			continue
		}
		var oldest date.Date
		for day := range s.prices.Values() {
			oldest = day
			break
		}
		newest, _ := s.prices.Latest()
		if r.From.IsZero() || oldest.Before(r.From) {
			r.From = oldest
		}
		if newest.After(r.To) {
			r.To = newest
		}
	}
	return r
}
