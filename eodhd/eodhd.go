// Package eodhd fetches daily price history from the EOD Historical Data API
// (https://eodhd.com). It is used to build and refresh the market file that
// simulations read their prices from.
package eodhd

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/tjpapenfuss/foliosim/date"
)

// symbol returns the EODHD ticker for an instrument symbol. Symbols without
// an exchange suffix are assumed to trade on the US virtual exchange.
func symbol(ticker string) string {
	if strings.Contains(ticker, ".") {
		return ticker
	}
	return ticker + ".US"
}

// Fetch returns the daily adjusted close prices for ticker over rng, bounds
// included. Adjusted closes fold splits back into the series so that lot
// quantities stay comparable across time.
func Fetch(apiKey, ticker string, rng date.Range) (date.History[float64], error) {
	// https://eodhd.com/api/eod/MCD.US?api_token=demo&fmt=json
	// [
	//	{
	//		"date": "2024-02-13",
	//		"open": 675.066,
	//		"high": 684.219,
	//		"low": 648.659,
	//		"close": 668.445,
	//		"adjusted_close": 67.705,
	//		"volume": 0
	//	  },

	addr := fmt.Sprintf("https://eodhd.com/api/eod/%s?fmt=json&api_token=%s&from=%s&to=%s",
		url.PathEscape(symbol(ticker)), url.QueryEscape(apiKey), rng.From, rng.To)

	var jobj any
	if err := jwget(newDailyCachingClient(), addr, &jobj); err != nil {
		return date.History[float64]{}, fmt.Errorf("cannot fetch daily prices for %q: %w", ticker, err)
	}
	prices, err := parseDaily(jobj)
	if err != nil {
		return prices, fmt.Errorf("cannot parse daily prices for %q: %w", ticker, err)
	}
	return prices, nil
}

// parseDaily extracts the adjusted close series from a decoded /api/eod
// payload.
func parseDaily(jobj any) (prices date.History[float64], err error) {
	jdates, err := jsonpath.Get("$[*].date", jobj)
	if err != nil {
		return prices, fmt.Errorf("no dates in response: %w", err)
	}
	jcloses, err := jsonpath.Get("$[*].adjusted_close", jobj)
	if err != nil {
		return prices, fmt.Errorf("no adjusted closes in response: %w", err)
	}

	days, ok := jdates.([]any)
	if !ok {
		return prices, fmt.Errorf("dates are not a list: %v", jdates)
	}
	closes, ok := jcloses.([]any)
	if !ok {
		return prices, fmt.Errorf("adjusted closes are not a list: %v", jcloses)
	}
	if len(days) != len(closes) {
		return prices, fmt.Errorf("response has %d dates but %d closes", len(days), len(closes))
	}

	for i := range days {
		str, ok := days[i].(string)
		if !ok {
			return prices, fmt.Errorf("date is not a string: %v", days[i])
		}
		day, err := date.Parse(str)
		if err != nil {
			return prices, err
		}
		value, ok := closes[i].(float64)
		if !ok {
			return prices, fmt.Errorf("adjusted close for %s is not a number: %v", day, closes[i])
		}
		prices.Append(day, value)
	}
	return prices, nil
}

// Latest returns the most recent quote for ticker from the real-time
// endpoint. The EOD endpoint lags by a day, so this is the way to extend a
// series to today.
func Latest(apiKey, ticker string) (date.Date, float64, error) {
	// https://eodhd.com/api/real-time/AAPL.US?api_token=demo&fmt=json
	// {
	// 	"code": "AAPL.US",
	// 	"timestamp": 1693259520,
	// 	"open": 184.02,
	// 	...
	// 	"close": 185.31,
	// }

	addr := fmt.Sprintf("https://eodhd.com/api/real-time/%s?fmt=json&api_token=%s",
		url.PathEscape(symbol(ticker)), url.QueryEscape(apiKey))

	var jobj any
	if err := jwget(newDailyCachingClient(), addr, &jobj); err != nil {
		return date.Date{}, 0, fmt.Errorf("cannot fetch quote for %q: %w", ticker, err)
	}

	jts, err := jsonpath.Get("$.timestamp", jobj)
	if err != nil {
		return date.Date{}, 0, fmt.Errorf("no timestamp in quote for %q: %w", ticker, err)
	}
	ts, ok := jts.(float64)
	if !ok {
		return date.Date{}, 0, fmt.Errorf("timestamp in quote for %q is not a number: %v", ticker, jts)
	}
	when := time.Unix(int64(ts), 0).UTC()
	day := date.New(when.Date())

	jval, err := jsonpath.Get("$.close", jobj)
	if err != nil {
		return day, 0, fmt.Errorf("no close in quote for %q: %w", ticker, err)
	}
	value, ok := jval.(float64)
	if !ok {
		// outside trading hours the api returns some values as strings, "NA" included
		str, ok := jval.(string)
		if !ok {
			return day, 0, fmt.Errorf("close in quote for %q is neither a number nor a string: %v", ticker, jval)
		}
		value, err = strconv.ParseFloat(str, 64)
		if err != nil {
			return day, 0, fmt.Errorf("close in quote for %q is an invalid string %q: %w", ticker, str, err)
		}
	}
	return day, value, nil
}
