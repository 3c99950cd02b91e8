package eodhd

import (
	"log"

	"github.com/tjpapenfuss/foliosim"
	"github.com/tjpapenfuss/foliosim/date"
)

// UpdateMarket fetches the daily prices of every ticker over rng and merges
// them into m. Existing points for the same day are overwritten. It returns
// the number of price points added.
func UpdateMarket(apiKey string, m *foliosim.Market, tickers []string, rng date.Range) (int, error) {
	added := 0
	for _, ticker := range tickers {
		prices, err := Fetch(apiKey, ticker, rng)
		if err != nil {
			return added, err
		}
		if prices.Len() == 0 {
			log.Printf("no prices for %s between %s and %s", ticker, rng.From, rng.To)
			continue
		}
		for day, value := range prices.Values() {
			m.Add(ticker, day, value)
			added++
		}
		log.Printf("fetched %d prices for %s", prices.Len(), ticker)
	}
	return added, nil
}
