package eodhd

import (
	"fmt"
	"net/url"

	"github.com/tjpapenfuss/foliosim/date"
)

// SearchResult matches the structure of a single item in the EODHD search
// API response.
type SearchResult struct {
	Code              string    `json:"Code"`
	Exchange          string    `json:"Exchange"`
	Name              string    `json:"Name"`
	Type              string    `json:"Type"`
	Country           string    `json:"Country"`
	Currency          string    `json:"Currency"`
	ISIN              string    `json:"ISIN"`
	PreviousClose     float64   `json:"previousClose"`
	PreviousCloseDate date.Date `json:"previousCloseDate"`
}

// Ticker returns the EODHD ticker for this result, "SYMBOL.EXCHANGE".
func (r SearchResult) Ticker() string { return r.Code + "." + r.Exchange }

// Search looks up securities by free text, name, ISIN or symbol.
func Search(apiKey string, searchTerm string) ([]SearchResult, error) {
	apiURL := fmt.Sprintf("https://eodhd.com/api/search/%s?api_token=%s&fmt=json",
		url.PathEscape(searchTerm), url.QueryEscape(apiKey))

	var results []SearchResult
	if err := jwget(newDailyCachingClient(), apiURL, &results); err != nil {
		return nil, fmt.Errorf("cannot search for %q: %w", searchTerm, err)
	}
	return results, nil
}
