package model

import "time"

// ChartPoint is one chart-ready price observation for a symbol.
// It is the normalized form of a provider bar: display labels are
// precomputed so the frontend can feed the series straight into a chart,
// and Timestamp (epoch milliseconds) is the canonical sort key.
//
// Within one series timestamps are ascending after normalization.
type ChartPoint struct {
	// Time is the short axis label: "Jan 2" for daily bars,
	// "03:04 PM" for intraday bars.
	Time string `json:"time"`

	// Date is the long display label ("Jan 2, 2006"), set for daily
	// bars only.
	Date string `json:"date,omitempty"`

	// FullDate is the parsed bar date, set for daily bars only.
	FullDate *time.Time `json:"fullDate,omitempty"`

	// Price mirrors Close; it is the value a line chart plots.
	Price float64 `json:"price"`

	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`

	// Timestamp is the bar date in epoch milliseconds.
	Timestamp int64 `json:"timestamp"`
}

// SearchResult is one hit from a symbol search.
// Because the provider has no search endpoint, results come from a
// validation probe and there is at most one per query.
type SearchResult struct {
	Symbol      string `json:"symbol"`
	Description string `json:"description"`
	Type        string `json:"type"`
}
