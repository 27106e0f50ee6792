package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/ndewijer/Stock-Chart-Service-Backend/internal/marketstack"
)

// MockMarketData is a mock implementation of the market-data client for
// testing. It returns predefined bars instead of calling the provider.
type MockMarketData struct {
	mu sync.Mutex

	// MockBars is returned from FetchHistorical and FetchIntraday.
	MockBars []marketstack.Bar
	// MockProbeBars is returned from ProbeEOD.
	MockProbeBars []marketstack.Bar
	// MockError is the error to return from all methods.
	MockError error
	// QueryCount tracks how many provider calls were made.
	QueryCount int
	// LastSymbol records the symbol of the most recent call.
	LastSymbol string
}

// NewMockMarketData creates a mock client with five days of default bars.
func NewMockMarketData() *MockMarketData {
	bars := CreateMockBars("TEST", 5)
	return &MockMarketData{
		MockBars:      bars,
		MockProbeBars: bars[:1],
	}
}

// FetchHistorical returns the configured bars or error.
func (m *MockMarketData) FetchHistorical(_ context.Context, symbol string, _ int, _ string, _ string) ([]marketstack.Bar, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.QueryCount++
	m.LastSymbol = symbol
	if m.MockError != nil {
		return nil, m.MockError
	}
	return m.MockBars, nil
}

// FetchIntraday returns the configured bars or error.
func (m *MockMarketData) FetchIntraday(_ context.Context, symbol string, _ string) ([]marketstack.Bar, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.QueryCount++
	m.LastSymbol = symbol
	if m.MockError != nil {
		return nil, m.MockError
	}
	return m.MockBars, nil
}

// ProbeEOD returns the configured probe bars or error.
func (m *MockMarketData) ProbeEOD(_ context.Context, symbol string) ([]marketstack.Bar, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.QueryCount++
	m.LastSymbol = symbol
	if m.MockError != nil {
		return nil, m.MockError
	}
	return m.MockProbeBars, nil
}

// Calls returns how many provider calls have been made.
func (m *MockMarketData) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.QueryCount
}

// WithError configures the mock to return the specified error.
func (m *MockMarketData) WithError(err error) *MockMarketData {
	m.MockError = err
	return m
}

// WithBars configures the bars returned from fetch methods.
func (m *MockMarketData) WithBars(bars []marketstack.Bar) *MockMarketData {
	m.MockBars = bars
	return m
}

// WithProbeBars configures the bars returned from ProbeEOD.
func (m *MockMarketData) WithProbeBars(bars []marketstack.Bar) *MockMarketData {
	m.MockProbeBars = bars
	return m
}

// WithEmpty configures the mock to return no data from any method.
func (m *MockMarketData) WithEmpty() *MockMarketData {
	m.MockBars = []marketstack.Bar{}
	m.MockProbeBars = []marketstack.Bar{}
	return m
}

// CreateMockBars creates days of realistic EOD bars for a symbol, oldest
// first, starting at 2024-01-01. Prices climb half a point a day so tests
// can assert on ordering and derived figures.
func CreateMockBars(symbol string, days int) []marketstack.Bar {
	bars := make([]marketstack.Bar, days)
	for i := 0; i < days; i++ {
		base := 100.0 + float64(i)*0.5
		bars[i] = marketstack.Bar{
			Date:     fmt.Sprintf("2024-01-%02dT00:00:00+0000", i+1),
			Symbol:   symbol,
			Exchange: "NASDAQ",
			Open:     base,
			High:     base + 1.0,
			Low:      base - 0.5,
			Close:    base + 0.25,
			Volume:   1000000 + float64(i)*10000,
		}
	}
	return bars
}
