package service

import (
	"context"

	"github.com/ndewijer/Stock-Chart-Service-Backend/internal/chart"
	"github.com/ndewijer/Stock-Chart-Service-Backend/internal/marketstack"
	"github.com/ndewijer/Stock-Chart-Service-Backend/internal/model"
)

// MarketDataClient defines the interface for fetching price bars from the
// market-data provider. This interface enables dependency injection and
// testing with mock implementations.
type MarketDataClient interface {
	FetchHistorical(ctx context.Context, symbol string, limit int, sort string, timeframe string) ([]marketstack.Bar, error)
	FetchIntraday(ctx context.Context, symbol string, interval string) ([]marketstack.Bar, error)
	ProbeEOD(ctx context.Context, symbol string) ([]marketstack.Bar, error)
}

// StockService produces chart-ready price series: it fetches raw bars
// through the market-data client and normalizes them into ordered
// ChartPoint series.
type StockService struct {
	client MarketDataClient
}

// NewStockService creates a new StockService
func NewStockService(client MarketDataClient) *StockService {
	return &StockService{client: client}
}

// GetHistorical returns the normalized EOD series for a symbol over the
// given timeframe. Points carry daily labels and are sorted ascending by
// timestamp regardless of the requested provider sort order.
func (s *StockService) GetHistorical(ctx context.Context, symbol string, limit int, sort string, timeframe string) ([]model.ChartPoint, error) {
	bars, err := s.client.FetchHistorical(ctx, symbol, limit, sort, timeframe)
	if err != nil {
		return nil, err
	}
	return chart.Normalize(bars, chart.Daily), nil
}

// Historical adapts GetHistorical to the session controller's series
// provider interface, applying the chart frontend's fetch defaults.
func (s *StockService) Historical(ctx context.Context, symbol, timeframe string) ([]model.ChartPoint, error) {
	return s.GetHistorical(ctx, symbol, 1000, "DESC", timeframe)
}

// GetIntraday returns the normalized intraday series for a symbol at the
// given interval. Points carry clock-time labels.
func (s *StockService) GetIntraday(ctx context.Context, symbol string, interval string) ([]model.ChartPoint, error) {
	bars, err := s.client.FetchIntraday(ctx, symbol, interval)
	if err != nil {
		return nil, err
	}
	return chart.Normalize(bars, chart.Intraday), nil
}
