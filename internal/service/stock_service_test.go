package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ndewijer/Stock-Chart-Service-Backend/internal/apperrors"
	"github.com/ndewijer/Stock-Chart-Service-Backend/internal/marketstack"
	"github.com/ndewijer/Stock-Chart-Service-Backend/internal/service"
	"github.com/ndewijer/Stock-Chart-Service-Backend/internal/testutil"
)

// TestGetHistorical tests fetching and normalizing EOD series.
//
// WHY: The service is the seam between raw provider bars and what the chart
// renders; ordering and daily labels must come out right here or every
// downstream consumer inherits the defect.
func TestGetHistorical(t *testing.T) {
	t.Run("returns ascending points with daily labels", func(t *testing.T) {
		// Provider answers newest-first, the way a DESC fetch does.
		bars := []marketstack.Bar{
			{Date: "2024-01-03T00:00:00+0000", Symbol: "AAPL", Open: 102, High: 103, Low: 101, Close: 102.5, Volume: 1200},
			{Date: "2024-01-02T00:00:00+0000", Symbol: "AAPL", Open: 101, High: 102, Low: 100, Close: 101.5, Volume: 1100},
			{Date: "2024-01-01T00:00:00+0000", Symbol: "AAPL", Open: 100, High: 101, Low: 99, Close: 100.5, Volume: 1000},
		}
		mock := testutil.NewMockMarketData().WithBars(bars)
		svc := service.NewStockService(mock)

		points, err := svc.GetHistorical(context.Background(), "AAPL", 100, "DESC", "1m")
		if err != nil {
			t.Fatalf("GetHistorical() returned unexpected error: %v", err)
		}
		if len(points) != 3 {
			t.Fatalf("Expected 3 points, got %d", len(points))
		}
		if points[0].Close != 100.5 || points[2].Close != 102.5 {
			t.Errorf("points not sorted ascending: first close %.1f, last close %.1f", points[0].Close, points[2].Close)
		}
		if points[0].Time != "Jan 1" {
			t.Errorf("Expected daily label \"Jan 1\", got %q", points[0].Time)
		}
		if points[0].Date != "Jan 1, 2024" {
			t.Errorf("Expected long date \"Jan 1, 2024\", got %q", points[0].Date)
		}
	})

	t.Run("propagates client errors", func(t *testing.T) {
		mock := testutil.NewMockMarketData().WithError(apperrors.ErrAPIKeyNotConfigured)
		svc := service.NewStockService(mock)

		_, err := svc.GetHistorical(context.Background(), "AAPL", 100, "DESC", "1m")
		if !errors.Is(err, apperrors.ErrAPIKeyNotConfigured) {
			t.Errorf("Expected ErrAPIKeyNotConfigured, got %v", err)
		}
	})

	t.Run("empty provider response yields empty series", func(t *testing.T) {
		mock := testutil.NewMockMarketData().WithEmpty()
		svc := service.NewStockService(mock)

		points, err := svc.GetHistorical(context.Background(), "AAPL", 100, "DESC", "1m")
		if err != nil {
			t.Fatalf("GetHistorical() returned unexpected error: %v", err)
		}
		if len(points) != 0 {
			t.Errorf("Expected empty series, got %d points", len(points))
		}
	})
}

func TestGetIntraday(t *testing.T) {
	t.Run("returns points with clock-time labels", func(t *testing.T) {
		bars := []marketstack.Bar{
			{Date: "2024-03-07T14:30:00+0000", Symbol: "AAPL", Open: 100, High: 101, Low: 99, Close: 100.5, Volume: 500},
		}
		mock := testutil.NewMockMarketData().WithBars(bars)
		svc := service.NewStockService(mock)

		points, err := svc.GetIntraday(context.Background(), "AAPL", "1min")
		if err != nil {
			t.Fatalf("GetIntraday() returned unexpected error: %v", err)
		}
		if len(points) != 1 {
			t.Fatalf("Expected 1 point, got %d", len(points))
		}
		if points[0].Time != "02:30 PM" {
			t.Errorf("Expected clock label \"02:30 PM\", got %q", points[0].Time)
		}
		if points[0].Date != "" || points[0].FullDate != nil {
			t.Error("intraday points should not carry daily date fields")
		}
	})

	t.Run("propagates client errors", func(t *testing.T) {
		upstream := &apperrors.UpstreamError{Status: 429, StatusText: "Too Many Requests", Details: "rate limit"}
		mock := testutil.NewMockMarketData().WithError(upstream)
		svc := service.NewStockService(mock)

		_, err := svc.GetIntraday(context.Background(), "AAPL", "1min")
		var got *apperrors.UpstreamError
		if !errors.As(err, &got) || got.Status != 429 {
			t.Errorf("Expected 429 UpstreamError, got %v", err)
		}
	})
}

// TestHistorical_SessionDefaults tests the session-facing adapter.
func TestHistorical_SessionDefaults(t *testing.T) {
	mock := testutil.NewMockMarketData()
	svc := service.NewStockService(mock)

	points, err := svc.Historical(context.Background(), "TEST", "1m")
	if err != nil {
		t.Fatalf("Historical() returned unexpected error: %v", err)
	}
	if len(points) != 5 {
		t.Errorf("Expected 5 points from the default mock, got %d", len(points))
	}
	if mock.LastSymbol != "TEST" {
		t.Errorf("Expected symbol TEST to reach the client, got %q", mock.LastSymbol)
	}
}
