package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ndewijer/Stock-Chart-Service-Backend/internal/apperrors"
	"github.com/ndewijer/Stock-Chart-Service-Backend/internal/marketstack"
	"github.com/ndewijer/Stock-Chart-Service-Backend/internal/model"
	"github.com/ndewijer/Stock-Chart-Service-Backend/internal/repository"
	"github.com/ndewijer/Stock-Chart-Service-Backend/internal/service"
	"github.com/ndewijer/Stock-Chart-Service-Backend/internal/testutil"
)

// TestSearch tests symbol validation through the EOD probe.
//
// WHY: The provider has no search endpoint, so "search" is really a
// validity check. Unknown symbols must come back as empty result sets, not
// errors, or the frontend shows a failure banner for every typo.
func TestSearch(t *testing.T) {
	t.Run("known symbol returns one result", func(t *testing.T) {
		probe := []marketstack.Bar{
			{Date: "2024-01-05T00:00:00+0000", Symbol: "AAPL", Exchange: "NASDAQ", Close: 185.5},
		}
		mock := testutil.NewMockMarketData().WithProbeBars(probe)
		svc := service.NewSearchService(mock, nil)

		results, err := svc.Search(context.Background(), "aapl")
		if err != nil {
			t.Fatalf("Search() returned unexpected error: %v", err)
		}
		if len(results) != 1 {
			t.Fatalf("Expected 1 result, got %d", len(results))
		}

		want := model.SearchResult{Symbol: "AAPL", Description: "AAPL - NASDAQ", Type: "Common Stock"}
		if results[0] != want {
			t.Errorf("Result = %+v, want %+v", results[0], want)
		}
		if mock.LastSymbol != "AAPL" {
			t.Errorf("Expected uppercased symbol to reach the probe, got %q", mock.LastSymbol)
		}
	})

	t.Run("blank query skips the network", func(t *testing.T) {
		mock := testutil.NewMockMarketData()
		svc := service.NewSearchService(mock, nil)

		results, err := svc.Search(context.Background(), "   ")
		if err != nil {
			t.Fatalf("Search() returned unexpected error: %v", err)
		}
		if len(results) != 0 {
			t.Errorf("Expected empty result set, got %d", len(results))
		}
		if mock.Calls() != 0 {
			t.Errorf("Expected no provider calls, got %d", mock.Calls())
		}
	})

	t.Run("missing exchange falls back to generic description", func(t *testing.T) {
		probe := []marketstack.Bar{{Date: "2024-01-05T00:00:00+0000", Symbol: "XYZ", Close: 10}}
		mock := testutil.NewMockMarketData().WithProbeBars(probe)
		svc := service.NewSearchService(mock, nil)

		results, err := svc.Search(context.Background(), "xyz")
		if err != nil {
			t.Fatalf("Search() returned unexpected error: %v", err)
		}
		if results[0].Description != "XYZ - Stock" {
			t.Errorf("Description = %q, want \"XYZ - Stock\"", results[0].Description)
		}
	})

	t.Run("provider rejection is a miss, not a failure", func(t *testing.T) {
		upstream := &apperrors.UpstreamError{Status: 422, StatusText: "Unprocessable Entity", Details: "no data"}
		mock := testutil.NewMockMarketData().WithError(upstream)
		svc := service.NewSearchService(mock, nil)

		results, err := svc.Search(context.Background(), "NOPE")
		if err != nil {
			t.Fatalf("Search() returned unexpected error: %v", err)
		}
		if len(results) != 0 {
			t.Errorf("Expected empty result set, got %d", len(results))
		}
	})

	t.Run("zero probe rows is a miss", func(t *testing.T) {
		mock := testutil.NewMockMarketData().WithEmpty()
		svc := service.NewSearchService(mock, nil)

		results, err := svc.Search(context.Background(), "ZZZZ")
		if err != nil {
			t.Fatalf("Search() returned unexpected error: %v", err)
		}
		if len(results) != 0 {
			t.Errorf("Expected empty result set, got %d", len(results))
		}
	})

	t.Run("transport failures propagate", func(t *testing.T) {
		transport := &apperrors.TransportError{Op: "probe symbol", Err: errors.New("connection refused")}
		mock := testutil.NewMockMarketData().WithError(transport)
		svc := service.NewSearchService(mock, nil)

		_, err := svc.Search(context.Background(), "AAPL")
		var got *apperrors.TransportError
		if !errors.As(err, &got) {
			t.Errorf("Expected TransportError, got %v", err)
		}
	})

	t.Run("configuration errors propagate", func(t *testing.T) {
		mock := testutil.NewMockMarketData().WithError(apperrors.ErrAPIKeyNotConfigured)
		svc := service.NewSearchService(mock, nil)

		_, err := svc.Search(context.Background(), "AAPL")
		if !errors.Is(err, apperrors.ErrAPIKeyNotConfigured) {
			t.Errorf("Expected ErrAPIKeyNotConfigured, got %v", err)
		}
	})
}

// TestSearch_Cache tests that validated symbols are served from the cache.
//
// WHY: Every probe spends provider quota, and searches repeat the same
// tickers constantly. A cached hit must skip the provider entirely, and a
// stale entry must not.
func TestSearch_Cache(t *testing.T) {
	t.Run("second search for a symbol hits the cache", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		cache := repository.NewSymbolRepository(db)
		mock := testutil.NewMockMarketData()
		svc := service.NewSearchService(mock, cache)

		first, err := svc.Search(context.Background(), "test")
		if err != nil {
			t.Fatalf("first Search() returned unexpected error: %v", err)
		}
		second, err := svc.Search(context.Background(), "test")
		if err != nil {
			t.Fatalf("second Search() returned unexpected error: %v", err)
		}

		if mock.Calls() != 1 {
			t.Errorf("Expected 1 provider call across two searches, got %d", mock.Calls())
		}
		if len(first) != 1 || len(second) != 1 || first[0] != second[0] {
			t.Errorf("cached result differs: first %+v, second %+v", first, second)
		}
	})

	t.Run("stale cache entry triggers a fresh probe", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		cache := repository.NewSymbolRepository(db)
		mock := testutil.NewMockMarketData()
		svc := service.NewSearchService(mock, cache).WithCacheTTL(-time.Second)

		if _, err := svc.Search(context.Background(), "test"); err != nil {
			t.Fatalf("first Search() returned unexpected error: %v", err)
		}
		if _, err := svc.Search(context.Background(), "test"); err != nil {
			t.Fatalf("second Search() returned unexpected error: %v", err)
		}

		// A negative TTL makes every entry stale on arrival.
		if mock.Calls() != 2 {
			t.Errorf("Expected 2 provider calls with an expired cache, got %d", mock.Calls())
		}
	})

	t.Run("misses are not cached", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		cache := repository.NewSymbolRepository(db)
		mock := testutil.NewMockMarketData().WithEmpty()
		svc := service.NewSearchService(mock, cache)

		if _, err := svc.Search(context.Background(), "ZZZZ"); err != nil {
			t.Fatalf("Search() returned unexpected error: %v", err)
		}

		cached, err := cache.GetFresh("ZZZZ", time.Hour)
		if err != nil {
			t.Fatalf("GetFresh() returned unexpected error: %v", err)
		}
		if cached != nil {
			t.Errorf("Expected no cache entry for an unknown symbol, got %+v", cached)
		}
	})
}
