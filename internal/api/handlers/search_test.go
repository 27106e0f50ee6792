package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ndewijer/Stock-Chart-Service-Backend/internal/api/handlers"
	"github.com/ndewijer/Stock-Chart-Service-Backend/internal/apperrors"
	"github.com/ndewijer/Stock-Chart-Service-Backend/internal/marketstack"
	"github.com/ndewijer/Stock-Chart-Service-Backend/internal/service"
	"github.com/ndewijer/Stock-Chart-Service-Backend/internal/testutil"
)

// TestSearchHandler_Search tests the symbol search endpoint.
//
// WHY: Unknown symbols must surface as 200 with an empty results array;
// only a missing query or an operational failure is an error status.
func TestSearchHandler_Search(t *testing.T) {
	t.Run("known symbol returns one result", func(t *testing.T) {
		probe := []marketstack.Bar{
			{Date: "2024-01-05T00:00:00+0000", Symbol: "AAPL", Exchange: "NASDAQ", Close: 185.5},
		}
		mock := testutil.NewMockMarketData().WithProbeBars(probe)
		handler := handlers.NewSearchHandler(service.NewSearchService(mock, nil))

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/stocks/search", map[string]string{
			"q": "aapl",
		})
		w := httptest.NewRecorder()
		handler.Search(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}

		var resp handlers.SearchResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(resp.Results) != 1 {
			t.Fatalf("Expected 1 result, got %d", len(resp.Results))
		}
		got := resp.Results[0]
		if got.Symbol != "AAPL" || got.Description != "AAPL - NASDAQ" || got.Type != "Common Stock" {
			t.Errorf("Unexpected result: %+v", got)
		}
	})

	t.Run("unknown symbol returns empty results with 200", func(t *testing.T) {
		mock := testutil.NewMockMarketData().WithEmpty()
		handler := handlers.NewSearchHandler(service.NewSearchService(mock, nil))

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/stocks/search", map[string]string{
			"q": "ZZZZ",
		})
		w := httptest.NewRecorder()
		handler.Search(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}

		var resp handlers.SearchResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if resp.Results == nil || len(resp.Results) != 0 {
			t.Errorf("Expected empty results array, got %+v", resp.Results)
		}
	})

	t.Run("missing query returns 400", func(t *testing.T) {
		mock := testutil.NewMockMarketData()
		handler := handlers.NewSearchHandler(service.NewSearchService(mock, nil))

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/stocks/search", nil)
		w := httptest.NewRecorder()
		handler.Search(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("Expected status 400, got %d", w.Code)
		}

		var body map[string]string
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if body["error"] != `Query parameter "q" is required` {
			t.Errorf("Unexpected error message: %q", body["error"])
		}
	})

	t.Run("transport failure returns 500", func(t *testing.T) {
		transport := &apperrors.TransportError{Op: "probe symbol", Err: errors.New("connection refused")}
		mock := testutil.NewMockMarketData().WithError(transport)
		handler := handlers.NewSearchHandler(service.NewSearchService(mock, nil))

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/stocks/search", map[string]string{
			"q": "AAPL",
		})
		w := httptest.NewRecorder()
		handler.Search(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("Expected status 500, got %d", w.Code)
		}

		var body map[string]string
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if body["error"] != "Failed to search stocks" {
			t.Errorf("Unexpected error: %q", body["error"])
		}
		if body["type"] != "TransportError" {
			t.Errorf("Expected type TransportError, got %q", body["type"])
		}
	})

	t.Run("missing API key returns configuration error", func(t *testing.T) {
		mock := testutil.NewMockMarketData().WithError(apperrors.ErrAPIKeyNotConfigured)
		handler := handlers.NewSearchHandler(service.NewSearchService(mock, nil))

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/stocks/search", map[string]string{
			"q": "AAPL",
		})
		w := httptest.NewRecorder()
		handler.Search(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("Expected status 500, got %d", w.Code)
		}

		var body map[string]string
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if body["error"] != "Marketstack API key not configured" {
			t.Errorf("Unexpected error: %q", body["error"])
		}
	})
}
