package handlers

import (
	"net/http"

	"github.com/ndewijer/Stock-Chart-Service-Backend/internal/api/request"
	"github.com/ndewijer/Stock-Chart-Service-Backend/internal/model"
	"github.com/ndewijer/Stock-Chart-Service-Backend/internal/service"
)

// StockHandler handles price-series HTTP requests
type StockHandler struct {
	stockService *service.StockService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(stockService *service.StockService) *StockHandler {
	return &StockHandler{
		stockService: stockService,
	}
}

// SeriesResponse is the payload for both historical and intraday fetches.
type SeriesResponse struct {
	Data   []model.ChartPoint `json:"data"`
	Symbol string             `json:"symbol"`
}

// Historical handles GET requests for an EOD price series.
//
// Endpoint: GET /api/stocks/historical?symbol&limit&sort&timeframe
// Response: 200 OK with SeriesResponse
// Errors: 400 for a missing symbol, the upstream's own status for provider
// failures, 500 otherwise.
func (h *StockHandler) Historical(w http.ResponseWriter, r *http.Request) {
	params, err := request.ParseHistorical(r)
	if err != nil {
		respondFetchError(w, err, "historical data")
		return
	}

	points, err := h.stockService.GetHistorical(r.Context(), params.Symbol, params.Limit, params.Sort, params.Timeframe)
	if err != nil {
		respondFetchError(w, err, "historical data")
		return
	}

	respondJSON(w, http.StatusOK, SeriesResponse{
		Data:   points,
		Symbol: params.Symbol,
	})
}

// Intraday handles GET requests for the latest intraday price series.
//
// Endpoint: GET /api/stocks/intraday?symbol&interval
// Response: 200 OK with SeriesResponse
// Errors: as Historical.
func (h *StockHandler) Intraday(w http.ResponseWriter, r *http.Request) {
	params, err := request.ParseIntraday(r)
	if err != nil {
		respondFetchError(w, err, "intraday data")
		return
	}

	points, err := h.stockService.GetIntraday(r.Context(), params.Symbol, params.Interval)
	if err != nil {
		respondFetchError(w, err, "intraday data")
		return
	}

	respondJSON(w, http.StatusOK, SeriesResponse{
		Data:   points,
		Symbol: params.Symbol,
	})
}
