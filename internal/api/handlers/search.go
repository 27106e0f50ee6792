package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/ndewijer/Stock-Chart-Service-Backend/internal/api/request"
	"github.com/ndewijer/Stock-Chart-Service-Backend/internal/apperrors"
	"github.com/ndewijer/Stock-Chart-Service-Backend/internal/model"
	"github.com/ndewijer/Stock-Chart-Service-Backend/internal/service"
)

// SearchHandler handles symbol-search HTTP requests
type SearchHandler struct {
	searchService *service.SearchService
}

// NewSearchHandler creates a new SearchHandler
func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
	}
}

// SearchResponse wraps the search results. An unknown symbol is an empty
// results array with status 200, never an error.
type SearchResponse struct {
	Results []model.SearchResult `json:"results"`
}

// Search handles GET requests to resolve a free-text query to a symbol.
//
// Endpoint: GET /api/stocks/search?q
// Response: 200 OK with SearchResponse (empty results for unknown symbols)
// Errors: 400 for a missing query, 500 for configuration or transport
// failures.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query, err := request.ParseSearch(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error": `Query parameter "q" is required`,
		})
		return
	}

	results, err := h.searchService.Search(r.Context(), query)
	if err != nil {
		if errors.Is(err, apperrors.ErrAPIKeyNotConfigured) {
			respondFetchError(w, err, "stocks")
			return
		}

		log.Printf("Error searching stocks: %v", err)
		errType := "Error"
		var transport *apperrors.TransportError
		if errors.As(err, &transport) {
			errType = "TransportError"
		}
		respondJSON(w, http.StatusInternalServerError, failureResponse{
			Error:   "Failed to search stocks",
			Message: err.Error(),
			Type:    errType,
		})
		return
	}

	respondJSON(w, http.StatusOK, SearchResponse{Results: results})
}
