package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/ndewijer/Stock-Chart-Service-Backend/internal/apperrors"
)

// respondJSON sends a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("Failed to encode JSON: %v", err)
		}
	}
}

// upstreamErrorResponse mirrors the provider's failure back to the caller:
// its status code is forwarded and its response body is carried verbatim in
// details.
type upstreamErrorResponse struct {
	Error      string `json:"error"`
	Status     int    `json:"status"`
	StatusText string `json:"statusText"`
	Details    string `json:"details"`
}

// failureResponse is the generic 500 body for provider payload errors and
// transport failures.
type failureResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Type    string `json:"type,omitempty"`
}

// respondFetchError maps an adapter or service error onto the HTTP surface:
//
//	validation error        -> 400 {error}
//	missing credential      -> 500 {error, message}
//	upstream non-success    -> upstream's status {error, status, statusText, details}
//	provider payload error  -> 500 {error, message}
//	transport/other         -> 500 {error, message, type}
//
// what names the failed operation in error bodies, e.g. "historical data".
func respondFetchError(w http.ResponseWriter, err error, what string) {
	switch {
	case errors.Is(err, apperrors.ErrSymbolRequired):
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error": "Symbol parameter is required",
		})

	case errors.Is(err, apperrors.ErrQueryRequired):
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error": `Query parameter "q" is required`,
		})

	case errors.Is(err, apperrors.ErrAPIKeyNotConfigured):
		log.Printf("MARKETSTACK_API_KEY environment variable is not set")
		respondJSON(w, http.StatusInternalServerError, failureResponse{
			Error:   "Marketstack API key not configured",
			Message: "Please set MARKETSTACK_API_KEY in your environment",
		})

	default:
		var upstream *apperrors.UpstreamError
		if errors.As(err, &upstream) {
			if upstream.FromPayload() {
				log.Printf("Marketstack API returned error: %s", upstream.Message)
				message := upstream.Message
				if message == "" {
					message = "Unknown error"
				}
				respondJSON(w, http.StatusInternalServerError, failureResponse{
					Error:   "Failed to fetch " + what,
					Message: message,
				})
				return
			}

			log.Printf("Marketstack API error: status=%d body=%s", upstream.Status, upstream.Details)
			respondJSON(w, upstream.Status, upstreamErrorResponse{
				Error:      "Marketstack API returned an error",
				Status:     upstream.Status,
				StatusText: upstream.StatusText,
				Details:    upstream.Details,
			})
			return
		}

		log.Printf("Error fetching %s: %v", what, err)
		errType := "Error"
		var transport *apperrors.TransportError
		if errors.As(err, &transport) {
			errType = "TransportError"
		}
		respondJSON(w, http.StatusInternalServerError, failureResponse{
			Error:   "Failed to fetch " + what,
			Message: err.Error(),
			Type:    errType,
		})
	}
}
