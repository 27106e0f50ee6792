// Package request parses and validates query parameters for the stocks API.
package request

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/ndewijer/Stock-Chart-Service-Backend/internal/apperrors"
)

// Defaults applied when optional parameters are absent.
const (
	DefaultLimit    = 100
	DefaultSort     = "DESC"
	DefaultInterval = "1min"
)

// HistoricalParams carries the parsed parameters of a historical request.
type HistoricalParams struct {
	Symbol    string
	Limit     int
	Sort      string
	Timeframe string
}

// ParseHistorical extracts historical-fetch parameters from the request.
// Symbol is required; limit defaults to 100, sort to DESC. Timeframe is
// passed through untouched: unknown tokens resolve to the default window
// downstream, so they are not a validation failure here.
func ParseHistorical(r *http.Request) (HistoricalParams, error) {
	q := r.URL.Query()

	symbol := strings.TrimSpace(q.Get("symbol"))
	if symbol == "" {
		return HistoricalParams{}, apperrors.ErrSymbolRequired
	}

	limit := DefaultLimit
	if raw := q.Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	sort := q.Get("sort")
	if sort == "" {
		sort = DefaultSort
	}

	return HistoricalParams{
		Symbol:    symbol,
		Limit:     limit,
		Sort:      sort,
		Timeframe: q.Get("timeframe"),
	}, nil
}

// IntradayParams carries the parsed parameters of an intraday request.
type IntradayParams struct {
	Symbol   string
	Interval string
}

// ParseIntraday extracts intraday-fetch parameters from the request.
// Symbol is required; interval defaults to 1min.
func ParseIntraday(r *http.Request) (IntradayParams, error) {
	q := r.URL.Query()

	symbol := strings.TrimSpace(q.Get("symbol"))
	if symbol == "" {
		return IntradayParams{}, apperrors.ErrSymbolRequired
	}

	interval := q.Get("interval")
	if interval == "" {
		interval = DefaultInterval
	}

	return IntradayParams{Symbol: symbol, Interval: interval}, nil
}

// ParseSearch extracts the search query. The query is required at the HTTP
// level; a present-but-unknown symbol is handled downstream as an empty
// result set.
func ParseSearch(r *http.Request) (string, error) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		return "", apperrors.ErrQueryRequired
	}
	return query, nil
}
