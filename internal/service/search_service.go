package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/ndewijer/Stock-Chart-Service-Backend/internal/apperrors"
	"github.com/ndewijer/Stock-Chart-Service-Backend/internal/model"
	"github.com/ndewijer/Stock-Chart-Service-Backend/internal/repository"
)

// DefaultCacheTTL is how long a validated symbol stays fresh in the cache.
// Symbol identity changes (delistings, exchange moves) are rare, but a day
// keeps the cache from outliving them for long.
const DefaultCacheTTL = 24 * time.Hour

// SearchService validates free-text queries against the provider. The
// provider offers no search endpoint, so "search" is a validation probe: a
// single-row EOD fetch that either confirms the symbol exists or comes back
// empty. An unknown symbol is an empty result set, never an error.
//
// Confirmed symbols are cached so repeated searches for the same ticker do
// not spend provider quota.
type SearchService struct {
	client MarketDataClient
	cache  *repository.SymbolRepository
	ttl    time.Duration
}

// NewSearchService creates a new SearchService. The cache may be nil, in
// which case every search probes the provider.
func NewSearchService(client MarketDataClient, cache *repository.SymbolRepository) *SearchService {
	return &SearchService{
		client: client,
		cache:  cache,
		ttl:    DefaultCacheTTL,
	}
}

// WithCacheTTL overrides the cache freshness window.
func (s *SearchService) WithCacheTTL(ttl time.Duration) *SearchService {
	s.ttl = ttl
	return s
}

// Search resolves a free-text query to zero or one search result.
//
// A blank query returns an empty set without touching the network. The
// query is uppercased and probed; any provider-side rejection (non-success
// status, provider error field, zero rows) means "not a valid symbol" and
// yields an empty set. Only configuration and transport failures are
// reported as errors.
func (s *SearchService) Search(ctx context.Context, query string) ([]model.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []model.SearchResult{}, nil
	}

	symbol := strings.ToUpper(query)

	if s.cache != nil {
		cached, err := s.cache.GetFresh(symbol, s.ttl)
		if err != nil {
			log.Printf("symbol cache lookup failed for %s: %v", symbol, err)
		} else if cached != nil {
			return []model.SearchResult{*cached}, nil
		}
	}

	bars, err := s.client.ProbeEOD(ctx, symbol)
	if err != nil {
		var upstream *apperrors.UpstreamError
		if errors.As(err, &upstream) {
			// The provider rejected the symbol; that is a miss, not
			// a failure.
			return []model.SearchResult{}, nil
		}
		return nil, err
	}
	if len(bars) == 0 {
		return []model.SearchResult{}, nil
	}

	row := bars[0]
	exchange := row.Exchange
	if exchange == "" {
		exchange = "Stock"
	}
	result := model.SearchResult{
		Symbol:      row.Symbol,
		Description: row.Symbol + " - " + exchange,
		Type:        "Common Stock",
	}

	if s.cache != nil {
		if err := s.cache.Upsert(result); err != nil {
			log.Printf("failed to cache symbol %s: %v", result.Symbol, err)
		}
	}

	return []model.SearchResult{result}, nil
}
