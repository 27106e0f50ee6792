// Package marketstack provides the market-data adapter for the Marketstack
// HTTP API. It fetches historical (EOD) and intraday bars for a symbol and
// normalizes transport and provider failures into the apperrors taxonomy.
package marketstack

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/ndewijer/Stock-Chart-Service-Backend/internal/apperrors"
	"github.com/ndewijer/Stock-Chart-Service-Backend/internal/timeframe"
)

// DefaultBaseURL is the Marketstack v1 API root.
const DefaultBaseURL = "http://api.marketstack.com/v1"

// Client provides methods for fetching price bars from the Marketstack API.
// It wraps an HTTP client and carries the access key every request requires.
//
// Identical concurrent requests are collapsed through a singleflight group
// so that a burst of callers asking for the same symbol and range costs a
// single provider call. Marketstack rate-limits aggressively, so this
// matters in practice.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	group      singleflight.Group

	// now is the reference clock for date-range resolution. Tests
	// override it to pin ranges.
	now func() time.Time
}

// NewClient creates a Marketstack client. An empty baseURL selects
// DefaultBaseURL. The apiKey may be empty; requests will then fail with
// apperrors.ErrAPIKeyNotConfigured, which the API layer reports as a
// configuration error rather than refusing to start.
func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		now:        time.Now,
	}
}

// FetchHistorical fetches end-of-day bars for a symbol. The timeframe token
// is resolved into a calendar date range against the current clock; see the
// timeframe package for the mapping. Bars are returned exactly as the
// provider sent them, in the provider's declared sort order. Normalization
// and re-sorting are the chart package's job.
//
// Errors:
//   - apperrors.ErrSymbolRequired if symbol is blank
//   - apperrors.ErrAPIKeyNotConfigured if no credential is set
//   - *apperrors.UpstreamError for provider-reported failures
//   - *apperrors.TransportError for network or decode failures
func (c *Client) FetchHistorical(ctx context.Context, symbol string, limit int, sort string, tf string) ([]Bar, error) {
	if strings.TrimSpace(symbol) == "" {
		return nil, apperrors.ErrSymbolRequired
	}
	if c.apiKey == "" {
		return nil, apperrors.ErrAPIKeyNotConfigured
	}

	from, to := timeframe.Resolve(tf, c.now())

	params := url.Values{}
	params.Set("access_key", c.apiKey)
	params.Set("symbols", symbol)
	params.Set("sort", sort)
	params.Set("date_from", from.Format("2006-01-02"))
	params.Set("date_to", to.Format("2006-01-02"))
	params.Set("limit", strconv.Itoa(limit))

	return c.query(ctx, "fetch historical data", c.baseURL+"/eod?"+params.Encode())
}

// FetchIntraday fetches the most recent intraday bars for a symbol at the
// given interval (for example "1min" or "15min"). No date range applies:
// the provider returns its latest window.
//
// Errors follow the same taxonomy as FetchHistorical.
func (c *Client) FetchIntraday(ctx context.Context, symbol string, interval string) ([]Bar, error) {
	if strings.TrimSpace(symbol) == "" {
		return nil, apperrors.ErrSymbolRequired
	}
	if c.apiKey == "" {
		return nil, apperrors.ErrAPIKeyNotConfigured
	}

	params := url.Values{}
	params.Set("access_key", c.apiKey)
	params.Set("symbols", symbol)
	params.Set("interval", interval)

	return c.query(ctx, "fetch intraday data", c.baseURL+"/intraday?"+params.Encode())
}

// ProbeEOD issues a single-row EOD fetch for a symbol without a date range.
// Marketstack has no search endpoint, so this probe is how symbol validity
// is established: one row back means the symbol exists.
func (c *Client) ProbeEOD(ctx context.Context, symbol string) ([]Bar, error) {
	if strings.TrimSpace(symbol) == "" {
		return nil, apperrors.ErrSymbolRequired
	}
	if c.apiKey == "" {
		return nil, apperrors.ErrAPIKeyNotConfigured
	}

	params := url.Values{}
	params.Set("access_key", c.apiKey)
	params.Set("symbols", symbol)
	params.Set("limit", "1")

	return c.query(ctx, "probe symbol", c.baseURL+"/eod?"+params.Encode())
}

// query executes one provider request, collapsing concurrent duplicates by
// URL. The full request URL (access key included) is the dedupe key, so two
// requests only share a flight when they are byte-identical.
func (c *Client) query(ctx context.Context, op, requestURL string) ([]Bar, error) {
	v, err, _ := c.group.Do(requestURL, func() (interface{}, error) {
		return c.doQuery(ctx, op, requestURL)
	})
	if err != nil {
		return nil, err
	}
	return v.([]Bar), nil
}

func (c *Client) doQuery(ctx context.Context, op, requestURL string) ([]Bar, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, &apperrors.TransportError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &apperrors.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &apperrors.TransportError{Op: op, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// The provider body is carried verbatim so callers can surface
		// the upstream failure, rate-limit details included.
		return nil, &apperrors.UpstreamError{
			Status:     resp.StatusCode,
			StatusText: http.StatusText(resp.StatusCode),
			Details:    string(body),
		}
	}

	var payload envelope
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &apperrors.TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}

	if payload.Error != nil {
		msg := payload.Error.Message
		if msg == "" {
			msg = payload.Error.Code
		}
		return nil, &apperrors.UpstreamError{Message: msg}
	}

	return payload.Data, nil
}
