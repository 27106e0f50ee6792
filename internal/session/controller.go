// Package session implements the client-side chart session lifecycle: the
// state machine that coordinates symbol search debouncing, symbol
// selection, timeframe changes, and the fetch pipeline that feeds the chart
// renderer.
package session

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/ndewijer/Stock-Chart-Service-Backend/internal/chart"
	"github.com/ndewijer/Stock-Chart-Service-Backend/internal/model"
)

// Searcher resolves a free-text query to zero or one search result.
type Searcher interface {
	Search(ctx context.Context, query string) ([]model.SearchResult, error)
}

// SeriesProvider fetches the normalized price series for a symbol over a
// timeframe. In production this is backed by the stock service; tests
// substitute stubs.
type SeriesProvider interface {
	Historical(ctx context.Context, symbol, timeframe string) ([]model.ChartPoint, error)
}

// ChartType selects the chart rendering mode.
type ChartType string

// Supported chart types.
const (
	ChartLine        ChartType = "line"
	ChartCandlestick ChartType = "candlestick"
)

// DefaultDebounce is the quiet period after the last keystroke before a
// search fires.
const DefaultDebounce = 300 * time.Millisecond

// Options configures a Controller. Zero values select defaults.
type Options struct {
	// Debounce is the search quiet period. Defaults to DefaultDebounce.
	Debounce time.Duration

	// RefreshInterval arms a periodic series refresh after a symbol
	// loads. Zero disables refreshing, which is the sensible setting
	// for EOD data.
	RefreshInterval time.Duration

	// Timeframe is the initial timeframe token. Defaults to "1d".
	Timeframe string
}

// Snapshot is a point-in-time copy of the session state, safe for the
// caller to keep.
//
// Invariants maintained by the controller: CurrentPrice is the price of the
// last series point (nil when the series is empty); LastClose is the close
// of the first point of the currently loaded series; PriceChange is their
// difference.
type Snapshot struct {
	Query          string
	Results        []model.SearchResult
	Searching      bool
	SelectedSymbol string
	Series         []model.ChartPoint
	CurrentPrice   *float64
	LastClose      *float64
	PriceChange    float64
	ChartType      ChartType
	Timeframe      string
	Loading        bool
	Connected      bool
}

// Controller owns one chart session. All state lives behind its mutex and
// is mutated synchronously, one event at a time; goroutines are spawned
// only for the network fetches themselves.
//
// Every fetch carries a generation token captured at launch. A response is
// applied only if its token still matches the controller's generation, so
// a stale response arriving after a symbol or timeframe switch is
// discarded instead of overwriting fresher state.
type Controller struct {
	id       string
	searcher Searcher
	provider SeriesProvider

	debounce        time.Duration
	refreshInterval time.Duration
	cron            *cron.Cron

	mu            sync.Mutex
	query         string
	results       []model.SearchResult
	searching     bool
	selected      string
	series        []model.ChartPoint
	currentPrice  *float64
	lastClose     *float64
	priceChange   float64
	chartType     ChartType
	timeframe     string
	loading       bool
	connected     bool
	closed        bool
	generation    uint64
	searchGen     uint64
	debounceTimer *time.Timer
	refreshEntry  cron.EntryID
}

// NewController creates a session controller in the empty Idle state.
// Call Close when the session is torn down; it cancels any pending timers.
func NewController(searcher Searcher, provider SeriesProvider, opts Options) *Controller {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Timeframe == "" {
		opts.Timeframe = "1d"
	}

	c := &Controller{
		id:              uuid.NewString(),
		searcher:        searcher,
		provider:        provider,
		debounce:        opts.Debounce,
		refreshInterval: opts.RefreshInterval,
		chartType:       ChartLine,
		timeframe:       opts.Timeframe,
	}
	if c.refreshInterval > 0 {
		c.cron = cron.New()
		c.cron.Start()
	}
	return c
}

// ID returns the session identifier used in diagnostics.
func (c *Controller) ID() string {
	return c.id
}

// SetQuery records a search-box change and (re)arms the debounce timer.
// Any change within the quiet period cancels the pending search and
// restarts the window, so only the most recent scheduled search fires.
// A blank query clears the results immediately without a network call.
func (c *Controller) SetQuery(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	c.query = query
	if c.debounceTimer != nil {
		c.debounceTimer.Stop()
		c.debounceTimer = nil
	}
	c.searchGen++

	if strings.TrimSpace(query) == "" {
		c.results = nil
		c.searching = false
		return
	}

	gen := c.searchGen
	c.debounceTimer = time.AfterFunc(c.debounce, func() {
		c.runSearch(query, gen)
	})
}

// runSearch is the debounce timer body. gen is the search generation
// captured when the timer was armed; a mismatch means a newer keystroke
// superseded this search.
func (c *Controller) runSearch(query string, gen uint64) {
	c.mu.Lock()
	if c.closed || gen != c.searchGen {
		c.mu.Unlock()
		return
	}
	c.searching = true
	c.mu.Unlock()

	results, err := c.searcher.Search(context.Background(), query)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || gen != c.searchGen {
		return
	}
	c.searching = false
	if err != nil {
		log.Printf("session %s: search %q failed: %v", c.id, query, err)
		c.results = nil
		return
	}
	c.results = results
}

// SelectResult is the user picking a search result. The session resets to
// an empty Loading state for the new symbol and the fetch pipeline runs for
// the current timeframe.
func (c *Controller) SelectResult(result model.SearchResult) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	c.selected = result.Symbol

	// Reset: series and derived prices are cleared before the fetch so a
	// slow response never renders against the previous symbol's figures.
	c.series = nil
	c.currentPrice = nil
	c.lastClose = nil
	c.priceChange = 0

	// Collapse the search box to the chosen symbol and drop the results.
	c.query = result.Symbol
	c.results = nil
	c.searching = false
	c.searchGen++
	if c.debounceTimer != nil {
		c.debounceTimer.Stop()
		c.debounceTimer = nil
	}

	c.connected = false
	c.loading = true
	c.generation++
	gen := c.generation
	symbol := c.selected
	tf := c.timeframe
	c.mu.Unlock()

	go c.fetchSeries(symbol, tf, gen)
}

// SetTimeframe switches the display window. With a symbol selected the
// series is refetched for the same symbol; no new symbol search runs. The
// pending refresh timer, if any, is cancelled before anything new is armed.
func (c *Controller) SetTimeframe(tf string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	c.timeframe = tf
	c.cancelRefreshLocked()

	if c.selected == "" {
		c.mu.Unlock()
		return
	}

	c.loading = true
	c.generation++
	gen := c.generation
	symbol := c.selected
	c.mu.Unlock()

	go c.fetchSeries(symbol, tf, gen)
}

// SetChartType switches between line and candlestick rendering.
func (c *Controller) SetChartType(t ChartType) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.chartType = t
}

// fetchSeries runs the fetch pipeline for one (symbol, timeframe,
// generation) triple and applies the result if the generation is still
// current.
func (c *Controller) fetchSeries(symbol, tf string, gen uint64) {
	points, err := c.provider.Historical(context.Background(), symbol, tf)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if gen != c.generation {
		log.Printf("session %s: discarding stale response for %s/%s", c.id, symbol, tf)
		return
	}

	c.loading = false

	if err != nil {
		// Failures degrade to the empty state; they are logged for
		// diagnostics only.
		log.Printf("session %s: fetch %s/%s failed: %v", c.id, symbol, tf, err)
		c.series = nil
		c.currentPrice = nil
		c.lastClose = nil
		c.priceChange = 0
		return
	}

	c.series = points
	c.connected = true

	if len(points) == 0 {
		// No data for the range. Connected with an empty series is
		// distinct from still loading.
		c.currentPrice = nil
		c.lastClose = nil
		c.priceChange = 0
		return
	}

	current := points[len(points)-1].Price
	last := points[0].Close
	if last == 0 {
		last = points[0].Price
	}
	c.currentPrice = &current
	c.lastClose = &last
	c.priceChange = current - last

	c.armRefreshLocked(symbol, tf)
}

// armRefreshLocked arms the periodic refresh for the loaded symbol,
// replacing any previously armed entry. Only one entry is ever active.
// Caller holds c.mu.
func (c *Controller) armRefreshLocked(symbol, tf string) {
	if c.cron == nil {
		return
	}
	c.cancelRefreshLocked()

	spec := fmt.Sprintf("@every %s", c.refreshInterval)
	entry, err := c.cron.AddFunc(spec, c.refreshTick)
	if err != nil {
		log.Printf("session %s: failed to arm refresh for %s/%s: %v", c.id, symbol, tf, err)
		return
	}
	c.refreshEntry = entry
}

// cancelRefreshLocked removes the armed refresh entry, if any. Caller
// holds c.mu.
func (c *Controller) cancelRefreshLocked() {
	if c.cron != nil && c.refreshEntry != 0 {
		c.cron.Remove(c.refreshEntry)
		c.refreshEntry = 0
	}
}

// refreshTick refetches the current symbol and timeframe. It goes through
// the same generation gate as user-driven fetches, so a refresh racing a
// symbol or timeframe switch loses.
func (c *Controller) refreshTick() {
	c.mu.Lock()
	if c.closed || c.selected == "" {
		c.mu.Unlock()
		return
	}
	c.loading = true
	c.generation++
	gen := c.generation
	symbol := c.selected
	tf := c.timeframe
	c.mu.Unlock()

	c.fetchSeries(symbol, tf, gen)
}

// Snapshot returns a copy of the current session state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	series := make([]model.ChartPoint, len(c.series))
	copy(series, c.series)
	results := make([]model.SearchResult, len(c.results))
	copy(results, c.results)

	return Snapshot{
		Query:          c.query,
		Results:        results,
		Searching:      c.searching,
		SelectedSymbol: c.selected,
		Series:         series,
		CurrentPrice:   copyFloat(c.currentPrice),
		LastClose:      copyFloat(c.lastClose),
		PriceChange:    c.priceChange,
		ChartType:      c.chartType,
		Timeframe:      c.timeframe,
		Loading:        c.loading,
		Connected:      c.connected,
	}
}

// Candles computes the candlestick render geometry for the current series.
// Returns nil unless the candlestick chart type is active.
func (c *Controller) Candles() []chart.Candle {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.chartType != ChartCandlestick {
		return nil
	}
	return chart.CandlestickGeometry(c.series)
}

// Close tears the session down: the debounce timer and any armed refresh
// entry are cancelled, and late fetch responses are ignored. No timers
// survive a teardown.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true

	if c.debounceTimer != nil {
		c.debounceTimer.Stop()
		c.debounceTimer = nil
	}
	c.cancelRefreshLocked()
	if c.cron != nil {
		c.cron.Stop()
	}
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	f := *v
	return &f
}
