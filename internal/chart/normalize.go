// Package chart turns raw provider bars into chart-ready series and
// computes candlestick render geometry.
package chart

import (
	"sort"
	"time"

	"github.com/ndewijer/Stock-Chart-Service-Backend/internal/marketstack"
	"github.com/ndewijer/Stock-Chart-Service-Backend/internal/model"
)

// LabelMode selects the display-label granularity when normalizing bars.
type LabelMode int

const (
	// Daily labels bars with calendar dates ("Jan 2" / "Jan 2, 2006").
	// Used for historical EOD series.
	Daily LabelMode = iota

	// Intraday labels bars with clock times ("03:04 PM"). No long label.
	Intraday
)

// barDateLayouts are the date formats Marketstack uses, most common first.
var barDateLayouts = []string{
	"2006-01-02T15:04:05-0700",
	time.RFC3339,
	"2006-01-02",
}

// Normalize maps raw provider bars into chart points and re-sorts them
// ascending by timestamp. The re-sort is mandatory even though the fetch
// requests a sort order: the provider is not trusted to honor it.
//
// Every input bar yields exactly one output point; nothing is dropped.
// Duplicate timestamps are preserved in their input order. A bar whose date
// fails to parse keeps a zero timestamp and sorts to the front rather than
// disappearing.
func Normalize(bars []marketstack.Bar, mode LabelMode) []model.ChartPoint {
	points := make([]model.ChartPoint, len(bars))
	for i, bar := range bars {
		date, ok := parseBarDate(bar.Date)

		p := model.ChartPoint{
			Price:  bar.Close,
			Open:   bar.Open,
			High:   bar.High,
			Low:    bar.Low,
			Close:  bar.Close,
			Volume: bar.Volume,
		}
		if ok {
			p.Timestamp = date.UnixMilli()
			switch mode {
			case Intraday:
				p.Time = date.Format("03:04 PM")
			default:
				p.Time = date.Format("Jan 2")
				p.Date = date.Format("Jan 2, 2006")
				d := date
				p.FullDate = &d
			}
		}
		points[i] = p
	}

	sort.SliceStable(points, func(a, b int) bool {
		return points[a].Timestamp < points[b].Timestamp
	})

	return points
}

func parseBarDate(s string) (time.Time, bool) {
	for _, layout := range barDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
