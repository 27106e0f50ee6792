// Package timeframe maps display-window tokens to calendar date ranges.
package timeframe

import "time"

// Supported timeframe tokens. Anything else falls back to the default
// 30-day window.
const (
	OneDay    = "1d"
	FiveDays  = "5d"
	OneMonth  = "1m"
	SixMonths = "6m"
	YTD       = "YTD"
	OneYear   = "1y"
	FiveYears = "5y"
)

// Tokens lists the supported timeframes in display order.
var Tokens = []string{OneDay, FiveDays, OneMonth, SixMonths, YTD, OneYear, FiveYears}

// Resolve returns the (from, to) date range for a timeframe token against
// the given reference time. To is always the reference time itself.
//
// Resolve is pure and has no error path: unrecognized or empty tokens map
// to the default 30-day window.
func Resolve(token string, now time.Time) (from, to time.Time) {
	to = now
	switch token {
	case OneDay:
		from = now.AddDate(0, 0, -1)
	case FiveDays:
		from = now.AddDate(0, 0, -5)
	case OneMonth:
		from = now.AddDate(0, -1, 0)
	case SixMonths:
		from = now.AddDate(0, -6, 0)
	case YTD:
		from = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	case OneYear:
		from = now.AddDate(-1, 0, 0)
	case FiveYears:
		from = now.AddDate(-5, 0, 0)
	default:
		from = now.AddDate(0, 0, -30)
	}
	return from, to
}
