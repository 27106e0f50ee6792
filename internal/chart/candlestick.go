package chart

import "github.com/ndewijer/Stock-Chart-Service-Backend/internal/model"

// Candlestick colors, matching the frontend palette.
const (
	ColorUp   = "#10b981"
	ColorDown = "#ef4444"
)

// minBodyHeight keeps zero-range bodies (open == close) visible.
const minBodyHeight = 0.3

// Candle holds the render geometry for one bar in percentage coordinate
// space: x grows rightward, y grows downward, both 0-100 across the chart
// area. The renderer draws the wick as a vertical line at WickX from HighY
// to LowY and the body as a rectangle at (BodyX, BodyTopY).
type Candle struct {
	WickX float64 `json:"wickX"`
	HighY float64 `json:"highY"`
	LowY  float64 `json:"lowY"`

	BodyX       float64 `json:"bodyX"`
	BodyWidth   float64 `json:"bodyWidth"`
	BodyTopY    float64 `json:"bodyTopY"`
	BodyBottomY float64 `json:"bodyBottomY"`
	BodyHeight  float64 `json:"bodyHeight"`

	Up    bool   `json:"up"`
	Color string `json:"color"`
}

// CandlestickGeometry computes per-bar wick and body coordinates for an
// ordered series. The vertical scale spans the series' global low/high
// padded by 5% on each side; each bar owns an equal horizontal slot with
// the wick centered and the body covering the middle 70%.
//
// A bar closing at or above its open renders up-colored; ties count as up.
func CandlestickGeometry(points []model.ChartPoint) []Candle {
	if len(points) == 0 {
		return nil
	}

	minPrice := points[0].Low
	maxPrice := points[0].High
	for _, p := range points[1:] {
		if p.Low < minPrice {
			minPrice = p.Low
		}
		if p.High > maxPrice {
			maxPrice = p.High
		}
	}

	padding := 0.05 * (maxPrice - minPrice)
	priceRange := maxPrice - minPrice + 2*padding
	if priceRange <= 0 {
		// Flat series: every price is identical. Pin it to the top
		// edge; the minimum body height keeps the bars visible.
		priceRange = 1
	}

	scaleY := func(price float64) float64 {
		return ((maxPrice + padding - price) / priceRange) * 100
	}

	slotWidth := 100 / float64(len(points))

	candles := make([]Candle, len(points))
	for i, p := range points {
		x := float64(i) * slotWidth
		up := p.Close >= p.Open

		bodyHigh := p.Open
		bodyLow := p.Close
		if up {
			bodyHigh, bodyLow = p.Close, p.Open
		}

		bodyTopY := scaleY(bodyHigh)
		bodyBottomY := scaleY(bodyLow)
		bodyHeight := bodyBottomY - bodyTopY
		if bodyHeight < minBodyHeight {
			bodyHeight = minBodyHeight
		}

		color := ColorDown
		if up {
			color = ColorUp
		}

		candles[i] = Candle{
			WickX:       x + slotWidth/2,
			HighY:       scaleY(p.High),
			LowY:        scaleY(p.Low),
			BodyX:       x + slotWidth*0.15,
			BodyWidth:   slotWidth * 0.7,
			BodyTopY:    bodyTopY,
			BodyBottomY: bodyBottomY,
			BodyHeight:  bodyHeight,
			Up:          up,
			Color:       color,
		}
	}

	return candles
}
