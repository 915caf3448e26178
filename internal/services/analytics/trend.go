package analytics

import (
	"math"

	"SwingScope/internal/domain/models"
)

const (
	// TrendWindow is how many closes feed the least-squares slope.
	TrendWindow = 50
	// PatternWindow is how many candles feed pattern detection.
	PatternWindow = 20
	// sidewaysSlope is the slope magnitude below which the trend is flat.
	sidewaysSlope = 0.1
)

// Trend classifies price direction from the least-squares slope of the
// last TrendWindow closes.
func Trend(candles []models.Candle) string {
	window := tail(candles, TrendWindow)
	if len(window) < 2 {
		return models.TrendSideways
	}

	closes := make([]float64, len(window))
	for i, c := range window {
		closes[i] = c.Close
	}
	slope := lsSlope(closes)

	if math.Abs(slope) < sidewaysSlope {
		return models.TrendSideways
	}
	if slope > 0 {
		return models.TrendUp
	}
	return models.TrendDown
}

// Pattern runs simple structure detection over the last PatternWindow candles.
func Pattern(candles []models.Candle) string {
	window := tail(candles, PatternWindow)
	if len(window) < 2 {
		return models.PatternNone
	}

	ascending, descending := true, true
	maxHigh, minLow := window[0].High, window[0].Low
	for i := 1; i < len(window); i++ {
		if window[i].High <= window[i-1].High {
			ascending = false
		}
		if window[i].High >= window[i-1].High {
			descending = false
		}
		if window[i].High > maxHigh {
			maxHigh = window[i].High
		}
		if window[i].Low < minLow {
			minLow = window[i].Low
		}
	}

	last := window[len(window)-1]
	switch {
	case ascending:
		return models.PatternAscending
	case descending:
		return models.PatternDescending
	case last.High == maxHigh:
		return models.PatternBreakout
	case last.Low == minLow:
		return models.PatternBreakdown
	default:
		return models.PatternNone
	}
}

// lsSlope returns the least-squares slope of values against their index.
func lsSlope(values []float64) float64 {
	n := float64(len(values))
	var sumX, sumY, sumXY, sumXX float64
	for i, v := range values {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
	}
	den := n*sumXX - sumX*sumX
	if den == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / den
}
