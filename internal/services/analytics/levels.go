package analytics

import (
	"math"
	"sort"

	"SwingScope/internal/domain/models"
)

// LevelWindow is how many recent candles are scanned for support/resistance.
const LevelWindow = 30

// SupportLevels returns local minima of the lows over the last LevelWindow
// candles, rounded to 2 decimals, deduplicated and sorted ascending.
func SupportLevels(candles []models.Candle) []float64 {
	window := tail(candles, LevelWindow)
	var levels []float64
	for i := 1; i < len(window)-1; i++ {
		if window[i].Low < window[i-1].Low && window[i].Low < window[i+1].Low {
			levels = append(levels, window[i].Low)
		}
	}
	return dedupRound(levels)
}

// ResistanceLevels returns local maxima of the highs over the last
// LevelWindow candles, rounded to 2 decimals, deduplicated and sorted.
func ResistanceLevels(candles []models.Candle) []float64 {
	window := tail(candles, LevelWindow)
	var levels []float64
	for i := 1; i < len(window)-1; i++ {
		if window[i].High > window[i-1].High && window[i].High > window[i+1].High {
			levels = append(levels, window[i].High)
		}
	}
	return dedupRound(levels)
}

// StrongestLevel buckets levels into 0.1-wide clusters and returns the
// bucket touched most often. Returns 0 when no levels exist.
func StrongestLevel(levels []float64) float64 {
	if len(levels) == 0 {
		return 0
	}
	clusters := make(map[float64]int, len(levels))
	for _, l := range levels {
		clusters[math.Round(l*10)/10]++
	}
	var best float64
	bestCount := 0
	for level, count := range clusters {
		if count > bestCount || (count == bestCount && level < best) {
			best = level
			bestCount = count
		}
	}
	return best
}

func dedupRound(values []float64) []float64 {
	seen := make(map[float64]struct{}, len(values))
	out := make([]float64, 0, len(values))
	for _, v := range values {
		r := round2(v)
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	sort.Float64s(out)
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func tail(candles []models.Candle, n int) []models.Candle {
	if len(candles) <= n {
		return candles
	}
	return candles[len(candles)-n:]
}
