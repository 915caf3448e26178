package analytics

import (
	"testing"

	"SwingScope/internal/domain/models"
)

func trendCandles(start, step float64, n int) []models.Candle {
	out := make([]models.Candle, n)
	for i := 0; i < n; i++ {
		c := start + step*float64(i)
		out[i] = candle(i, c, c+0.5, c-0.5, c, 1000)
	}
	return out
}

func TestTrendUp(t *testing.T) {
	if got := Trend(trendCandles(100, 1, 50)); got != models.TrendUp {
		t.Fatalf("expected uptrend, got %s", got)
	}
}

func TestTrendDown(t *testing.T) {
	if got := Trend(trendCandles(100, -1, 50)); got != models.TrendDown {
		t.Fatalf("expected downtrend, got %s", got)
	}
}

func TestTrendSidewaysBelowSlopeCutoff(t *testing.T) {
	if got := Trend(trendCandles(100, 0.01, 50)); got != models.TrendSideways {
		t.Fatalf("expected sideways, got %s", got)
	}
}

func TestPatternAscendingChannel(t *testing.T) {
	if got := Pattern(trendCandles(100, 1, 20)); got != models.PatternAscending {
		t.Fatalf("expected ascending channel, got %s", got)
	}
}

func TestPatternDescendingChannel(t *testing.T) {
	if got := Pattern(trendCandles(100, -1, 20)); got != models.PatternDescending {
		t.Fatalf("expected descending channel, got %s", got)
	}
}

func TestPatternBreakout(t *testing.T) {
	candles := trendCandles(100, 0, 20)
	// Dip in the middle breaks monotonicity, last high is the window max.
	candles[10].High = 99
	candles[19].High = 120
	if got := Pattern(candles); got != models.PatternBreakout {
		t.Fatalf("expected potential breakout, got %s", got)
	}
}

func TestPatternBreakdown(t *testing.T) {
	candles := trendCandles(100, 0, 20)
	candles[10].High = 130
	candles[19].Low = 80
	if got := Pattern(candles); got != models.PatternBreakdown {
		t.Fatalf("expected potential breakdown, got %s", got)
	}
}

func TestPatternNone(t *testing.T) {
	candles := trendCandles(100, 0, 20)
	candles[5].High = 130
	candles[7].Low = 80
	if got := Pattern(candles); got != models.PatternNone {
		t.Fatalf("expected no clear pattern, got %s", got)
	}
}
