package analytics

import (
	"SwingScope/internal/domain/models"
)

// MinHistory is the fewest daily candles an analysis accepts. Below
// this the indicators are not defined.
const MinHistory = 15

// Snapshot computes the full indicator state from a daily candle history.
// Candles must be ordered oldest first.
func Snapshot(symbol string, candles []models.Candle) *models.TechnicalSnapshot {
	if len(candles) == 0 {
		return nil
	}

	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}

	macd, signal := MACD(closes)
	ema50 := EMAWeighted(closes, 50)
	ema200 := EMAWeighted(closes, 200)

	last5 := tail(candles, 5)
	var volSum float64
	for _, c := range last5 {
		volSum += float64(c.Volume)
	}

	last := candles[len(candles)-1]
	return &models.TechnicalSnapshot{
		Symbol:           symbol,
		CurrentPrice:     last.Close,
		RSI:              RSI(closes, RSIPeriod),
		MACD:             macd[len(macd)-1],
		MACDSignal:       signal[len(signal)-1],
		EMA50:            ema50[len(ema50)-1],
		EMA200:           ema200[len(ema200)-1],
		LastVolume:       last.Volume,
		AvgVolume5D:      volSum / float64(len(last5)),
		SupportLevels:    SupportLevels(candles),
		ResistanceLevels: ResistanceLevels(candles),
		Trend:            Trend(candles),
		Pattern:          Pattern(candles),
	}
}

// TechnicalScore scores the indicator state between 0 and 1.
func TechnicalScore(snap *models.TechnicalSnapshot) float64 {
	var score float64

	// RSI: balanced band scores best, oversold gets partial credit.
	switch {
	case snap.RSI >= 30 && snap.RSI <= 70:
		score += 0.2
	case snap.RSI < 30:
		score += 0.15
	}

	// MACD above signal is bullish momentum.
	if snap.MACD > snap.MACDSignal {
		score += 0.2
	}

	// EMA stack alignment.
	if snap.CurrentPrice > snap.EMA50 && snap.EMA50 > snap.EMA200 {
		score += 0.2
	} else if snap.EMA50 < snap.EMA200 && snap.CurrentPrice < snap.EMA50 {
		score -= 0.1
	}

	// Volume above the 5-day average.
	if float64(snap.LastVolume) > snap.AvgVolume5D {
		score += 0.1
	}

	// Trend direction.
	switch snap.Trend {
	case models.TrendUp:
		score += 0.2
	case models.TrendDown:
		score -= 0.1
	}

	// Constructive patterns.
	if snap.Pattern == models.PatternBreakout || snap.Pattern == models.PatternAscending {
		score += 0.1
	}

	return clamp01(score)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
