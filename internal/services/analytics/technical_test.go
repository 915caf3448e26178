package analytics

import (
	"testing"

	"SwingScope/internal/domain/models"
)

func TestSnapshotNilOnEmptyHistory(t *testing.T) {
	if snap := Snapshot("ABC", nil); snap != nil {
		t.Fatalf("expected nil snapshot for empty history")
	}
}

func TestSnapshotBasics(t *testing.T) {
	candles := trendCandles(100, 1, 60)
	snap := Snapshot("ABC", candles)
	if snap == nil {
		t.Fatalf("expected snapshot")
	}
	if snap.Symbol != "ABC" {
		t.Fatalf("unexpected symbol %s", snap.Symbol)
	}
	if snap.CurrentPrice != candles[len(candles)-1].Close {
		t.Fatalf("current price should be last close, got %v", snap.CurrentPrice)
	}
	if snap.Trend != models.TrendUp {
		t.Fatalf("expected uptrend, got %s", snap.Trend)
	}
	if snap.LastVolume != 1000 {
		t.Fatalf("unexpected last volume %d", snap.LastVolume)
	}
	if snap.AvgVolume5D != 1000 {
		t.Fatalf("unexpected avg volume %v", snap.AvgVolume5D)
	}
}

func TestTechnicalScoreBullish(t *testing.T) {
	snap := &models.TechnicalSnapshot{
		RSI:          55,
		MACD:         1.2,
		MACDSignal:   0.8,
		CurrentPrice: 110,
		EMA50:        105,
		EMA200:       100,
		LastVolume:   2000,
		AvgVolume5D:  1500,
		Trend:        models.TrendUp,
		Pattern:      models.PatternBreakout,
	}
	// 0.2 + 0.2 + 0.2 + 0.1 + 0.2 + 0.1 = 1.0
	if got := TechnicalScore(snap); got != 1.0 {
		t.Fatalf("expected full score, got %v", got)
	}
}

func TestTechnicalScoreBearishClampedAtZero(t *testing.T) {
	snap := &models.TechnicalSnapshot{
		RSI:          80,
		MACD:         -1,
		MACDSignal:   0,
		CurrentPrice: 90,
		EMA50:        95,
		EMA200:       100,
		LastVolume:   500,
		AvgVolume5D:  1500,
		Trend:        models.TrendDown,
		Pattern:      models.PatternBreakdown,
	}
	if got := TechnicalScore(snap); got != 0 {
		t.Fatalf("expected clamped zero, got %v", got)
	}
}

func TestTechnicalScoreOversoldPartialCredit(t *testing.T) {
	snap := &models.TechnicalSnapshot{
		RSI:          25,
		MACD:         -1,
		MACDSignal:   0,
		CurrentPrice: 100,
		EMA50:        99,
		EMA200:       98,
		LastVolume:   500,
		AvgVolume5D:  1500,
		Trend:        models.TrendSideways,
		Pattern:      models.PatternNone,
	}
	// 0.15 for oversold RSI, 0.2 for the EMA stack.
	if got := TechnicalScore(snap); !almostEqual(got, 0.35, 1e-9) {
		t.Fatalf("expected 0.35, got %v", got)
	}
}
