package analytics

import (
	"strings"
	"testing"

	"SwingScope/internal/domain/models"
	"SwingScope/pkg/config"
)

func testEngine() *Engine {
	cfg := &config.Config{}
	cfg.Analysis.TechnicalWeight = 0.5
	cfg.Analysis.NewsWeight = 0.3
	cfg.Analysis.FundamentalWeight = 0.2
	cfg.Analysis.MinRiskReward = 1.5
	return NewEngine(cfg)
}

func TestOverallWeights(t *testing.T) {
	e := testEngine()
	got := e.Overall(1, 0, 0)
	if !almostEqual(got, 0.5, 1e-12) {
		t.Fatalf("expected 0.5, got %v", got)
	}
	got = e.Overall(0.8, 0.6, 0.5)
	if !almostEqual(got, 0.8*0.5+0.6*0.3+0.5*0.2, 1e-12) {
		t.Fatalf("unexpected overall %v", got)
	}
}

func TestBaseRatingThresholds(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{0.85, models.RatingStrongBuy},
		{0.8, models.RatingStrongBuy},
		{0.7, models.RatingBuy},
		{0.6, models.RatingBuy},
		{0.5, models.RatingWait},
		{0.31, models.RatingWait},
		{0.3, models.RatingAvoid},
		{0.1, models.RatingAvoid},
	}
	for _, tc := range cases {
		if got := baseRating(tc.score); got != tc.want {
			t.Fatalf("baseRating(%v) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

func bullishSnapshot() *models.TechnicalSnapshot {
	return &models.TechnicalSnapshot{
		Symbol:           "ABC",
		CurrentPrice:     100,
		RSI:              55,
		MACD:             1,
		MACDSignal:       0.5,
		Trend:            models.TrendUp,
		Pattern:          models.PatternBreakout,
		SupportLevels:    []float64{95, 97},
		ResistanceLevels: []float64{105, 110},
	}
}

func TestRecommendLevels(t *testing.T) {
	e := testEngine()
	rec := e.Recommend(bullishSnapshot(), 0.85, nil)

	if rec.EntryPrice != 100 {
		t.Fatalf("entry should be current price, got %v", rec.EntryPrice)
	}
	// Nearest resistance 105 beats the 2% floor.
	if rec.Target != 105 {
		t.Fatalf("expected target 105, got %v", rec.Target)
	}
	// Nearest support 97*0.99=96.03 vs 98: stop takes the lower.
	if rec.StopLoss != 96.03 {
		t.Fatalf("expected stop 96.03, got %v", rec.StopLoss)
	}
	// reward 5 / risk 3.97
	if !almostEqual(rec.RiskReward, 1.26, 1e-9) {
		t.Fatalf("expected rr 1.26, got %v", rec.RiskReward)
	}
	// RR below 1.5 downgrades the buy-class rating.
	if rec.Rating != models.RatingWait {
		t.Fatalf("thin rr should force wait, got %s", rec.Rating)
	}
}

func TestRecommendFallbackLevels(t *testing.T) {
	e := testEngine()
	snap := bullishSnapshot()
	snap.SupportLevels = nil
	snap.ResistanceLevels = nil
	rec := e.Recommend(snap, 0.85, nil)

	// No levels: 5% bands with the 2% floors applied.
	if rec.Target != 105 {
		t.Fatalf("expected 105 fallback target, got %v", rec.Target)
	}
	if rec.StopLoss != 94.05 {
		t.Fatalf("expected 94.05 fallback stop, got %v", rec.StopLoss)
	}
	// reward 5 / risk 5.95 is under the minimum ratio.
	if rec.Rating != models.RatingWait {
		t.Fatalf("fallback bands have thin rr, expected wait, got %s", rec.Rating)
	}
}

func TestRecommendSectorConcernsDowngrade(t *testing.T) {
	e := testEngine()
	snap := bullishSnapshot()
	snap.SupportLevels = []float64{98}
	snap.ResistanceLevels = []float64{110}
	sector := &models.SectorComparison{
		Concerns: []string{"high PE ratio vs sector", "high debt vs sector"},
	}

	rec := e.Recommend(snap, 0.85, sector)
	if rec.Rating != models.RatingBuy {
		t.Fatalf("two concerns should cost one notch, got %s", rec.Rating)
	}

	rec = e.Recommend(snap, 0.2, sector)
	if rec.Rating != models.RatingAvoid {
		t.Fatalf("avoid stays avoid, got %s", rec.Rating)
	}
}

func TestRecommendReason(t *testing.T) {
	e := testEngine()
	rec := e.Recommend(bullishSnapshot(), 0.85, nil)
	for _, want := range []string{"uptrend", "bullish momentum", "balanced conditions", "potential breakout"} {
		if !strings.Contains(rec.Reason, want) {
			t.Fatalf("reason missing %q: %s", want, rec.Reason)
		}
	}
}
