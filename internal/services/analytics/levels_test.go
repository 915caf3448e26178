package analytics

import (
	"testing"
	"time"

	"SwingScope/internal/domain/models"
)

func candle(day int, o, h, l, c float64, vol int64) models.Candle {
	return models.Candle{
		Date:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, day),
		Open:   o,
		High:   h,
		Low:    l,
		Close:  c,
		Volume: vol,
	}
}

func TestSupportLevelsLocalMinima(t *testing.T) {
	candles := []models.Candle{
		candle(0, 10, 11, 10, 10.5, 100),
		candle(1, 10, 10.5, 9.111, 10, 100), // local min
		candle(2, 10, 11, 10, 10.5, 100),
		candle(3, 10, 10.5, 9.111, 10, 100), // same level again
		candle(4, 10, 11, 10, 10.5, 100),
	}
	got := SupportLevels(candles)
	if len(got) != 1 {
		t.Fatalf("expected deduped single level, got %v", got)
	}
	if got[0] != 9.11 {
		t.Fatalf("expected rounded 9.11, got %v", got[0])
	}
}

func TestResistanceLevelsSorted(t *testing.T) {
	candles := []models.Candle{
		candle(0, 10, 11, 10, 10.5, 100),
		candle(1, 10, 13, 10, 10.5, 100), // local max
		candle(2, 10, 11, 10, 10.5, 100),
		candle(3, 10, 12, 10, 10.5, 100), // local max, lower
		candle(4, 10, 11, 10, 10.5, 100),
	}
	got := ResistanceLevels(candles)
	if len(got) != 2 {
		t.Fatalf("expected two levels, got %v", got)
	}
	if got[0] != 12 || got[1] != 13 {
		t.Fatalf("expected ascending order [12 13], got %v", got)
	}
}

func TestLevelsEmptyOnFlatSeries(t *testing.T) {
	var candles []models.Candle
	for i := 0; i < 10; i++ {
		candles = append(candles, candle(i, 10, 11, 9, 10, 100))
	}
	if got := SupportLevels(candles); len(got) != 0 {
		t.Fatalf("flat lows should have no supports, got %v", got)
	}
	if got := ResistanceLevels(candles); len(got) != 0 {
		t.Fatalf("flat highs should have no resistances, got %v", got)
	}
}

func TestStrongestLevelPicksMostTouchedBucket(t *testing.T) {
	levels := []float64{100.12, 100.14, 100.08, 105.5}
	if got := StrongestLevel(levels); got != 100.1 {
		t.Fatalf("expected bucket 100.1, got %v", got)
	}
}

func TestStrongestLevelEmpty(t *testing.T) {
	if got := StrongestLevel(nil); got != 0 {
		t.Fatalf("expected 0 for no levels, got %v", got)
	}
}
