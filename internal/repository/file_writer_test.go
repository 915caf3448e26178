package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"SwingScope/internal/domain/models"
)

func TestFileReportWriter(t *testing.T) {
	dir := t.TempDir()
	w := NewFileReportWriter(dir)

	report := &models.Report{
		Symbol:      "NTPC.NS",
		GeneratedAt: time.Date(2025, 6, 2, 10, 30, 0, 0, time.UTC),
		Scores:      models.ScoreCard{Overall: 0.66},
		Recommendation: models.Recommendation{
			Rating:     models.RatingBuy,
			EntryPrice: 361.5,
		},
	}
	if err := w.Write(context.Background(), report); err != nil {
		t.Fatalf("write: %v", err)
	}

	path := filepath.Join(dir, "20250602", "NTPC.NS_analysis_20250602.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	var got models.Report
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Symbol != "NTPC.NS" {
		t.Fatalf("unexpected symbol %q", got.Symbol)
	}
	if got.Recommendation.Rating != models.RatingBuy {
		t.Fatalf("unexpected rating %q", got.Recommendation.Rating)
	}
}
