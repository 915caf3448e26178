package analytics

import (
	"testing"

	"SwingScope/internal/domain/models"
)

func fptr(v float64) *float64 { return &v }

func TestFundamentalScoreMissingDataNeutral(t *testing.T) {
	if got := FundamentalScore(nil); got != 0.5 {
		t.Fatalf("expected 0.5 for nil, got %v", got)
	}
	if got := FundamentalScore(&models.Fundamentals{}); got != 0.5 {
		t.Fatalf("expected 0.5 for empty, got %v", got)
	}
}

func TestFundamentalScoreHealthyCompany(t *testing.T) {
	f := &models.Fundamentals{
		PERatio:              fptr(18),
		DebtToEquity:         fptr(0.5),
		ROE:                  fptr(0.2),
		InstitutionalHolding: fptr(0.75),
	}
	if got := FundamentalScore(f); !almostEqual(got, 0.9, 1e-9) {
		t.Fatalf("expected 0.9, got %v", got)
	}
}

func TestFundamentalScoreStressedCompany(t *testing.T) {
	f := &models.Fundamentals{
		PERatio:      fptr(40),
		DebtToEquity: fptr(3),
		ROE:          fptr(-0.05),
	}
	if got := FundamentalScore(f); !almostEqual(got, 0.2, 1e-9) {
		t.Fatalf("expected 0.2, got %v", got)
	}
}

func TestFundamentalScoreLowPENoCredit(t *testing.T) {
	f := &models.Fundamentals{PERatio: fptr(5)}
	if got := FundamentalScore(f); got != 0.5 {
		t.Fatalf("low PE should neither add nor subtract, got %v", got)
	}
}
