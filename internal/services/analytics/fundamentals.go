package analytics

import (
	"SwingScope/internal/domain/models"
)

// FundamentalScore scores fundamental ratios between 0 and 1, starting
// neutral and nudging for each available metric. Missing metrics are
// skipped rather than penalized.
func FundamentalScore(f *models.Fundamentals) float64 {
	score := 0.5
	if f == nil {
		return score
	}

	if f.PERatio != nil {
		switch {
		case *f.PERatio >= 10 && *f.PERatio <= 25:
			score += 0.1
		case *f.PERatio > 25:
			score -= 0.1
		}
	}

	if f.DebtToEquity != nil {
		switch {
		case *f.DebtToEquity < 1:
			score += 0.1
		case *f.DebtToEquity > 2:
			score -= 0.1
		}
	}

	if f.ROE != nil {
		switch {
		case *f.ROE > 0.15:
			score += 0.1
		case *f.ROE < 0:
			score -= 0.1
		}
	}

	if f.InstitutionalHolding != nil && *f.InstitutionalHolding > 0.7 {
		score += 0.1
	}

	return clamp01(score)
}
