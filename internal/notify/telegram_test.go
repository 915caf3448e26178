package notify

import (
	"strings"
	"testing"

	"SwingScope/internal/domain/models"
)

func TestFormatAlert(t *testing.T) {
	report := &models.Report{
		Symbol: "NTPC.NS",
		Quote:  &models.Quote{Symbol: "NTPC.NS", Price: 361.5},
		Scores: models.ScoreCard{Overall: 0.72},
		Recommendation: models.Recommendation{
			Rating:     models.RatingBuy,
			EntryPrice: 361.5,
			Target:     379.58,
			StopLoss:   354.27,
			RiskReward: 2.5,
			Reason:     "Buy recommendation (0.72) because: strong technical setup",
		},
	}

	msg := formatAlert(report)
	for _, want := range []string{"Buy NTPC.NS", "Score 0.72", "at 361.50", "target 379.58", "R/R 2.50", "because: strong technical setup"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("alert missing %q:\n%s", want, msg)
		}
	}
}
