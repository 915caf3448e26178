package analytics

import (
	"fmt"
	"strings"

	"SwingScope/internal/domain/models"
	"SwingScope/pkg/config"
)

// Engine combines component scores into a rating and trade levels.
type Engine struct {
	technicalWeight   float64
	newsWeight        float64
	fundamentalWeight float64
	minRiskReward     float64
}

// NewEngine builds an Engine from the analysis weights in config.
func NewEngine(cfg *config.Config) *Engine {
	return &Engine{
		technicalWeight:   cfg.Analysis.TechnicalWeight,
		newsWeight:        cfg.Analysis.NewsWeight,
		fundamentalWeight: cfg.Analysis.FundamentalWeight,
		minRiskReward:     cfg.Analysis.MinRiskReward,
	}
}

// Overall combines the component scores with the configured weights.
func (e *Engine) Overall(technical, news, fundamental float64) float64 {
	return technical*e.technicalWeight + news*e.newsWeight + fundamental*e.fundamentalWeight
}

// baseRating maps the overall score onto a rating label.
func baseRating(overall float64) string {
	switch {
	case overall >= 0.8:
		return models.RatingStrongBuy
	case overall >= 0.6:
		return models.RatingBuy
	case overall <= 0.3:
		return models.RatingAvoid
	default:
		return models.RatingWait
	}
}

// downgrade steps a buy-class rating down one notch.
func downgrade(rating string) string {
	switch rating {
	case models.RatingStrongBuy:
		return models.RatingBuy
	case models.RatingBuy:
		return models.RatingWait
	default:
		return rating
	}
}

// Recommend builds the final trade recommendation from the indicator
// snapshot, the overall score, and the optional sector comparison.
func (e *Engine) Recommend(snap *models.TechnicalSnapshot, overall float64, sector *models.SectorComparison) models.Recommendation {
	rating := baseRating(overall)

	// Two or more sector concerns cost one notch.
	if sector != nil && len(sector.Concerns) >= 2 {
		rating = downgrade(rating)
	}

	price := snap.CurrentPrice

	// Highest support below price, defaulting to 5% under.
	nearestSupport := price * 0.95
	foundSupport := false
	for _, s := range snap.SupportLevels {
		if s < price && (!foundSupport || s > nearestSupport) {
			nearestSupport = s
			foundSupport = true
		}
	}

	// Lowest resistance above price, defaulting to 5% over.
	nearestResistance := price * 1.05
	foundResistance := false
	for _, r := range snap.ResistanceLevels {
		if r > price && (!foundResistance || r < nearestResistance) {
			nearestResistance = r
			foundResistance = true
		}
	}

	entry := price
	target := maxf(nearestResistance, price*1.02)
	stop := minf(nearestSupport*0.99, price*0.98)

	risk := entry - stop
	reward := target - entry
	var rr float64
	if risk > 0 {
		rr = round2(reward / risk)
	}

	// A thin reward-to-risk ratio turns buys into waiting.
	if rr < e.minRiskReward && (rating == models.RatingStrongBuy || rating == models.RatingBuy) {
		rating = models.RatingWait
	}

	return models.Recommendation{
		Rating:              rating,
		EntryPrice:          round2(entry),
		Target:              round2(target),
		StopLoss:            round2(stop),
		RiskReward:          rr,
		StrongestSupport:    StrongestLevel(snap.SupportLevels),
		StrongestResistance: StrongestLevel(snap.ResistanceLevels),
		Reason:              buildReason(snap, rating, overall),
	}
}

func buildReason(snap *models.TechnicalSnapshot, rating string, overall float64) string {
	var reasons []string

	if snap.Trend == models.TrendUp {
		reasons = append(reasons, "Stock is in an uptrend")
	}
	if snap.MACD > snap.MACDSignal {
		reasons = append(reasons, "MACD shows bullish momentum")
	}
	switch {
	case snap.RSI >= 30 && snap.RSI <= 70:
		reasons = append(reasons, "RSI indicates balanced conditions")
	case snap.RSI < 30:
		reasons = append(reasons, "Stock is oversold")
	default:
		reasons = append(reasons, "Stock is overbought")
	}
	if snap.Pattern != models.PatternNone {
		reasons = append(reasons, fmt.Sprintf("Showing %s pattern", snap.Pattern))
	}

	if len(reasons) == 0 {
		return fmt.Sprintf("%s recommendation based on overall analysis score of %.2f", rating, overall)
	}
	return fmt.Sprintf("%s recommendation (%.2f) because: %s", rating, overall, strings.Join(reasons, "; "))
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
