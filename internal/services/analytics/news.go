package analytics

import (
	"sort"
	"strings"
	"time"

	"SwingScope/internal/domain/models"
)

var sentimentBase = map[string]float64{
	models.SentimentVeryPositive: 0.9,
	models.SentimentPositive:     0.7,
	models.SentimentNeutral:      0.5,
	models.SentimentNegative:     0.3,
	models.SentimentVeryNegative: 0.1,
}

// sourceWeights credits established outlets; matched by substring of the
// lowercased publisher name.
var sourceWeights = []struct {
	key    string
	weight float64
}{
	{"reuters", 1.0},
	{"bloomberg", 1.0},
	{"ft", 1.0},
	{"wsj", 1.0},
	{"moneycontrol", 0.9},
	{"investing.com", 0.9},
	{"yahoo", 0.8},
	{"seekingalpha", 0.8},
}

const defaultSourceWeight = 0.7

var positiveKeywords = map[string]float64{
	"upgrade":           0.3,
	"buy rating":        0.3,
	"outperform":        0.3,
	"beat earnings":     0.4,
	"new contract":      0.2,
	"partnership":       0.2,
	"expansion":         0.2,
	"launch":            0.2,
	"positive guidance": 0.3,
	"strong growth":     0.3,
}

var negativeKeywords = map[string]float64{
	"downgrade":         -0.3,
	"sell rating":       -0.3,
	"underperform":      -0.3,
	"miss earnings":     -0.4,
	"lawsuit":           -0.2,
	"investigation":     -0.2,
	"default":           -0.4,
	"bankruptcy":        -0.4,
	"negative guidance": -0.3,
	"weak outlook":      -0.3,
}

var positiveWords = map[string]struct{}{
	"up": {}, "rise": {}, "gain": {}, "positive": {}, "growth": {}, "higher": {}, "surge": {},
}

var negativeWords = map[string]struct{}{
	"down": {}, "fall": {}, "drop": {}, "negative": {}, "decline": {}, "lower": {}, "plunge": {},
}

// ClassifySentiment labels a headline by counting directional words.
func ClassifySentiment(text string) string {
	words := strings.Fields(strings.ToLower(text))
	var pos, neg int
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		if _, ok := positiveWords[w]; ok {
			pos++
		}
		if _, ok := negativeWords[w]; ok {
			neg++
		}
	}
	switch {
	case pos > neg:
		return models.SentimentPositive
	case neg > pos:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

// NewsScore scores a batch of headlines between 0 and 1. Articles are
// weighted by source credibility, keyword hits, and recency. An empty
// batch is neutral.
func NewsScore(articles []models.NewsArticle, now time.Time) float64 {
	if len(articles) == 0 {
		return 0.5
	}

	scores := make([]float64, 0, len(articles))
	for _, a := range articles {
		base, ok := sentimentBase[a.Sentiment]
		if !ok {
			base = 0.5
		}

		weight := defaultSourceWeight
		source := strings.ToLower(a.Source)
		for _, sw := range sourceWeights {
			if strings.Contains(source, sw.key) {
				weight = sw.weight
				break
			}
		}

		var keywordImpact float64
		text := strings.ToLower(a.Title + " " + a.Summary)
		for kw, impact := range positiveKeywords {
			if strings.Contains(text, kw) {
				keywordImpact += impact
			}
		}
		for kw, impact := range negativeKeywords {
			if strings.Contains(text, kw) {
				keywordImpact += impact
			}
		}

		// Full weight under 12h old, linear decay to 0.5 afterwards.
		hoursOld := now.Sub(a.PublishedAt).Hours()
		if a.PublishedAt.IsZero() {
			hoursOld = 0
		}
		timeWeight := 1 - (hoursOld-12)/36
		if timeWeight > 1 {
			timeWeight = 1
		}
		if timeWeight < 0.5 {
			timeWeight = 0.5
		}

		scores = append(scores, clamp01((base+keywordImpact)*weight*timeWeight))
	}

	// Weighted average with more weight on the extreme scores.
	sort.Float64s(scores)
	if len(scores) == 1 {
		return scores[0]
	}
	var weighted, total float64
	step := 0.5 / float64(len(scores)-1)
	for i, s := range scores {
		w := 0.5 + step*float64(i)
		weighted += s * w
		total += w
	}
	return weighted / total
}
