package analytics

import (
	"testing"
	"time"

	"SwingScope/internal/domain/models"
)

func TestClassifySentiment(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"Shares surge on strong growth", models.SentimentPositive},
		{"Stock prices plunge after weak results", models.SentimentNegative},
		{"Quarterly report released today", models.SentimentNeutral},
		{"Shares rise but profits fall and decline", models.SentimentNegative},
	}
	for _, tc := range cases {
		if got := ClassifySentiment(tc.text); got != tc.want {
			t.Fatalf("ClassifySentiment(%q) = %s, want %s", tc.text, got, tc.want)
		}
	}
}

func TestNewsScoreEmptyIsNeutral(t *testing.T) {
	if got := NewsScore(nil, time.Now()); got != 0.5 {
		t.Fatalf("expected neutral 0.5, got %v", got)
	}
}

func TestNewsScoreFreshPositiveFromTopSource(t *testing.T) {
	now := time.Now()
	articles := []models.NewsArticle{{
		Title:       "Company wins new contract",
		Source:      "Reuters",
		PublishedAt: now.Add(-1 * time.Hour),
		Sentiment:   models.SentimentPositive,
	}}
	// base 0.7 + keyword 0.2, weight 1.0, full time weight.
	if got := NewsScore(articles, now); !almostEqual(got, 0.9, 1e-9) {
		t.Fatalf("expected 0.9, got %v", got)
	}
}

func TestNewsScoreStaleArticleDecays(t *testing.T) {
	now := time.Now()
	fresh := []models.NewsArticle{{
		Title:       "Quarterly numbers",
		Source:      "Bloomberg",
		PublishedAt: now,
		Sentiment:   models.SentimentPositive,
	}}
	stale := []models.NewsArticle{{
		Title:       "Quarterly numbers",
		Source:      "Bloomberg",
		PublishedAt: now.Add(-100 * time.Hour),
		Sentiment:   models.SentimentPositive,
	}}
	f := NewsScore(fresh, now)
	s := NewsScore(stale, now)
	if s >= f {
		t.Fatalf("stale article should score lower: %v vs %v", s, f)
	}
	// Decay floors at half weight.
	if !almostEqual(s, 0.35, 1e-9) {
		t.Fatalf("expected floor 0.35, got %v", s)
	}
}

func TestNewsScoreNegativeKeywords(t *testing.T) {
	now := time.Now()
	articles := []models.NewsArticle{{
		Title:       "Regulator opens investigation, analysts downgrade",
		Source:      "some blog",
		PublishedAt: now,
		Sentiment:   models.SentimentNegative,
	}}
	// (0.3 - 0.2 - 0.3) * 0.7 clamps to 0 before clamping stays 0.
	got := NewsScore(articles, now)
	if got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}

func TestNewsScoreWeightsExtremes(t *testing.T) {
	now := time.Now()
	articles := []models.NewsArticle{
		{Title: "a", Source: "reuters", PublishedAt: now, Sentiment: models.SentimentVeryPositive},
		{Title: "b", Source: "reuters", PublishedAt: now, Sentiment: models.SentimentNeutral},
	}
	// sorted [0.5, 0.9], weights [0.5, 1.0] -> (0.25+0.9)/1.5
	want := (0.5*0.5 + 0.9*1.0) / 1.5
	if got := NewsScore(articles, now); !almostEqual(got, want, 1e-9) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
