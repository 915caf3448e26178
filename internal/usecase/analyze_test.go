package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"SwingScope/internal/domain/models"
	"SwingScope/pkg/cache"
	"SwingScope/pkg/config"
)

type fakeNews struct {
	articles []models.NewsArticle
}

func (f *fakeNews) Headlines(_ context.Context, _ string, _ int) ([]models.NewsArticle, error) {
	return f.articles, nil
}

func analyzeConfig() *config.Config {
	cfg := backtestConfig()
	cfg.Market.HistoryDays = 90
	cfg.News.MaxArticles = 10
	return cfg
}

func TestAnalyzeCollectsSoftFailures(t *testing.T) {
	market := &fakeMarket{candles: risingCandles(90)}
	uc := NewAnalyzeUseCase(testLogger(t), analyzeConfig(), market, &fakeNews{})

	report, err := uc.Analyze(context.Background(), AnalyzeParams{Symbol: "NTPC.NS", WithNews: true})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if report.Errors["quote"] == "" || report.Errors["fundamentals"] == "" {
		t.Fatalf("expected quote and fundamentals soft failures, got %v", report.Errors)
	}
	if report.Technical == nil {
		t.Fatal("expected a technical snapshot")
	}
	if len(report.Candles) != 90 {
		t.Fatalf("expected the fetched history on the report, got %d candles", len(report.Candles))
	}
	if report.Scores.News != 0.5 {
		t.Fatalf("no headlines should score neutral, got %v", report.Scores.News)
	}
	if report.Scores.Fundamental != 0.5 {
		t.Fatalf("missing fundamentals should score neutral, got %v", report.Scores.Fundamental)
	}
	// A steady rise leaves no resistance overhead, so the thin
	// reward-to-risk ratio pulls the buy back to waiting.
	if report.Recommendation.Rating != models.RatingWait {
		t.Fatalf("expected %q, got %q", models.RatingWait, report.Recommendation.Rating)
	}
}

func TestAnalyzeShortHistoryFails(t *testing.T) {
	uc := NewAnalyzeUseCase(testLogger(t), analyzeConfig(), &fakeMarket{candles: risingCandles(10)}, &fakeNews{})

	_, err := uc.Analyze(context.Background(), AnalyzeParams{Symbol: "NTPC.NS"})
	if err == nil || !strings.Contains(err.Error(), "candles") {
		t.Fatalf("expected a short history error, got %v", err)
	}
}

func TestAnalyzeRefreshInvalidatesMarketCache(t *testing.T) {
	market := &fakeMarket{candles: risingCandles(90)}
	uc := NewAnalyzeUseCase(testLogger(t), analyzeConfig(), market, &fakeNews{})

	if _, err := uc.Analyze(context.Background(), AnalyzeParams{Symbol: "NTPC.NS", Refresh: true}); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if len(market.invalidated) != 1 || market.invalidated[0] != "NTPC.NS" {
		t.Fatalf("expected one invalidation for NTPC.NS, got %v", market.invalidated)
	}

	if _, err := uc.Analyze(context.Background(), AnalyzeParams{Symbol: "NTPC.NS"}); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if len(market.invalidated) != 1 {
		t.Fatalf("plain run must not invalidate, got %v", market.invalidated)
	}
}

func TestAnalyzeSectorComparisonCached(t *testing.T) {
	pe := 18.0
	de := 0.9
	roe := 0.14
	market := &fakeMarket{
		candles:      risingCandles(90),
		fundamentals: &models.Fundamentals{PERatio: &pe, DebtToEquity: &de, ROE: &roe},
	}

	cfg := analyzeConfig()
	cfg.Sector.Name = "Indian Power & Energy"
	cfg.Sector.Peers = map[string]string{
		"NTPC.NS":      "NTPC Limited",
		"TATAPOWER.NS": "Tata Power",
	}
	cfg.Sector.CacheTTL = time.Hour

	uc := NewAnalyzeUseCase(testLogger(t), cfg, market, &fakeNews{},
		WithCache(cache.NewMemoryCache()))

	params := AnalyzeParams{Symbol: "NTPC.NS", WithSector: true}
	report, err := uc.Analyze(context.Background(), params)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if report.Sector == nil || report.Sector.Sector != "Indian Power & Energy" {
		t.Fatalf("expected a sector comparison, got %+v", report.Sector)
	}
	afterFirst := market.fundCalls

	if _, err := uc.Analyze(context.Background(), params); err != nil {
		t.Fatalf("analyze: %v", err)
	}

	// The second run still fetches the stock's own fundamentals but the
	// peer scan comes out of the cache.
	if got := market.fundCalls - afterFirst; got != 1 {
		t.Fatalf("expected one fundamentals fetch on the cached run, got %d", got)
	}
}
