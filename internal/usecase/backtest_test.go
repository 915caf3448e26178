package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"SwingScope/internal/domain/models"
	"SwingScope/pkg/config"
	"SwingScope/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	lgr, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return lgr
}

func backtestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Analysis.TechnicalWeight = 0.5
	cfg.Analysis.NewsWeight = 0.3
	cfg.Analysis.FundamentalWeight = 0.2
	cfg.Analysis.MinRiskReward = 1.5
	cfg.Backtest.LookbackDays = 60
	cfg.Backtest.ContextDays = 30
	cfg.Backtest.HoldDays = 5
	return cfg
}

type fakeMarket struct {
	mu           sync.Mutex
	candles      []models.Candle
	fundamentals *models.Fundamentals
	fundCalls    int
	invalidated  []string
}

func (f *fakeMarket) History(_ context.Context, _ string, _, _ time.Time) ([]models.Candle, error) {
	if len(f.candles) == 0 {
		return nil, fmt.Errorf("no data")
	}
	return f.candles, nil
}

func (f *fakeMarket) Quote(_ context.Context, _ string) (*models.Quote, error) {
	return nil, fmt.Errorf("not implemented")
}

func (f *fakeMarket) Fundamentals(_ context.Context, _ string) (*models.Fundamentals, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fundCalls++
	if f.fundamentals == nil {
		return nil, fmt.Errorf("not implemented")
	}
	return f.fundamentals, nil
}

func (f *fakeMarket) Invalidate(_ context.Context, symbol string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated = append(f.invalidated, symbol)
	return nil
}

func risingCandles(n int) []models.Candle {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	candles := make([]models.Candle, n)
	for i := range candles {
		price := 100.0 + float64(i)
		candles[i] = models.Candle{
			Date:   start.AddDate(0, 0, i),
			Open:   price - 0.5,
			High:   price + 0.5,
			Low:    price - 1,
			Close:  price,
			Volume: 1000,
		}
	}
	return candles
}

func TestSimulateStopChecksBeforeTarget(t *testing.T) {
	uc := &BacktestUseCase{}
	rec := models.Recommendation{EntryPrice: 100, Target: 105, StopLoss: 97, Rating: models.RatingBuy}
	entry := models.Candle{Date: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), Close: 100}
	// first future day spans both levels, the stop wins
	future := []models.Candle{
		{Date: entry.Date.AddDate(0, 0, 1), High: 106, Low: 96, Close: 101},
		{Date: entry.Date.AddDate(0, 0, 2), High: 110, Low: 105, Close: 108},
	}

	trade := uc.simulate("ABC", rec, entry, future)
	if trade.Outcome != OutcomeStopLoss {
		t.Fatalf("expected stop loss outcome, got %q", trade.Outcome)
	}
	if trade.Exit != 97 {
		t.Fatalf("expected exit at stop 97, got %v", trade.Exit)
	}
	if trade.ExitDate != future[0].Date {
		t.Fatalf("expected exit on first day, got %v", trade.ExitDate)
	}
	if trade.ReturnPct != -3 {
		t.Fatalf("expected return -3, got %v", trade.ReturnPct)
	}
}

func TestSimulateTargetHit(t *testing.T) {
	uc := &BacktestUseCase{}
	rec := models.Recommendation{EntryPrice: 100, Target: 105, StopLoss: 97, Rating: models.RatingStrongBuy}
	entry := models.Candle{Date: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), Close: 100}
	future := []models.Candle{
		{Date: entry.Date.AddDate(0, 0, 1), High: 103, Low: 99, Close: 102},
		{Date: entry.Date.AddDate(0, 0, 2), High: 105.5, Low: 101, Close: 105},
	}

	trade := uc.simulate("ABC", rec, entry, future)
	if trade.Outcome != OutcomeTarget {
		t.Fatalf("expected target outcome, got %q", trade.Outcome)
	}
	if trade.Exit != 105 {
		t.Fatalf("expected exit at target 105, got %v", trade.Exit)
	}
	if trade.ReturnPct != 5 {
		t.Fatalf("expected return 5, got %v", trade.ReturnPct)
	}
}

func TestSimulateHoldExitsAtLastClose(t *testing.T) {
	uc := &BacktestUseCase{}
	rec := models.Recommendation{EntryPrice: 100, Target: 110, StopLoss: 90, Rating: models.RatingBuy}
	entry := models.Candle{Date: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), Close: 100}
	future := []models.Candle{
		{Date: entry.Date.AddDate(0, 0, 1), High: 102, Low: 98, Close: 101},
		{Date: entry.Date.AddDate(0, 0, 2), High: 104, Low: 100, Close: 103},
	}

	trade := uc.simulate("ABC", rec, entry, future)
	if trade.Outcome != OutcomeHold {
		t.Fatalf("expected hold outcome, got %q", trade.Outcome)
	}
	if trade.Exit != 103 {
		t.Fatalf("expected exit at last close 103, got %v", trade.Exit)
	}
	if trade.ExitDate != future[1].Date {
		t.Fatalf("expected exit on last day, got %v", trade.ExitDate)
	}
	if trade.ReturnPct != 3 {
		t.Fatalf("expected return 3, got %v", trade.ReturnPct)
	}
}

func TestRunInsufficientHistory(t *testing.T) {
	uc := NewBacktestUseCase(testLogger(t), backtestConfig(), &fakeMarket{candles: risingCandles(20)}, nil)
	if _, err := uc.Run(context.Background(), BacktestParams{Symbol: "ABC"}); err == nil {
		t.Fatal("expected error for short history")
	}
}

func TestRunSteadyRiseWithoutOverheadRoomSkipsEntries(t *testing.T) {
	// A monotone rise has no swing levels, so the engine falls back to
	// the default bands whose reward to risk ratio is too thin to trade.
	uc := NewBacktestUseCase(testLogger(t), backtestConfig(), &fakeMarket{candles: risingCandles(90)}, nil)

	result, err := uc.Run(context.Background(), BacktestParams{Symbol: "ABC"})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(result.Trades) != 0 {
		t.Fatalf("expected no trades, got %d", len(result.Trades))
	}
	if result.TotalReturn != 0 {
		t.Fatalf("expected zero total return, got %v", result.TotalReturn)
	}
	if result.WinRate != 0 {
		t.Fatalf("expected zero win rate, got %v", result.WinRate)
	}
}
