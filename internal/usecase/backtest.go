package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"SwingScope/internal/domain/models"
	domrepo "SwingScope/internal/domain/repository"
	"SwingScope/internal/services/analytics"
	"SwingScope/pkg/config"
	"SwingScope/pkg/logger"
)

// BacktestUseCase replays the recommendation engine over historical
// candles and measures how its Buy signals would have performed.
type BacktestUseCase struct {
	logger  *logger.Logger
	market  domrepo.MarketData
	engine  *analytics.Engine
	metrics domrepo.Metrics

	lookbackDays int
	contextDays  int
	holdDays     int
}

// NewBacktestUseCase builds the backtester from config.
func NewBacktestUseCase(lgr *logger.Logger, cfg *config.Config, market domrepo.MarketData, metrics domrepo.Metrics) *BacktestUseCase {
	return &BacktestUseCase{
		logger:       lgr,
		market:       market,
		engine:       analytics.NewEngine(cfg),
		metrics:      metrics,
		lookbackDays: cfg.Backtest.LookbackDays,
		contextDays:  cfg.Backtest.ContextDays,
		holdDays:     cfg.Backtest.HoldDays,
	}
}

// BacktestParams controls one backtest run.
type BacktestParams struct {
	Symbol       string
	LookbackDays int
	HoldDays     int
}

// neutral stand-in so fundamentals neither help nor hurt the replay
var backtestFundamentals = func(symbol string) *models.Fundamentals {
	pe, de, roe, inst := 20.0, 0.5, 0.18, 0.6
	return &models.Fundamentals{
		Symbol:               symbol,
		PERatio:              &pe,
		DebtToEquity:         &de,
		ROE:                  &roe,
		InstitutionalHolding: &inst,
	}
}

// Run walks a rolling window over history. At each step the engine sees
// only the trailing context window, and any Buy or Strong Buy entry is
// held for up to holdDays, exiting on whichever of stop or target is
// touched first.
func (uc *BacktestUseCase) Run(ctx context.Context, p BacktestParams) (*models.BacktestResult, error) {
	if p.Symbol == "" {
		return nil, fmt.Errorf("symbol required")
	}
	if p.LookbackDays <= 0 {
		p.LookbackDays = uc.lookbackDays
	}
	if p.HoldDays <= 0 {
		p.HoldDays = uc.holdDays
	}

	started := time.Now()
	to := started
	from := to.AddDate(0, 0, -(p.LookbackDays + uc.contextDays))

	candles, err := uc.market.History(ctx, p.Symbol, from, to)
	if err != nil {
		return nil, fmt.Errorf("backtest %s: %w", p.Symbol, err)
	}
	if len(candles) <= uc.contextDays+p.HoldDays {
		return nil, fmt.Errorf("backtest %s: need more than %d candles, got %d",
			p.Symbol, uc.contextDays+p.HoldDays, len(candles))
	}

	result := &models.BacktestResult{
		Symbol: p.Symbol,
		From:   candles[uc.contextDays].Date,
		To:     candles[len(candles)-1].Date,
	}

	fund := backtestFundamentals(p.Symbol)
	fundScore := analytics.FundamentalScore(fund)
	newsScore := analytics.NewsScore(nil, started)

	equity := decimal.Zero
	peak := decimal.Zero
	maxDD := decimal.Zero
	var returns []float64

	for i := uc.contextDays; i < len(candles)-p.HoldDays; i++ {
		window := candles[i-uc.contextDays : i+1]
		snap := analytics.Snapshot(p.Symbol, window)
		if snap == nil {
			continue
		}

		overall := uc.engine.Overall(analytics.TechnicalScore(snap), newsScore, fundScore)
		rec := uc.engine.Recommend(snap, overall, nil)
		if rec.Rating != models.RatingBuy && rec.Rating != models.RatingStrongBuy {
			continue
		}

		trade := uc.simulate(p.Symbol, rec, candles[i], candles[i+1:i+1+p.HoldDays])
		result.Trades = append(result.Trades, trade)

		entry := decimal.NewFromFloat(trade.Entry)
		exit := decimal.NewFromFloat(trade.Exit)
		pnl := exit.Sub(entry)
		equity = equity.Add(pnl)
		result.EquityCurve = append(result.EquityCurve, equity.InexactFloat64())
		returns = append(returns, trade.ReturnPct)

		if equity.GreaterThan(peak) {
			peak = equity
		}
		if dd := peak.Sub(equity); dd.GreaterThan(maxDD) {
			maxDD = dd
		}
	}

	if n := len(result.Trades); n > 0 {
		wins := 0
		sum := 0.0
		for _, r := range returns {
			if r > 0 {
				wins++
			}
			sum += r
		}
		result.WinRate = float64(wins) / float64(n)
		result.AvgReturn = sum / float64(n)
	}
	result.TotalReturn = equity.InexactFloat64()
	result.MaxDrawdown = maxDD.InexactFloat64()

	if uc.metrics != nil {
		uc.metrics.RecordStageDuration("backtest", time.Since(started).Seconds())
	}
	uc.logger.Info("backtest finished",
		logger.String("symbol", p.Symbol),
		logger.Int("trades", len(result.Trades)),
		logger.Float64("total_return", result.TotalReturn))

	return result, nil
}

// simulate holds a position through the future window, checking the stop
// before the target on each day. An untouched position exits at the last
// close.
func (uc *BacktestUseCase) simulate(symbol string, rec models.Recommendation, entryCandle models.Candle, future []models.Candle) models.BacktestTrade {
	trade := models.BacktestTrade{
		Symbol:    symbol,
		EntryDate: entryCandle.Date,
		Entry:     rec.EntryPrice,
		Target:    rec.Target,
		StopLoss:  rec.StopLoss,
		Rating:    rec.Rating,
	}

	for _, day := range future {
		if day.Low <= rec.StopLoss {
			trade.ExitDate = day.Date
			trade.Exit = rec.StopLoss
			trade.Outcome = OutcomeStopLoss
			break
		}
		if day.High >= rec.Target {
			trade.ExitDate = day.Date
			trade.Exit = rec.Target
			trade.Outcome = OutcomeTarget
			break
		}
	}
	if trade.Outcome == "" {
		last := future[len(future)-1]
		trade.ExitDate = last.Date
		trade.Exit = last.Close
		trade.Outcome = OutcomeHold
	}

	if trade.Entry != 0 {
		entry := decimal.NewFromFloat(trade.Entry)
		exit := decimal.NewFromFloat(trade.Exit)
		trade.ReturnPct = exit.Sub(entry).Div(entry).Mul(decimal.NewFromInt(100)).
			Round(2).InexactFloat64()
	}
	return trade
}

// Trade outcomes.
const (
	OutcomeTarget   = "Target"
	OutcomeStopLoss = "Stop Loss"
	OutcomeHold     = "Hold"
)
