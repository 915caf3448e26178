package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	domrepo "SwingScope/internal/domain/repository"
	"SwingScope/internal/handler/api"
	"SwingScope/internal/usecase"
	"SwingScope/pkg/cache"
	pkgch "SwingScope/pkg/clickhouse"
	"SwingScope/pkg/config"
	xhttp "SwingScope/pkg/http"
	"SwingScope/pkg/logger"
	"SwingScope/pkg/queue"
)

// App encapsulates the application lifecycle across run modes.
type App struct {
	cfg       *config.Config
	logger    *logger.Logger
	handler   *api.AnalysisHandler
	analyze   *usecase.AnalyzeUseCase
	backtest  *usecase.BacktestUseCase
	queue     *queue.RedisQueue
	stream    domrepo.QuoteStream
	store     domrepo.ReportStore
	publisher domrepo.RecommendationPublisher
	chClient  *pkgch.Client
	metrics   domrepo.Metrics
	cache     cache.Service

	httpServer *xhttp.Server
}

// New creates an App with all dependencies injected.
func New(
	cfg *config.Config,
	lgr *logger.Logger,
	handler *api.AnalysisHandler,
	analyze *usecase.AnalyzeUseCase,
	backtest *usecase.BacktestUseCase,
	q *queue.RedisQueue,
	stream domrepo.QuoteStream,
	store domrepo.ReportStore,
	publisher domrepo.RecommendationPublisher,
	chClient *pkgch.Client,
	m domrepo.Metrics,
	c cache.Service,
) *App {
	return &App{
		cfg:       cfg,
		logger:    lgr,
		handler:   handler,
		analyze:   analyze,
		backtest:  backtest,
		queue:     q,
		stream:    stream,
		store:     store,
		publisher: publisher,
		chClient:  chClient,
		metrics:   m,
		cache:     c,
	}
}

// Run dispatches on mode. analyze and backtest are one-shot batch runs,
// serve starts the HTTP API and blocks until interrupted.
func (a *App) Run(mode string, symbols []string) error {
	defer a.closeResources()

	if len(symbols) == 0 {
		symbols = a.cfg.Analysis.Symbols
	}

	switch mode {
	case "analyze":
		return a.runAnalyze(symbols)
	case "backtest":
		return a.runBacktest(symbols)
	case "serve", "":
		return a.runServe(symbols)
	default:
		return fmt.Errorf("unknown mode %q", mode)
	}
}

func (a *App) runAnalyze(symbols []string) error {
	if len(symbols) == 0 {
		return fmt.Errorf("no symbols configured")
	}

	ctx := context.Background()
	reports, err := a.analyze.AnalyzeAll(ctx, symbols, usecase.AnalyzeParams{
		HistoryDays: a.cfg.Market.HistoryDays,
		WithNews:    true,
		WithSector:  true,
	})
	if err != nil {
		return err
	}

	for _, report := range reports {
		a.logger.Info("analysis complete",
			logger.String("symbol", report.Symbol),
			logger.String("rating", report.Recommendation.Rating),
			logger.Float64("overall", report.Scores.Overall),
			logger.Float64("risk_reward", report.Recommendation.RiskReward))
	}
	return nil
}

func (a *App) runBacktest(symbols []string) error {
	if len(symbols) == 0 {
		return fmt.Errorf("no symbols configured")
	}

	ctx := context.Background()
	for _, symbol := range symbols {
		result, err := a.backtest.Run(ctx, usecase.BacktestParams{Symbol: symbol})
		if err != nil {
			a.logger.Error("backtest failed",
				logger.String("symbol", symbol),
				logger.Error(err))
			continue
		}
		a.logger.Info("backtest complete",
			logger.String("symbol", symbol),
			logger.Int("trades", len(result.Trades)),
			logger.Float64("win_rate", result.WinRate),
			logger.Float64("total_return", result.TotalReturn),
			logger.Float64("max_drawdown", result.MaxDrawdown))
	}
	return nil
}

func (a *App) runServe(symbols []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	if a.queue != nil {
		if err := a.queue.Start(); err != nil {
			return fmt.Errorf("queue start: %w", err)
		}
		a.logger.Info("queue workers started", logger.Int("workers", a.cfg.Queue.Workers))
	}

	if a.stream != nil && len(symbols) > 0 {
		go a.consumeStream(ctx, symbols)
	}

	if err := a.httpServer.Start(); err != nil {
		return fmt.Errorf("http server: %w", err)
	}
	a.logger.Info("server started", logger.Int("port", a.cfg.Server.Port))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// consumeStream keeps last traded prices flowing into the metrics
// gauges and the cache, reconnecting with a delay after stream errors.
func (a *App) consumeStream(ctx context.Context, symbols []string) {
	delay := a.cfg.Stream.ReconnectDelay
	if delay <= 0 {
		delay = 5 * time.Second
	}

	if err := a.stream.Connect(ctx); err != nil {
		a.logger.Error("stream connect failed", logger.Error(err))
		return
	}
	if err := a.stream.Subscribe(ctx, symbols); err != nil {
		a.logger.Error("stream subscribe failed", logger.Error(err))
		return
	}
	a.logger.Info("quote stream connected", logger.Strings("symbols", symbols))

	for {
		quotes, errs := a.stream.Read(ctx)
	session:
		for {
			select {
			case <-ctx.Done():
				return
			case q, ok := <-quotes:
				if !ok {
					break session
				}
				if a.metrics != nil {
					a.metrics.RecordLastPrice(q.Symbol, q.Price)
				}
				if a.cache != nil {
					key := cache.GenerateKey("last_price", q.Symbol)
					_ = a.cache.Set(ctx, key, q.Price, a.cfg.Market.CacheTTL.Quote)
				}
			case err, ok := <-errs:
				if !ok {
					break session
				}
				a.logger.Warn("stream error", logger.Error(err))
				break session
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
		if err := a.stream.Reconnect(ctx); err != nil {
			a.logger.Error("stream reconnect failed", logger.Error(err))
		}
	}
}

func (a *App) shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if a.httpServer != nil {
		if err := a.httpServer.Stop(shutdownCtx); err != nil {
			a.logger.Error("http shutdown error", logger.Error(err))
		}
	}
	if a.queue != nil {
		if err := a.queue.Stop(shutdownCtx); err != nil {
			a.logger.Error("queue shutdown error", logger.Error(err))
		}
	}
	a.logger.Info("shutdown complete")
	return nil
}

func (a *App) closeResources() {
	if a.stream != nil {
		if err := a.stream.Close(); err != nil {
			a.logger.Warn("stream close error", logger.Error(err))
		}
	}
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Warn("publisher close error", logger.Error(err))
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("store close error", logger.Error(err))
		}
	}
	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.logger.Warn("clickhouse close error", logger.Error(err))
		}
	}
}
