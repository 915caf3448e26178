package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"SwingScope/internal/domain/models"
	domrepo "SwingScope/internal/domain/repository"
	"SwingScope/internal/services/analytics"
	"SwingScope/pkg/cache"
	"SwingScope/pkg/config"
	"SwingScope/pkg/logger"
)

// AnalyzeUseCase runs the full analysis pipeline for one symbol:
// fetch, score, recommend, persist.
type AnalyzeUseCase struct {
	logger  *logger.Logger
	market  domrepo.MarketData
	news    domrepo.NewsProvider
	engine  *analytics.Engine
	metrics domrepo.Metrics

	store     domrepo.ReportStore
	writer    domrepo.ReportWriter
	publisher domrepo.RecommendationPublisher
	notifier  domrepo.Notifier
	cache     cache.Service

	historyDays int
	maxArticles int
	sectorName  string
	sectorPeers []string
	sectorTTL   time.Duration
	timeout     time.Duration
	now         func() time.Time
}

// AnalyzeOption wires optional sinks into the pipeline.
type AnalyzeOption func(*AnalyzeUseCase)

// WithStore persists reports to the report store.
func WithStore(s domrepo.ReportStore) AnalyzeOption {
	return func(uc *AnalyzeUseCase) { uc.store = s }
}

// WithWriter writes reports to a secondary sink.
func WithWriter(w domrepo.ReportWriter) AnalyzeOption {
	return func(uc *AnalyzeUseCase) { uc.writer = w }
}

// WithPublisher pushes finished reports downstream.
func WithPublisher(p domrepo.RecommendationPublisher) AnalyzeOption {
	return func(uc *AnalyzeUseCase) { uc.publisher = p }
}

// WithNotifier sends alerts for actionable ratings.
func WithNotifier(n domrepo.Notifier) AnalyzeOption {
	return func(uc *AnalyzeUseCase) { uc.notifier = n }
}

// WithMetrics records pipeline metrics.
func WithMetrics(m domrepo.Metrics) AnalyzeOption {
	return func(uc *AnalyzeUseCase) { uc.metrics = m }
}

// WithCache caches sector comparisons between runs.
func WithCache(c cache.Service) AnalyzeOption {
	return func(uc *AnalyzeUseCase) { uc.cache = c }
}

// NewAnalyzeUseCase builds the pipeline from config.
func NewAnalyzeUseCase(lgr *logger.Logger, cfg *config.Config, market domrepo.MarketData, news domrepo.NewsProvider, opts ...AnalyzeOption) *AnalyzeUseCase {
	uc := &AnalyzeUseCase{
		logger:      lgr,
		market:      market,
		news:        news,
		engine:      analytics.NewEngine(cfg),
		historyDays: cfg.Market.HistoryDays,
		maxArticles: cfg.News.MaxArticles,
		sectorName:  cfg.Sector.Name,
		sectorTTL:   cfg.Sector.CacheTTL,
		timeout:     60 * time.Second,
		now:         time.Now,
	}
	for peer := range cfg.Sector.Peers {
		uc.sectorPeers = append(uc.sectorPeers, peer)
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// AnalyzeParams controls one analysis run. Refresh drops the symbol's
// cached market data before fetching.
type AnalyzeParams struct {
	Symbol      string
	HistoryDays int
	WithNews    bool
	WithSector  bool
	Refresh     bool
}

// Analyze fetches all inputs concurrently, scores them, and produces the
// report. History is mandatory; the other inputs degrade to neutral
// scores and are recorded in the report's error map.
func (uc *AnalyzeUseCase) Analyze(ctx context.Context, p AnalyzeParams) (*models.Report, error) {
	if p.Symbol == "" {
		return nil, fmt.Errorf("symbol required")
	}
	if p.HistoryDays <= 0 {
		p.HistoryDays = uc.historyDays
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	started := uc.now()
	report := &models.Report{
		Symbol:      p.Symbol,
		GeneratedAt: started,
		Errors:      map[string]string{},
	}

	if p.Refresh {
		if err := uc.market.Invalidate(ctx, p.Symbol); err != nil {
			uc.logger.Warn("market cache invalidation failed",
				logger.String("symbol", p.Symbol),
				logger.Error(err))
		}
	}

	to := started
	from := to.AddDate(0, 0, -p.HistoryDays)

	type item struct {
		name string
		val  interface{}
		err  error
	}
	ch := make(chan item, 4)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := uc.market.History(ctx, p.Symbol, from, to)
		ch <- item{"history", v, err}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := uc.market.Quote(ctx, p.Symbol)
		ch <- item{"quote", v, err}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := uc.market.Fundamentals(ctx, p.Symbol)
		ch <- item{"fundamentals", v, err}
	}()
	if p.WithNews {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := uc.news.Headlines(ctx, p.Symbol, uc.maxArticles)
			ch <- item{"news", v, err}
		}()
	}

	go func() { wg.Wait(); close(ch) }()

	var candles []models.Candle
	for it := range ch {
		if it.err != nil {
			report.Errors[it.name] = it.err.Error()
			continue
		}
		switch it.name {
		case "history":
			candles = it.val.([]models.Candle)
		case "quote":
			report.Quote = it.val.(*models.Quote)
		case "fundamentals":
			report.Fundamentals = it.val.(*models.Fundamentals)
		case "news":
			report.News = it.val.([]models.NewsArticle)
		}
	}

	if len(candles) == 0 {
		return nil, fmt.Errorf("analyze %s: no price history: %s", p.Symbol, report.Errors["history"])
	}
	if len(candles) < analytics.MinHistory {
		return nil, fmt.Errorf("analyze %s: %d candles of history, need at least %d", p.Symbol, len(candles), analytics.MinHistory)
	}
	report.Candles = candles

	if p.WithSector && len(uc.sectorPeers) > 0 {
		report.Sector = uc.compareSector(ctx, p.Symbol, report.Fundamentals)
	}

	report.Technical = analytics.Snapshot(p.Symbol, candles)

	report.Scores.Technical = analytics.TechnicalScore(report.Technical)
	report.Scores.News = analytics.NewsScore(report.News, started)
	report.Scores.Fundamental = analytics.FundamentalScore(report.Fundamentals)
	report.Scores.Overall = uc.engine.Overall(report.Scores.Technical, report.Scores.News, report.Scores.Fundamental)
	report.Recommendation = uc.engine.Recommend(report.Technical, report.Scores.Overall, report.Sector)

	if len(report.Errors) == 0 {
		report.Errors = nil
	}

	uc.record(p.Symbol, report, started)
	uc.persist(ctx, report)

	return report, nil
}

// AnalyzeAll analyzes the given symbols sequentially, collecting per
// symbol failures instead of aborting the batch.
func (uc *AnalyzeUseCase) AnalyzeAll(ctx context.Context, symbols []string, p AnalyzeParams) ([]*models.Report, error) {
	reports := make([]*models.Report, 0, len(symbols))
	var firstErr error
	for _, symbol := range symbols {
		sp := p
		sp.Symbol = symbol
		report, err := uc.Analyze(ctx, sp)
		if err != nil {
			uc.logger.Error("analysis failed",
				logger.String("symbol", symbol),
				logger.Error(err))
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		reports = append(reports, report)
	}
	if len(reports) == 0 && firstErr != nil {
		return nil, firstErr
	}
	return reports, nil
}

// compareSector fetches peer fundamentals concurrently and compares.
// Comparisons are cached per symbol, peer scans are the expensive call.
func (uc *AnalyzeUseCase) compareSector(ctx context.Context, symbol string, stock *models.Fundamentals) *models.SectorComparison {
	key := cache.GenerateKeyWithParams("sector", uc.sectorName, symbol)
	if uc.cache != nil {
		var cached models.SectorComparison
		if err := uc.cache.Get(ctx, key, &cached); err == nil && cached.Sector != "" {
			return &cached
		}
	}

	type peerItem struct {
		symbol string
		val    *models.Fundamentals
	}
	ch := make(chan peerItem, len(uc.sectorPeers))
	var wg sync.WaitGroup

	for _, peer := range uc.sectorPeers {
		if peer == symbol {
			continue
		}
		wg.Add(1)
		go func(peer string) {
			defer wg.Done()
			f, err := uc.market.Fundamentals(ctx, peer)
			if err != nil {
				uc.logger.Warn("peer fundamentals failed",
					logger.String("peer", peer),
					logger.Error(err))
				ch <- peerItem{peer, nil}
				return
			}
			ch <- peerItem{peer, f}
		}(peer)
	}

	go func() { wg.Wait(); close(ch) }()

	peers := make(map[string]*models.Fundamentals)
	for it := range ch {
		peers[it.symbol] = it.val
	}

	cmp := analytics.CompareSector(uc.sectorName, stock, peers)
	if uc.cache != nil && cmp != nil {
		_ = uc.cache.Set(ctx, key, *cmp, uc.sectorTTL)
	}
	return cmp
}

func (uc *AnalyzeUseCase) record(symbol string, report *models.Report, started time.Time) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.RecordAnalysis(symbol, report.Recommendation.Rating)
	if report.Quote != nil {
		uc.metrics.RecordLastPrice(symbol, report.Quote.Price)
	}
	uc.metrics.RecordScore(symbol, "technical", report.Scores.Technical)
	uc.metrics.RecordScore(symbol, "news", report.Scores.News)
	uc.metrics.RecordScore(symbol, "fundamental", report.Scores.Fundamental)
	uc.metrics.RecordScore(symbol, "overall", report.Scores.Overall)
	uc.metrics.RecordStageDuration("analyze", uc.now().Sub(started).Seconds())
}

// persist fans the report out to every configured sink. Sinks fail soft.
func (uc *AnalyzeUseCase) persist(ctx context.Context, report *models.Report) {
	if uc.store != nil {
		if err := uc.store.Save(ctx, report); err != nil {
			uc.logger.Error("report store save failed",
				logger.String("symbol", report.Symbol),
				logger.Error(err))
		}
	}
	if uc.writer != nil {
		if err := uc.writer.Write(ctx, report); err != nil {
			uc.logger.Error("report write failed",
				logger.String("symbol", report.Symbol),
				logger.Error(err))
		}
	}
	if uc.publisher != nil {
		if err := uc.publisher.Publish(ctx, report); err != nil {
			uc.logger.Error("report publish failed",
				logger.String("symbol", report.Symbol),
				logger.Error(err))
		}
	}
	if uc.notifier != nil {
		rating := report.Recommendation.Rating
		if rating == models.RatingStrongBuy || rating == models.RatingBuy {
			if err := uc.notifier.Notify(ctx, report); err != nil {
				uc.logger.Error("notify failed",
					logger.String("symbol", report.Symbol),
					logger.Error(err))
			}
		}
	}
}
