package di

import (
	"context"
	"fmt"
	"time"

	"SwingScope/internal/handler/api"
	"SwingScope/internal/notify"
	internalrepo "SwingScope/internal/repository"
	"SwingScope/internal/search"
	"SwingScope/internal/service/marketdata"
	"SwingScope/internal/service/news"
	"SwingScope/internal/service/stream"
	"SwingScope/internal/usecase"
	"SwingScope/pkg/cache"
	pkgch "SwingScope/pkg/clickhouse"
	"SwingScope/pkg/config"
	pkgkafka "SwingScope/pkg/kafka"
	"SwingScope/pkg/logger"
	"SwingScope/pkg/metrics"
	"SwingScope/pkg/queue"
	"SwingScope/pkg/server"

	domrepo "SwingScope/internal/domain/repository"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	lc := &logger.Config{Level: "info", Format: "json", Output: "stdout"}
	if cfg.Environment == "development" {
		lc.Level = "debug"
		lc.Format = "console"
	}
	return logger.New(lc)
}

// ProvideMetrics creates the Prometheus recorder.
func ProvideMetrics() domrepo.Metrics {
	return metrics.New()
}

// ProvideRedisCache creates the Redis client, nil when disabled.
func ProvideRedisCache(cfg *config.Config) (*cache.RedisCache, error) {
	if !cfg.Redis.Enabled {
		return nil, nil
	}
	redisCache, err := cache.NewRedisCache(
		cache.WithRedisHost(cfg.Redis.Host),
		cache.WithRedisPort(cfg.Redis.Port),
		cache.WithRedisPassword(cfg.Redis.Password),
		cache.WithRedisDB(cfg.Redis.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return redisCache, nil
}

// ProvideCache creates the cache layer. Without Redis it degrades to an
// in-process cache so the pipeline still avoids duplicate upstream calls.
func ProvideCache(redisCache *cache.RedisCache) cache.Service {
	if redisCache == nil {
		return cache.NewMemoryCache()
	}
	return cache.NewLayeredCache(redisCache)
}

// ProvideMarketData creates the Yahoo market data client.
func ProvideMarketData(cfg *config.Config, lgr *logger.Logger, c cache.Service, m domrepo.Metrics) domrepo.MarketData {
	opts := []marketdata.Option{
		marketdata.WithCache(c,
			cfg.Market.CacheTTL.History,
			cfg.Market.CacheTTL.Quote,
			cfg.Market.CacheTTL.Fundamentals),
		marketdata.WithRateLimit(cfg.Market.RateLimit.Capacity, cfg.Market.RateLimit.RefillPerSec),
		marketdata.WithMetrics(m),
	}
	if cfg.Market.QuoteSummaryURL != "" {
		opts = append(opts, marketdata.WithQuoteSummaryURL(cfg.Market.QuoteSummaryURL))
	}
	return marketdata.New(lgr, cfg.Market.RequestTimeout, opts...)
}

// ProvideNews creates the headline client.
func ProvideNews(cfg *config.Config, lgr *logger.Logger, c cache.Service, m domrepo.Metrics) domrepo.NewsProvider {
	opts := []news.Option{
		news.WithCache(c, cfg.News.CacheTTL),
		news.WithMetrics(m),
	}
	if cfg.Market.SearchURL != "" {
		opts = append(opts, news.WithSearchURL(cfg.Market.SearchURL))
	}
	return news.New(lgr, cfg.Market.RequestTimeout, opts...)
}

// ProvideClickHouseClient creates the ClickHouse pool, nil when disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.ClickHouse.Enabled {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvideReportStore creates the ClickHouse report store, nil when the
// database is disabled.
func ProvideReportStore(chClient *pkgch.Client) (domrepo.ReportStore, error) {
	if chClient == nil {
		return nil, nil
	}
	store := internalrepo.NewClickHouseReportStore(chClient.DB(), "swingscope_reports")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Init(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// ProvideReportWriter creates the JSON file sink.
func ProvideReportWriter(cfg *config.Config) domrepo.ReportWriter {
	return internalrepo.NewFileReportWriter(cfg.Output.Dir)
}

// ProvideKafkaProducer creates the Kafka producer, nil when disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvidePublisher creates the recommendation publisher over Kafka.
func ProvidePublisher(producer *pkgkafka.Producer, cfg *config.Config) domrepo.RecommendationPublisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaRecommendationPublisher(producer, cfg.Kafka.Topic)
}

// ProvideNotifier creates the Telegram notifier, nil when disabled.
func ProvideNotifier(cfg *config.Config, lgr *logger.Logger) (domrepo.Notifier, error) {
	tg := cfg.Notify.Telegram
	if !tg.Enabled || tg.Token == "" {
		return nil, nil
	}
	return notify.NewTelegram(lgr, tg.Token, tg.ChatID)
}

// ProvideSearcher builds the symbol search engine, nil when disabled.
func ProvideSearcher(cfg *config.Config, lgr *logger.Logger) (domrepo.SymbolSearcher, error) {
	if !cfg.Search.Enabled {
		return nil, nil
	}
	symbols, err := search.LoadSymbols(cfg.Search.SymbolsFile)
	if err != nil {
		return nil, err
	}
	return search.NewEngine(lgr, cfg.Search.IndexPath, symbols)
}

// ProvideQuoteStream creates the live quote stream, nil when disabled.
func ProvideQuoteStream(cfg *config.Config, lgr *logger.Logger) domrepo.QuoteStream {
	if !cfg.Stream.Enabled || cfg.Stream.APIKey == "" {
		return nil
	}
	return stream.New(lgr, cfg.Stream.APIKey, cfg.Stream.WebSocketURL,
		cfg.Stream.ReconnectDelay, cfg.Stream.PingInterval)
}

// ProvideAnalyzeUseCase assembles the analysis pipeline with every
// configured sink attached.
func ProvideAnalyzeUseCase(
	lgr *logger.Logger,
	cfg *config.Config,
	market domrepo.MarketData,
	newsProvider domrepo.NewsProvider,
	m domrepo.Metrics,
	store domrepo.ReportStore,
	writer domrepo.ReportWriter,
	publisher domrepo.RecommendationPublisher,
	notifier domrepo.Notifier,
	c cache.Service,
) *usecase.AnalyzeUseCase {
	opts := []usecase.AnalyzeOption{
		usecase.WithMetrics(m),
		usecase.WithWriter(writer),
		usecase.WithCache(c),
	}
	if store != nil {
		opts = append(opts, usecase.WithStore(store))
	}
	if publisher != nil {
		opts = append(opts, usecase.WithPublisher(publisher))
	}
	if notifier != nil {
		opts = append(opts, usecase.WithNotifier(notifier))
	}
	return usecase.NewAnalyzeUseCase(lgr, cfg, market, newsProvider, opts...)
}

// ProvideBacktestUseCase creates the backtester.
func ProvideBacktestUseCase(lgr *logger.Logger, cfg *config.Config, market domrepo.MarketData, m domrepo.Metrics) *usecase.BacktestUseCase {
	return usecase.NewBacktestUseCase(lgr, cfg, market, m)
}

// ProvideReportsUseCase creates the report reader.
func ProvideReportsUseCase(lgr *logger.Logger, store domrepo.ReportStore) *usecase.ReportsUseCase {
	return usecase.NewReportsUseCase(lgr, store)
}

// ProvideQueue creates the Redis job queue with the analyze job
// registered, nil when Redis is disabled.
func ProvideQueue(cfg *config.Config, lgr *logger.Logger, redisCache *cache.RedisCache, analyze *usecase.AnalyzeUseCase) *queue.RedisQueue {
	if redisCache == nil {
		return nil
	}
	qc := &queue.QueueConfig{
		Workers:    cfg.Queue.Workers,
		RetryLimit: cfg.Queue.RetryLimit,
		RetryDelay: cfg.Queue.RetryDelay,
	}
	q := queue.NewRedisQueue(lgr, qc, redisCache.Client(), queue.ModeProducerConsumer)
	q.RegisterJob(usecase.NewAnalyzeJob(lgr, analyze))
	return q
}

// ProvideHandler creates the HTTP handler.
func ProvideHandler(
	lgr *logger.Logger,
	analyze *usecase.AnalyzeUseCase,
	backtest *usecase.BacktestUseCase,
	reports *usecase.ReportsUseCase,
	searcher domrepo.SymbolSearcher,
	store domrepo.ReportStore,
	q *queue.RedisQueue,
) *api.AnalysisHandler {
	var qs queue.QueueService
	if q != nil {
		qs = q
	}
	return api.NewAnalysisHandler(lgr, analyze, backtest, reports, searcher, store, qs)
}

// ProvideApp assembles the application.
func ProvideApp(
	cfg *config.Config,
	lgr *logger.Logger,
	handler *api.AnalysisHandler,
	analyze *usecase.AnalyzeUseCase,
	backtest *usecase.BacktestUseCase,
	q *queue.RedisQueue,
	quoteStream domrepo.QuoteStream,
	store domrepo.ReportStore,
	publisher domrepo.RecommendationPublisher,
	chClient *pkgch.Client,
	m domrepo.Metrics,
	c cache.Service,
) *server.App {
	return server.New(cfg, lgr, handler, analyze, backtest, q, quoteStream, store, publisher, chClient, m, c)
}
