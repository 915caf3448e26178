//go:build wireinject
// +build wireinject

package di

import (
	"SwingScope/pkg/config"
	"SwingScope/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideRedisCache,
		ProvideCache,
		ProvideClickHouseClient,
		ProvideKafkaProducer,

		// Data sources and sinks
		ProvideMarketData,
		ProvideNews,
		ProvideReportStore,
		ProvideReportWriter,
		ProvidePublisher,
		ProvideNotifier,
		ProvideSearcher,
		ProvideQuoteStream,

		// Use cases
		ProvideAnalyzeUseCase,
		ProvideBacktestUseCase,
		ProvideReportsUseCase,
		ProvideQueue,

		// HTTP and application
		ProvideHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
