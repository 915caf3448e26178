package repository

import (
	"context"
	"time"

	"SwingScope/internal/domain/models"
)

// MarketData fetches price history, quotes, and fundamentals for a symbol.
type MarketData interface {
	History(ctx context.Context, symbol string, from, to time.Time) ([]models.Candle, error)
	Quote(ctx context.Context, symbol string) (*models.Quote, error)
	Fundamentals(ctx context.Context, symbol string) (*models.Fundamentals, error)
	Invalidate(ctx context.Context, symbol string) error
}

// NewsProvider fetches recent headlines for a symbol.
type NewsProvider interface {
	Headlines(ctx context.Context, symbol string, limit int) ([]models.NewsArticle, error)
}

// QuoteStream delivers live quote updates over a persistent connection.
type QuoteStream interface {
	Connect(ctx context.Context) error
	Subscribe(ctx context.Context, symbols []string) error
	Read(ctx context.Context) (<-chan *models.Quote, <-chan error)
	Reconnect(ctx context.Context) error
	Close() error
	IsConnected() bool
}

// ReportStore persists analysis reports for later retrieval.
type ReportStore interface {
	Init(ctx context.Context) error // ensure tables exist
	Save(ctx context.Context, report *models.Report) error
	Latest(ctx context.Context, symbol string) (*models.Report, error)
	List(ctx context.Context, symbol string, from, to *time.Time, limit int) ([]*models.Report, error)
	Health(ctx context.Context) error
	Close() error
}

// ReportWriter writes a report to a secondary sink (files, console).
type ReportWriter interface {
	Write(ctx context.Context, report *models.Report) error
}

// RecommendationPublisher pushes finished recommendations downstream.
type RecommendationPublisher interface {
	Publish(ctx context.Context, report *models.Report) error
	Close() error
}

// Notifier delivers alerts for notable ratings.
type Notifier interface {
	Notify(ctx context.Context, report *models.Report) error
}

// SymbolSearcher resolves free-text queries to known symbols.
type SymbolSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]models.SymbolMatch, error)
	Close() error
}

// Metrics records counters and gauges for observability.
type Metrics interface {
	RecordAnalysis(symbol, rating string)
	RecordFetchError(source string)
	RecordLastPrice(symbol string, price float64)
	RecordScore(symbol, component string, score float64)
	RecordStageDuration(stage string, seconds float64)
}
