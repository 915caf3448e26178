package news

import (
	"context"
	"fmt"
	"time"

	"SwingScope/internal/domain/models"
	domrepo "SwingScope/internal/domain/repository"
	"SwingScope/internal/services/analytics"
	"SwingScope/pkg/cache"
	xhttp "SwingScope/pkg/http"
	"SwingScope/pkg/logger"
)

const defaultSearchURL = "https://query1.finance.yahoo.com/v1/finance/search"

// Client fetches headlines from the Yahoo Finance search endpoint and
// labels each with a coarse sentiment.
type Client struct {
	logger    *logger.Logger
	client    *xhttp.Client
	cache     cache.Service
	metrics   domrepo.Metrics
	searchURL string
	ttl       time.Duration
}

// Option configures the news client.
type Option func(*Client)

// WithCache enables read-through caching of headline batches.
func WithCache(c cache.Service, ttl time.Duration) Option {
	return func(n *Client) {
		n.cache = c
		n.ttl = ttl
	}
}

// WithMetrics wires fetch error counters.
func WithMetrics(m domrepo.Metrics) Option {
	return func(n *Client) {
		n.metrics = m
	}
}

// WithSearchURL overrides the search endpoint.
func WithSearchURL(url string) Option {
	return func(n *Client) {
		if url != "" {
			n.searchURL = url
		}
	}
}

// New creates a news client.
func New(lgr *logger.Logger, requestTimeout time.Duration, opts ...Option) *Client {
	n := &Client{
		logger:    lgr,
		client:    xhttp.NewClient(xhttp.WithTimeout(requestTimeout)),
		searchURL: defaultSearchURL,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

type searchResponse struct {
	News []struct {
		Title               string `json:"title"`
		Publisher           string `json:"publisher"`
		Link                string `json:"link"`
		ProviderPublishTime int64  `json:"providerPublishTime"`
	} `json:"news"`
}

// Headlines returns up to limit recent articles for the symbol, each
// labeled with a sentiment from its title.
func (n *Client) Headlines(ctx context.Context, symbol string, limit int) ([]models.NewsArticle, error) {
	if limit <= 0 {
		limit = 5
	}

	key := cache.GenerateKeyWithParams("news", symbol, limit)
	if n.cache != nil {
		var cached []models.NewsArticle
		if err := n.cache.Get(ctx, key, &cached); err == nil && len(cached) > 0 {
			return cached, nil
		}
	}

	var resp searchResponse
	err := n.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    n.searchURL,
		QueryParams: map[string][]string{
			"q": {symbol},
		},
		Headers: map[string]string{
			"User-Agent": "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)",
		},
	}, &resp)
	if err != nil {
		if n.metrics != nil {
			n.metrics.RecordFetchError("news")
		}
		return nil, fmt.Errorf("news search %s: %w", symbol, err)
	}

	articles := make([]models.NewsArticle, 0, limit)
	for _, item := range resp.News {
		if len(articles) >= limit {
			break
		}
		articles = append(articles, models.NewsArticle{
			Title:       item.Title,
			Source:      item.Publisher,
			URL:         item.Link,
			PublishedAt: time.Unix(item.ProviderPublishTime, 0).UTC(),
			Sentiment:   analytics.ClassifySentiment(item.Title),
		})
	}

	if n.cache != nil && len(articles) > 0 {
		_ = n.cache.Set(ctx, key, articles, n.ttl)
	}
	n.logger.Debug("headlines fetched",
		logger.String("symbol", symbol),
		logger.Int("articles", len(articles)))
	return articles, nil
}

var _ domrepo.NewsProvider = (*Client)(nil)
