package marketdata

import (
	"context"
	"fmt"
	"sort"
	"time"

	"SwingScope/internal/domain/models"
	domrepo "SwingScope/internal/domain/repository"
	"SwingScope/internal/service/ratelimit"
	"SwingScope/pkg/cache"
	xhttp "SwingScope/pkg/http"
	"SwingScope/pkg/logger"
	"SwingScope/pkg/util"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/equity"
	"github.com/piquette/finance-go/quote"
)

const defaultQuoteSummaryURL = "https://query1.finance.yahoo.com/v10/finance/quoteSummary"

// Yahoo implements MarketData on top of the Yahoo Finance endpoints.
type Yahoo struct {
	logger  *logger.Logger
	client  *xhttp.Client
	cache   cache.Service
	limiter *ratelimit.Limiter
	metrics domrepo.Metrics

	quoteSummaryURL string
	rlCapacity      float64
	rlRefill        float64
	ttlHistory      time.Duration
	ttlQuote        time.Duration
	ttlFundamentals time.Duration
}

// Option configures the Yahoo provider.
type Option func(*Yahoo)

// WithCache enables read-through caching of upstream responses.
func WithCache(c cache.Service, history, quoteTTL, fundamentals time.Duration) Option {
	return func(y *Yahoo) {
		y.cache = c
		y.ttlHistory = history
		y.ttlQuote = quoteTTL
		y.ttlFundamentals = fundamentals
	}
}

// WithRateLimit caps upstream request rate with a token bucket.
func WithRateLimit(capacity, refillPerSec float64) Option {
	return func(y *Yahoo) {
		y.limiter = ratelimit.New()
		y.rlCapacity = capacity
		y.rlRefill = refillPerSec
	}
}

// WithMetrics wires fetch error counters.
func WithMetrics(m domrepo.Metrics) Option {
	return func(y *Yahoo) {
		y.metrics = m
	}
}

// WithQuoteSummaryURL overrides the quoteSummary endpoint.
func WithQuoteSummaryURL(url string) Option {
	return func(y *Yahoo) {
		if url != "" {
			y.quoteSummaryURL = url
		}
	}
}

// New creates a Yahoo market data provider.
func New(lgr *logger.Logger, requestTimeout time.Duration, opts ...Option) *Yahoo {
	y := &Yahoo{
		logger:          lgr,
		client:          xhttp.NewClient(xhttp.WithTimeout(requestTimeout)),
		quoteSummaryURL: defaultQuoteSummaryURL,
	}
	for _, opt := range opts {
		opt(y)
	}
	return y
}

func (y *Yahoo) allow() error {
	if y.limiter == nil {
		return nil
	}
	if !y.limiter.Allow("yahoo", y.rlCapacity, y.rlRefill) {
		return fmt.Errorf("yahoo: rate limit exceeded")
	}
	return nil
}

// History fetches daily candles between from and to, oldest first.
func (y *Yahoo) History(ctx context.Context, symbol string, from, to time.Time) ([]models.Candle, error) {
	key := cache.GenerateKeyWithParams("history", symbol, util.DateStamp(from), util.DateStamp(to))
	if y.cache != nil {
		var cached []models.Candle
		if err := y.cache.Get(ctx, key, &cached); err == nil && len(cached) > 0 {
			return cached, nil
		}
	}

	if err := y.allow(); err != nil {
		return nil, err
	}

	iter := chart.Get(&chart.Params{
		Symbol:   symbol,
		Start:    datetime.New(&from),
		End:      datetime.New(&to),
		Interval: datetime.OneDay,
	})

	var candles []models.Candle
	for iter.Next() {
		b := iter.Bar()
		candles = append(candles, models.Candle{
			Date:   time.Unix(int64(b.Timestamp), 0).UTC(),
			Open:   b.Open.InexactFloat64(),
			High:   b.High.InexactFloat64(),
			Low:    b.Low.InexactFloat64(),
			Close:  b.Close.InexactFloat64(),
			Volume: int64(b.Volume),
		})
	}
	if err := iter.Err(); err != nil {
		y.recordError("history")
		return nil, fmt.Errorf("yahoo history %s: %w", symbol, err)
	}
	if len(candles) == 0 {
		y.recordError("history")
		return nil, fmt.Errorf("yahoo history %s: no data", symbol)
	}

	sort.Slice(candles, func(i, j int) bool { return candles[i].Date.Before(candles[j].Date) })

	if y.cache != nil {
		_ = y.cache.Set(ctx, key, candles, y.ttlHistory)
	}
	y.logger.Debug("history fetched",
		logger.String("symbol", symbol),
		logger.Int("candles", len(candles)))
	return candles, nil
}

// Quote fetches the latest market snapshot.
func (y *Yahoo) Quote(ctx context.Context, symbol string) (*models.Quote, error) {
	key := cache.GenerateKey("quote", symbol)
	if y.cache != nil {
		var cached models.Quote
		if err := y.cache.Get(ctx, key, &cached); err == nil && cached.Symbol != "" {
			return &cached, nil
		}
	}

	if err := y.allow(); err != nil {
		return nil, err
	}

	q, err := quote.Get(symbol)
	if err != nil {
		y.recordError("quote")
		return nil, fmt.Errorf("yahoo quote %s: %w", symbol, err)
	}
	if q == nil {
		y.recordError("quote")
		return nil, fmt.Errorf("yahoo quote %s: empty response", symbol)
	}

	out := &models.Quote{
		Symbol:    q.Symbol,
		Price:     q.RegularMarketPrice,
		Volume:    int64(q.RegularMarketVolume),
		Timestamp: time.Unix(int64(q.RegularMarketTime), 0).UTC(),
	}
	if y.metrics != nil {
		y.metrics.RecordLastPrice(symbol, out.Price)
	}
	if y.cache != nil {
		_ = y.cache.Set(ctx, key, out, y.ttlQuote)
	}
	return out, nil
}

// quoteSummaryResponse mirrors the relevant slice of the v10 quoteSummary
// payload. Ratios arrive as {raw, fmt} objects.
type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			FinancialData struct {
				ReturnOnEquity rawValue `json:"returnOnEquity"`
				DebtToEquity   rawValue `json:"debtToEquity"`
			} `json:"financialData"`
			DefaultKeyStatistics struct {
				HeldPercentInstitutions rawValue `json:"heldPercentInstitutions"`
				TrailingEps             rawValue `json:"trailingEps"`
			} `json:"defaultKeyStatistics"`
		} `json:"result"`
	} `json:"quoteSummary"`
}

type rawValue struct {
	Raw *float64 `json:"raw"`
}

// Fundamentals combines the equity quote with the quoteSummary ratios.
func (y *Yahoo) Fundamentals(ctx context.Context, symbol string) (*models.Fundamentals, error) {
	key := cache.GenerateKey("fundamentals", symbol)
	if y.cache != nil {
		var cached models.Fundamentals
		if err := y.cache.Get(ctx, key, &cached); err == nil && cached.Symbol != "" {
			return &cached, nil
		}
	}

	if err := y.allow(); err != nil {
		return nil, err
	}

	out := &models.Fundamentals{Symbol: symbol}

	eq, err := equity.Get(symbol)
	if err != nil {
		y.recordError("fundamentals")
		return nil, fmt.Errorf("yahoo equity %s: %w", symbol, err)
	}
	if eq != nil {
		if eq.TrailingPE != 0 {
			pe := eq.TrailingPE
			out.PERatio = &pe
		}
		if eq.EpsTrailingTwelveMonths != 0 {
			eps := eq.EpsTrailingTwelveMonths
			out.EPS = &eps
		}
		if eq.MarketCap != 0 {
			mc := eq.MarketCap
			out.MarketCap = &mc
		}
	}

	var summary quoteSummaryResponse
	err = y.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    fmt.Sprintf("%s/%s", y.quoteSummaryURL, symbol),
		QueryParams: map[string][]string{
			"modules": {"financialData,defaultKeyStatistics"},
		},
		Headers: map[string]string{
			"User-Agent": "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)",
		},
	}, &summary)
	if err != nil {
		// Partial data from the equity quote still counts.
		y.logger.Warn("quote summary fetch failed",
			logger.String("symbol", symbol),
			logger.Error(err))
	} else {
		applySummary(out, &summary)
	}

	if y.cache != nil {
		_ = y.cache.Set(ctx, key, out, y.ttlFundamentals)
	}
	return out, nil
}

// Invalidate drops every cached entry for a symbol. History keys embed
// the requested date range, so those go by pattern.
func (y *Yahoo) Invalidate(ctx context.Context, symbol string) error {
	if y.cache == nil {
		return nil
	}
	pattern := cache.BuildPattern(cache.GenerateKey("history", symbol) + ":")
	if err := y.cache.DeleteByPattern(ctx, pattern); err != nil {
		return fmt.Errorf("invalidate history %s: %w", symbol, err)
	}
	return y.cache.Delete(ctx,
		cache.GenerateKey("quote", symbol),
		cache.GenerateKey("fundamentals", symbol))
}

func applySummary(f *models.Fundamentals, resp *quoteSummaryResponse) {
	if len(resp.QuoteSummary.Result) == 0 {
		return
	}
	r := resp.QuoteSummary.Result[0]
	if v := r.FinancialData.ReturnOnEquity.Raw; v != nil {
		roe := *v
		f.ROE = &roe
	}
	if v := r.FinancialData.DebtToEquity.Raw; v != nil {
		// Upstream reports debt/equity in percent.
		de := *v / 100
		f.DebtToEquity = &de
	}
	if v := r.DefaultKeyStatistics.HeldPercentInstitutions.Raw; v != nil {
		inst := *v
		f.InstitutionalHolding = &inst
	}
	if f.EPS == nil {
		if v := r.DefaultKeyStatistics.TrailingEps.Raw; v != nil {
			eps := *v
			f.EPS = &eps
		}
	}
}

func (y *Yahoo) recordError(source string) {
	if y.metrics != nil {
		y.metrics.RecordFetchError(source)
	}
}

var _ domrepo.MarketData = (*Yahoo)(nil)
