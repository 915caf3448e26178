package models

import "time"

// Candle is one daily OHLCV bar.
type Candle struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// Quote is the latest market snapshot for a symbol.
type Quote struct {
	Symbol    string    `json:"symbol"`
	Price     float64   `json:"price"`
	Volume    int64     `json:"volume"`
	Timestamp time.Time `json:"timestamp"`
}

// Fundamentals holds the fundamental ratios used for scoring.
// Fields are pointers because upstream data is frequently missing.
type Fundamentals struct {
	Symbol               string   `json:"symbol"`
	EPS                  *float64 `json:"eps,omitempty"`
	PERatio              *float64 `json:"pe_ratio,omitempty"`
	DebtToEquity         *float64 `json:"debt_to_equity,omitempty"`
	ROE                  *float64 `json:"roe,omitempty"`
	InstitutionalHolding *float64 `json:"institutional_holding,omitempty"`
	MarketCap            *int64   `json:"market_cap,omitempty"`
}

// NewsArticle is a single headline with its scored sentiment.
type NewsArticle struct {
	Title       string    `json:"title"`
	Summary     string    `json:"summary,omitempty"`
	Source      string    `json:"source"`
	URL         string    `json:"url,omitempty"`
	PublishedAt time.Time `json:"published_at"`
	Sentiment   string    `json:"sentiment"`
}

// Sentiment labels assigned to headlines.
const (
	SentimentVeryPositive = "very positive"
	SentimentPositive     = "positive"
	SentimentNeutral      = "neutral"
	SentimentNegative     = "negative"
	SentimentVeryNegative = "very negative"
)

// Trend labels for price direction over the lookback window.
const (
	TrendUp       = "uptrend"
	TrendDown     = "downtrend"
	TrendSideways = "sideways"
)

// Pattern labels detected over the recent window.
const (
	PatternNone       = "no clear pattern"
	PatternAscending  = "ascending channel"
	PatternDescending = "descending channel"
	PatternBreakout   = "potential breakout"
	PatternBreakdown  = "potential breakdown"
)

// TechnicalSnapshot captures the indicator state computed from a candle history.
type TechnicalSnapshot struct {
	Symbol           string    `json:"symbol"`
	CurrentPrice     float64   `json:"current_price"`
	RSI              float64   `json:"rsi"`
	MACD             float64   `json:"macd"`
	MACDSignal       float64   `json:"macd_signal"`
	EMA50            float64   `json:"ema_50"`
	EMA200           float64   `json:"ema_200"`
	LastVolume       int64     `json:"last_volume"`
	AvgVolume5D      float64   `json:"avg_volume_5d"`
	SupportLevels    []float64 `json:"support_levels"`
	ResistanceLevels []float64 `json:"resistance_levels"`
	Trend            string    `json:"trend"`
	Pattern          string    `json:"pattern"`
}

// Rating labels assigned to a recommendation.
const (
	RatingStrongBuy = "Strong Buy"
	RatingBuy       = "Buy"
	RatingWait      = "Wait & Watch"
	RatingAvoid     = "Avoid"
)

// ScoreCard holds the component scores feeding the overall rating.
type ScoreCard struct {
	Technical   float64 `json:"technical"`
	News        float64 `json:"news"`
	Fundamental float64 `json:"fundamental"`
	Overall     float64 `json:"overall"`
}

// Recommendation is the final trade call for a symbol.
type Recommendation struct {
	Rating              string  `json:"rating"`
	EntryPrice          float64 `json:"entry_price"`
	Target              float64 `json:"target"`
	StopLoss            float64 `json:"stop_loss"`
	RiskReward          float64 `json:"risk_reward"`
	StrongestSupport    float64 `json:"strongest_support,omitempty"`
	StrongestResistance float64 `json:"strongest_resistance,omitempty"`
	Reason              string  `json:"reason"`
}

// SectorMetric compares one metric of the stock against its sector peers.
type SectorMetric struct {
	Stock        float64 `json:"stock"`
	SectorMedian float64 `json:"sector_median"`
	SectorMean   float64 `json:"sector_mean"`
	SectorMin    float64 `json:"sector_min"`
	SectorMax    float64 `json:"sector_max"`
	Percentile   float64 `json:"percentile"`
	Assessment   string  `json:"assessment"`
}

// SectorComparison summarizes how the stock stacks up against its peers.
type SectorComparison struct {
	Sector   string                  `json:"sector"`
	Peers    []string                `json:"peers"`
	Metrics  map[string]SectorMetric `json:"metrics"`
	Concerns []string                `json:"concerns"`
}

// Report is the full analysis output for one symbol.
type Report struct {
	Symbol           string             `json:"symbol"`
	GeneratedAt      time.Time          `json:"generated_at"`
	Quote            *Quote             `json:"quote,omitempty"`
	Candles          []Candle           `json:"candles,omitempty"`
	Technical        *TechnicalSnapshot `json:"technical,omitempty"`
	Fundamentals     *Fundamentals      `json:"fundamentals,omitempty"`
	News             []NewsArticle      `json:"news,omitempty"`
	Sector           *SectorComparison  `json:"sector,omitempty"`
	Scores           ScoreCard          `json:"scores"`
	Recommendation   Recommendation     `json:"recommendation"`
	Errors           map[string]string  `json:"errors,omitempty"`
}

// SymbolMatch is a search hit from the symbol index.
type SymbolMatch struct {
	Symbol string  `json:"symbol"`
	Name   string  `json:"name"`
	Sector string  `json:"sector,omitempty"`
	Score  float64 `json:"score"`
}

// BacktestTrade is one simulated trade during a backtest run.
type BacktestTrade struct {
	Symbol    string    `json:"symbol"`
	EntryDate time.Time `json:"entry_date"`
	ExitDate  time.Time `json:"exit_date"`
	Entry     float64   `json:"entry"`
	Exit      float64   `json:"exit"`
	Target    float64   `json:"target"`
	StopLoss  float64   `json:"stop_loss"`
	Rating    string    `json:"rating"`
	Outcome   string    `json:"outcome"`
	ReturnPct float64   `json:"return_pct"`
}

// BacktestResult summarizes a backtest run for one symbol.
type BacktestResult struct {
	Symbol      string          `json:"symbol"`
	From        time.Time       `json:"from"`
	To          time.Time       `json:"to"`
	Trades      []BacktestTrade `json:"trades"`
	WinRate     float64         `json:"win_rate"`
	AvgReturn   float64         `json:"avg_return"`
	TotalReturn float64         `json:"total_return"`
	MaxDrawdown float64         `json:"max_drawdown"`
	EquityCurve []float64       `json:"equity_curve"`
}
