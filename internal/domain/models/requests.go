package models

// AnalyzeRequest is the payload for POST /api/analyze.
type AnalyzeRequest struct {
	Symbols     []string `json:"symbols" validate:"required,min=1,max=25,dive,min=1,max=20"`
	WithSector  bool     `json:"with_sector" default:"true"`
	WithNews    bool     `json:"with_news" default:"true"`
	HistoryDays int      `json:"history_days" default:"365" validate:"gte=60,lte=1825"`
	Async       bool     `json:"async"`
	Refresh     bool     `json:"refresh"`
}

// BacktestRequest is the payload for POST /api/backtest.
type BacktestRequest struct {
	Symbol       string `json:"symbol" validate:"required,min=1,max=20"`
	LookbackDays int    `json:"lookback_days" default:"60" validate:"gte=30,lte=730"`
	HoldDays     int    `json:"hold_days" default:"5" validate:"gte=1,lte=30"`
}

// SearchQuery holds query parameters for GET /api/symbols/search.
type SearchQuery struct {
	Q     string `query:"q" validate:"required,min=1"`
	Limit int    `query:"limit"`
}
