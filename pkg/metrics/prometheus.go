package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	analysesTotal *prometheus.CounterVec
	fetchErrors   *prometheus.CounterVec
	lastPrice     *prometheus.GaugeVec
	scores        *prometheus.GaugeVec
	stageDuration *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		analysesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "swingscope_analyses_total",
				Help: "Total number of completed symbol analyses",
			},
			[]string{"symbol", "rating"},
		),
		fetchErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "swingscope_fetch_errors_total",
				Help: "Total number of upstream fetch errors",
			},
			[]string{"source"},
		),
		lastPrice: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "swingscope_last_price",
				Help: "Last observed price for a symbol",
			},
			[]string{"symbol"},
		),
		scores: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "swingscope_score",
				Help: "Most recent component score for a symbol",
			},
			[]string{"symbol", "component"},
		),
		stageDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "swingscope_stage_duration_seconds",
				Help:    "Duration of analysis pipeline stages in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"stage"},
		),
	}
}

// RecordAnalysis records a completed analysis and its rating.
func (r *Recorder) RecordAnalysis(symbol, rating string) {
	r.analysesTotal.WithLabelValues(symbol, rating).Inc()
}

// RecordFetchError records an upstream fetch failure.
func (r *Recorder) RecordFetchError(source string) {
	r.fetchErrors.WithLabelValues(source).Inc()
}

// RecordLastPrice records the last price for a symbol.
func (r *Recorder) RecordLastPrice(symbol string, price float64) {
	r.lastPrice.WithLabelValues(symbol).Set(price)
}

// RecordScore records a component score (technical, news, fundamental, overall).
func (r *Recorder) RecordScore(symbol, component string, score float64) {
	r.scores.WithLabelValues(symbol, component).Set(score)
}

// RecordStageDuration records pipeline stage latency in seconds.
func (r *Recorder) RecordStageDuration(stage string, seconds float64) {
	r.stageDuration.WithLabelValues(stage).Observe(seconds)
}
