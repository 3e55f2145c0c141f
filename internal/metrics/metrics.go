// Package metrics exposes Prometheus instruments for the analysis service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	AnalysesTotal   *prometheus.CounterVec
	AnalysisDur     prometheus.Histogram
	CacheHits       prometheus.Counter
	CacheMisses     prometheus.Counter
	FetchesTotal    *prometheus.CounterVec
	RatingScore     *prometheus.GaugeVec
	RatingChanges   *prometheus.CounterVec
	NotifyErrors    *prometheus.CounterVec
	HTTPRequestsDur *prometheus.HistogramVec
}

// New creates the metrics and registers them with reg. A nil reg leaves
// them unregistered, which tests rely on.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		AnalysesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signalscope_analyses_total",
			Help: "Analysis requests by outcome (ok, cached, error)",
		}, []string{"outcome"}),
		AnalysisDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "signalscope_analysis_duration_seconds",
			Help:    "Time to fetch bars and compute a report",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
		}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "signalscope_cache_hits_total",
			Help: "Reports served from cache",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "signalscope_cache_misses_total",
			Help: "Reports not found in cache",
		}),
		FetchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signalscope_fetches_total",
			Help: "Bar series fetched, by the source that served them",
		}, []string{"source"}),
		RatingScore: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "signalscope_rating_score",
			Help: "Latest technical rating score per symbol (0-100)",
		}, []string{"symbol"}),
		RatingChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signalscope_rating_changes_total",
			Help: "Rating label changes detected by the watchlist scan",
		}, []string{"symbol"}),
		NotifyErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signalscope_notify_errors_total",
			Help: "Failed notification deliveries by channel",
		}, []string{"channel"}),
		HTTPRequestsDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "signalscope_http_request_duration_seconds",
			Help:    "HTTP API latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}

	if reg != nil {
		reg.MustRegister(
			m.AnalysesTotal,
			m.AnalysisDur,
			m.CacheHits,
			m.CacheMisses,
			m.FetchesTotal,
			m.RatingScore,
			m.RatingChanges,
			m.NotifyErrors,
			m.HTTPRequestsDur,
		)
	}
	return m
}
