// Package service runs analyses end to end: cache, market data, engine.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"SignalScope/internal/analysis"
	"SignalScope/internal/cache"
	"SignalScope/internal/collector"
	"SignalScope/internal/logger"
	"SignalScope/internal/metrics"
	"SignalScope/internal/model"
)

// Collector fetches the bar series for a symbol and timeframe.
type Collector interface {
	Collect(ctx context.Context, symbol, timeframe string) (*model.Series, error)
}

// Analyzer produces reports for symbols.
type Analyzer struct {
	collector Collector
	cache     cache.Cache
	params    analysis.Params
	metrics   *metrics.Metrics
	now       func() time.Time
}

// NewAnalyzer creates an Analyzer. A nil cache disables caching and nil
// metrics are replaced by an unregistered set.
func NewAnalyzer(c Collector, rc cache.Cache, p analysis.Params, m *metrics.Metrics) *Analyzer {
	if rc == nil {
		rc = cache.NoopCache{}
	}
	if m == nil {
		m = metrics.New(nil)
	}
	return &Analyzer{collector: c, cache: rc, params: p, metrics: m, now: time.Now}
}

// Params returns the indicator parameters used for every analysis.
func (a *Analyzer) Params() analysis.Params { return a.params }

// Analyze returns the report for symbol over timeframe, serving it from cache
// when a fresh copy exists. Cache errors are logged and never fail the call.
func (a *Analyzer) Analyze(ctx context.Context, symbol, timeframe string) (*model.Report, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	log := logger.Ctx(ctx).With(zap.String("symbol", symbol), zap.String("timeframe", timeframe))
	start := a.now()

	key := cache.Key(symbol, timeframe, a.params)
	cached, ok, err := a.cache.Get(ctx, key)
	if err != nil {
		log.Warn("cache read failed", zap.Error(err))
	}
	if ok {
		a.metrics.CacheHits.Inc()
		a.metrics.AnalysesTotal.WithLabelValues("cached").Inc()
		cached.Cached = true
		return cached, nil
	}
	a.metrics.CacheMisses.Inc()

	series, err := a.collector.Collect(ctx, symbol, timeframe)
	if err != nil {
		a.metrics.AnalysesTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	a.metrics.FetchesTotal.WithLabelValues(series.Source).Inc()

	report, err := analysis.Analyze(series.Bars, a.params)
	if err != nil {
		a.metrics.AnalysesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%s %s: %w", symbol, timeframe, err)
	}
	report.Symbol = series.Symbol
	report.Timeframe = series.Timeframe
	report.Source = series.Source
	report.GeneratedAt = a.now()

	if err := a.cache.Set(ctx, key, report); err != nil {
		log.Warn("cache write failed", zap.Error(err))
	}

	a.metrics.AnalysesTotal.WithLabelValues("ok").Inc()
	a.metrics.AnalysisDur.Observe(a.now().Sub(start).Seconds())
	a.metrics.RatingScore.WithLabelValues(symbol).Set(report.Rating.Score)

	log.Info("analysis complete",
		zap.String("source", report.Source),
		zap.Int("bars", report.Bars),
		zap.String("rating", string(report.Rating.Label)),
		zap.Float64("score", report.Rating.Score))
	return report, nil
}

// IsClientError reports whether err was caused by the request rather than
// by the service or its upstreams.
func IsClientError(err error) bool {
	return errors.Is(err, collector.ErrUnknownTimeframe) || errors.Is(err, collector.ErrEmptySymbol)
}
