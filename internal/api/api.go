// Package api serves analysis results over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"SignalScope/internal/logger"
	"SignalScope/internal/metrics"
	"SignalScope/internal/model"
	"SignalScope/internal/recorder"
)

const (
	RequestIDContextKey = "request_id"
	RequestIDHeaderKey  = "X-Request-ID"
	DefaultHistoryLimit = 20
)

// Analyzer produces a report for a symbol.
type Analyzer interface {
	Analyze(ctx context.Context, symbol, timeframe string) (*model.Report, error)
}

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

// Options configures the server.
type Options struct {
	Addr             string
	DefaultTimeframe string
	// RateLimit is requests per second across all clients; 0 disables limiting.
	RateLimit float64
	Burst     int
	Gatherer  prometheus.Gatherer
	Checks    map[string]HealthCheck
}

// Server handles HTTP requests using gin.
type Server struct {
	analyzer Analyzer
	recorder recorder.Recorder
	metrics  *metrics.Metrics
	opts     Options
	srv      *http.Server
}

// NewServer creates a server. A nil recorder serves empty history.
func NewServer(an Analyzer, rec recorder.Recorder, m *metrics.Metrics, opts Options) *Server {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	if m == nil {
		m = metrics.New(nil)
	}
	if opts.DefaultTimeframe == "" {
		opts.DefaultTimeframe = "6mo"
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}
	return &Server{
		analyzer: an,
		recorder: rec,
		metrics:  m,
		opts:     opts,
		srv:      &http.Server{Addr: opts.Addr, ReadHeaderTimeout: 10 * time.Second},
	}
}

// Router configures all routes.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(s.metrics))
	router.Use(gin.Recovery())

	router.GET("/health", s.Health)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.opts.Gatherer, promhttp.HandlerOpts{})))

	limited := router.Group("/")
	if s.opts.RateLimit > 0 {
		limited.Use(rateLimitMiddleware(s.opts.RateLimit, s.opts.Burst))
	}
	limited.GET("/analysis", s.GetAnalysis)
	limited.GET("/history", s.GetHistory)
	return router
}

// Start listens on Addr until Shutdown is called.
func (s *Server) Start() error {
	s.srv.Handler = s.Router()
	logger.Info("http api listening", zap.String("addr", s.opts.Addr))
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
