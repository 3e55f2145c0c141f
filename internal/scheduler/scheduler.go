// Package scheduler runs the periodic watchlist scan and answers bot commands.
package scheduler

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"SignalScope/internal/collector"
	"SignalScope/internal/logger"
	"SignalScope/internal/metrics"
	"SignalScope/internal/model"
	"SignalScope/internal/notifier"
	"SignalScope/internal/recorder"
	"SignalScope/internal/watch"
)

// scanParallelism bounds concurrent analyses during a scan.
const scanParallelism = 4

// historyLimit is the number of runs shown by /history.
const historyLimit = 10

// Analyzer produces a report for a symbol.
type Analyzer interface {
	Analyze(ctx context.Context, symbol, timeframe string) (*model.Report, error)
}

// Scheduler manages the cron scan and command handling.
type Scheduler struct {
	Cron      *cron.Cron
	Analyzer  Analyzer
	Recorder  recorder.Recorder
	Watch     *watch.Manager
	Notifier  notifier.Notifier
	Metrics   *metrics.Metrics
	Symbols   []string
	Timeframe string
	Ctx       context.Context

	scanMu sync.Mutex
}

// NewScheduler creates a new Scheduler. A nil notifier or recorder disables
// that side effect.
func NewScheduler(ctx context.Context, an Analyzer, rec recorder.Recorder, wm *watch.Manager, n notifier.Notifier, m *metrics.Metrics, symbols []string, timeframe string) *Scheduler {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	if n == nil {
		n = notifier.Multi{}
	}
	if m == nil {
		m = metrics.New(nil)
	}
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Analyzer:  an,
		Recorder:  rec,
		Watch:     wm,
		Notifier:  n,
		Metrics:   m,
		Symbols:   symbols,
		Timeframe: timeframe,
		Ctx:       ctx,
	}
}

// Register registers the watchlist scan.
func (s *Scheduler) Register(scanCron string) error {
	if _, err := s.Cron.AddFunc(scanCron, func() { s.RunScan() }); err != nil {
		return fmt.Errorf("register scan task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	logger.Info("scheduler started", zap.Int("symbols", len(s.Symbols)), zap.String("timeframe", s.Timeframe))
}

// Stop stops the cron scheduler and waits for a running scan to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	logger.Info("scheduler stopped")
}

// ScanResult summarizes one watchlist scan.
type ScanResult struct {
	Analyzed int
	Failed   int
	Changes  []watch.Change
}

// RunScan analyses every watched symbol, records the runs, updates the
// watch state and notifies on rating changes. Overlapping scans are skipped.
func (s *Scheduler) RunScan() ScanResult {
	if !s.scanMu.TryLock() {
		logger.Warn("scan already running, skipping")
		return ScanResult{}
	}
	defer s.scanMu.Unlock()

	start := time.Now()
	logger.Info("running watchlist scan", zap.Int("symbols", len(s.Symbols)))

	var (
		mu  sync.Mutex
		res ScanResult
	)
	g, ctx := errgroup.WithContext(s.Ctx)
	g.SetLimit(scanParallelism)
	for _, sym := range s.Symbols {
		g.Go(func() error {
			change, changed, err := s.scanSymbol(ctx, sym)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				res.Failed++
				return nil
			}
			res.Analyzed++
			if changed {
				res.Changes = append(res.Changes, change)
			}
			return nil
		})
	}
	_ = g.Wait()

	for _, c := range res.Changes {
		s.Metrics.RatingChanges.WithLabelValues(c.Symbol).Inc()
		s.trySend(notifier.FormatChange(c))
	}
	if s.Watch != nil {
		s.Watch.MarkScan(time.Now())
	}

	logger.Info("watchlist scan finished",
		zap.Int("analyzed", res.Analyzed),
		zap.Int("failed", res.Failed),
		zap.Int("changes", len(res.Changes)),
		zap.Duration("took", time.Since(start)))
	return res
}

func (s *Scheduler) scanSymbol(ctx context.Context, symbol string) (watch.Change, bool, error) {
	report, err := s.Analyzer.Analyze(ctx, symbol, s.Timeframe)
	if err != nil {
		logger.Error("scan analyze failed", zap.String("symbol", symbol), zap.Error(err))
		return watch.Change{}, false, err
	}
	// A cached report was already recorded when it was computed.
	if !report.Cached {
		if _, err := s.Recorder.Record(ctx, report); err != nil {
			logger.Error("record analysis failed", zap.String("symbol", symbol), zap.Error(err))
		}
	}
	if s.Watch == nil {
		return watch.Change{}, false, nil
	}
	change, changed := s.Watch.Update(report)
	return change, changed, nil
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return notifier.HelpText
	}
	// Commands may be addressed as /cmd@BotName in group chats.
	name, _, _ := strings.Cut(fields[0], "@")

	switch strings.ToLower(name) {
	case "/analyze":
		if len(fields) < 2 {
			return "Usage: /analyze SYMBOL [TIMEFRAME]"
		}
		tf := s.Timeframe
		if len(fields) > 2 {
			tf = fields[2]
			if _, ok := collector.Timeframes[tf]; !ok {
				return fmt.Sprintf("Unknown timeframe %q. Use one of: %s", tf, strings.Join(timeframeNames(), ", "))
			}
		}
		report, err := s.Analyzer.Analyze(ctx, fields[1], tf)
		if err != nil {
			return notifier.FormatError("Analysis of "+strings.ToUpper(fields[1]), err)
		}
		return notifier.FormatReport(report)
	case "/watchlist":
		var state model.WatchState
		if s.Watch != nil {
			state = s.Watch.Snapshot()
		}
		return notifier.FormatWatchlist(s.Symbols, state)
	case "/history":
		if len(fields) < 2 {
			return "Usage: /history SYMBOL"
		}
		runs, err := s.Recorder.History(ctx, fields[1], historyLimit)
		if err != nil {
			return notifier.FormatError("History lookup", err)
		}
		return notifier.FormatHistory(fields[1], runs)
	default:
		return notifier.HelpText
	}
}

// timeframeNames lists the known timeframes, shortest first.
func timeframeNames() []string {
	names := make([]string, 0, len(collector.Timeframes))
	for k := range collector.Timeframes {
		names = append(names, k)
	}
	sort.Slice(names, func(i, j int) bool {
		return collector.Timeframes[names[i]] < collector.Timeframes[names[j]]
	})
	return names
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.Send(s.Ctx, text); err != nil {
		s.Metrics.NotifyErrors.WithLabelValues(s.Notifier.Name()).Inc()
		logger.Error("send notification failed", zap.Error(err))
	}
}
