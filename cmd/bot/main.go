package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"SignalScope/internal/api"
	"SignalScope/internal/cache"
	"SignalScope/internal/collector"
	"SignalScope/internal/config"
	"SignalScope/internal/logger"
	"SignalScope/internal/metrics"
	"SignalScope/internal/notifier"
	"SignalScope/internal/recorder"
	"SignalScope/internal/scheduler"
	"SignalScope/internal/service"
	"SignalScope/internal/watch"
)

func main() {
	cfgPath := flag.String("config", "configs/config.yaml", "path to the YAML config")
	runOnStart := flag.Bool("run-on-start", os.Getenv("RUN_ON_START") == "true", "scan the watchlist immediately")
	flag.Parse()
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		*cfgPath = v
	}

	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	// Console logging until the configured level and file are known.
	if err := logger.Init("info", ""); err != nil {
		panic(err)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.File); err != nil {
		logger.Fatal("init logger", zap.Error(err))
	}
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("config validation", zap.Error(err))
	}
	params, err := cfg.AnalysisParams()
	if err != nil {
		logger.Fatal("analysis params", zap.Error(err))
	}
	logger.Info("SignalScope starting", zap.String("config", *cfgPath))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	ds := cfg.DataSource
	fetcher, err := collector.NewFetcher(ds.Provider, ds.BaseURL, ds.APIKey, ds.Proxy, ds.RequestsPerSecond, ds.Timeout, ds.MockFallback)
	if err != nil {
		logger.Fatal("init fetcher", zap.Error(err))
	}
	logger.Info("data source ready", zap.String("fetcher", fetcher.Name()))
	col := collector.NewCollector(fetcher)

	checks := map[string]api.HealthCheck{}

	var rc cache.Cache = cache.NoopCache{}
	if cfg.Cache.RedisAddr != "" {
		redisCache, err := cache.NewRedisCache(cache.Config{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
			TTL:      cfg.Cache.TTL,
		})
		if err != nil {
			logger.Warn("redis unavailable, caching disabled", zap.Error(err))
		} else {
			rc = redisCache
			checks["redis"] = func(ctx context.Context) error { return redisCache.Client().Ping(ctx).Err() }
			logger.Info("redis cache enabled", zap.String("addr", cfg.Cache.RedisAddr), zap.Duration("ttl", cfg.Cache.TTL))
		}
	}
	defer rc.Close()

	var rec recorder.Recorder = recorder.NewNoopRecorder()
	if path := cfg.Database.SQLitePath; path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			logger.Warn("create database directory", zap.Error(err))
		}
		sr, err := recorder.NewSQLiteRecorder(path)
		if err != nil {
			logger.Warn("init sqlite recorder failed, using noop", zap.Error(err))
		} else {
			rec = sr
			checks["sqlite"] = sr.Ping
		}
	}
	defer rec.Close()

	wm, err := watch.NewManager(cfg.StateFile)
	if err != nil {
		logger.Fatal("load watch state", zap.String("path", cfg.StateFile), zap.Error(err))
	}

	var (
		channels notifier.Multi
		tg       *notifier.TelegramNotifier
	)
	if cfg.TelegramEnabled() {
		tg = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, ds.Proxy)
		channels = append(channels, tg.Retrying(3))
	}
	if cfg.EmailEnabled() {
		e := cfg.Email
		channels = append(channels, notifier.NewEmailNotifier(e.SMTPServer, e.SMTPPort, e.Username, e.Password, e.From, e.To))
	}
	logger.Info("notification channels", zap.Int("count", len(channels)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	analyzer := service.NewAnalyzer(col, rc, params, m)

	sched := scheduler.NewScheduler(ctx, analyzer, rec, wm, channels, m, cfg.Watchlist.Symbols, cfg.Watchlist.Timeframe)
	if err := sched.Register(cfg.Schedule.ScanCron); err != nil {
		logger.Fatal("register cron task", zap.Error(err))
	}
	sched.Start()

	if tg != nil {
		go tg.StartPolling(ctx, sched.HandleCommand)
		logger.Info("telegram polling started")
	}
	if *runOnStart {
		logger.Info("run-on-start enabled, scanning watchlist now")
		go sched.RunScan()
	}

	srv := api.NewServer(analyzer, rec, m, api.Options{
		Addr:             cfg.API.Addr,
		DefaultTimeframe: cfg.Watchlist.Timeframe,
		RateLimit:        cfg.API.RateLimit,
		Burst:            cfg.API.Burst,
		Gatherer:         reg,
		Checks:           checks,
	})
	go func() {
		if err := srv.Start(); err != nil {
			logger.Error("http api stopped", zap.Error(err))
			cancel()
		}
	}()

	logger.Info("SignalScope is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		logger.Info("shutdown signal received, stopping")
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	cancel()
	sched.Stop()
	logger.Info("SignalScope stopped")
}
