// Command analyze prints a one-shot technical analysis of a symbol.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"SignalScope/internal/collector"
	"SignalScope/internal/config"
	"SignalScope/internal/logger"
	"SignalScope/internal/service"
)

func main() {
	var (
		cfgPath   = flag.String("config", "configs/config.yaml", "path to the YAML config")
		symbol    = flag.String("symbol", "", "ticker to analyse (required)")
		timeframe = flag.String("timeframe", "", "1d, 5d, 1mo, 3mo, 6mo or 1y (default from config)")
		format    = flag.String("format", "text", "output format: text, json or csv")
		provider  = flag.String("provider", "", "override data_source.provider (yahoo, rest, mock)")
		out       = flag.String("out", "", "write to this file instead of stdout")
	)
	flag.Parse()
	if *symbol == "" && flag.NArg() > 0 {
		*symbol = flag.Arg(0)
	}
	if *symbol == "" {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()
	if err := run(*cfgPath, *symbol, *timeframe, *format, *provider, *out); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(cfgPath, symbol, timeframe, format, provider, out string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if provider != "" {
		cfg.DataSource.Provider = provider
	}
	// Only warnings reach stderr so the report stays readable.
	if err := logger.Init("warn", cfg.Log.File); err != nil {
		return err
	}
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		return err
	}
	params, err := cfg.AnalysisParams()
	if err != nil {
		return err
	}
	if timeframe == "" {
		timeframe = cfg.Watchlist.Timeframe
	}

	ds := cfg.DataSource
	fetcher, err := collector.NewFetcher(ds.Provider, ds.BaseURL, ds.APIKey, ds.Proxy, ds.RequestsPerSecond, ds.Timeout, ds.MockFallback)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	an := service.NewAnalyzer(collector.NewCollector(fetcher), nil, params, nil)
	report, err := an.Analyze(ctx, symbol, timeframe)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	switch strings.ToLower(format) {
	case "json":
		return writeJSON(w, report)
	case "csv":
		return writeCSV(w, report)
	case "text":
		_, err := fmt.Fprintln(w, renderText(report))
		return err
	default:
		logger.Warn("unknown format", zap.String("format", format))
		return fmt.Errorf("unknown format %q", format)
	}
}
