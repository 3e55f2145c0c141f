package collector

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	"strings"
	"time"

	"go.uber.org/zap"

	"SignalScope/internal/logger"
	"SignalScope/internal/model"
)

var (
	// ErrUnknownTimeframe is returned for a timeframe outside Timeframes.
	ErrUnknownTimeframe = errors.New("unknown timeframe")
	ErrEmptySymbol      = errors.New("empty symbol")
)

// Timeframes maps a timeframe name to the number of calendar days fetched.
var Timeframes = map[string]int{
	"1d":  1,
	"5d":  5,
	"1mo": 30,
	"3mo": 90,
	"6mo": 180,
	"1y":  365,
}

// MockFetcher generates a reproducible random walk per symbol for
// development and for running without a market-data provider.
type MockFetcher struct {
	// Now anchors the last bar; defaults to time.Now.
	Now func() time.Time
	// Bars, when set, is returned as-is for every symbol.
	Bars []model.Bar
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ context.Context, symbol string, days int) ([]model.Bar, error) {
	if m.Bars != nil {
		return trimTail(m.Bars, days), nil
	}
	now := time.Now
	if m.Now != nil {
		now = m.Now
	}
	return generateMockBars(symbol, days, dayOf(now())), nil
}

func generateMockBars(symbol string, days int, end time.Time) []model.Bar {
	h := fnv.New64a()
	h.Write([]byte(symbol))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	bars := make([]model.Bar, days)
	price := 100 + rng.Float64()*50
	for i := 0; i < days; i++ {
		price = math.Max(1, price+(rng.Float64()-0.5)*10)
		open := math.Max(0.5, price-rng.Float64()*2)
		bars[i] = model.Bar{
			Date:   end.AddDate(0, 0, -(days - 1 - i)),
			Open:   open,
			High:   math.Max(open, price) + rng.Float64()*3,
			Low:    math.Max(0.25, math.Min(open, price)-rng.Float64()*3),
			Close:  price,
			Volume: 1_000_000 + rng.Int63n(5_000_000),
		}
	}
	return bars
}

// FallbackFetcher serves from Primary and falls back to Secondary when the
// primary fails or returns nothing.
type FallbackFetcher struct {
	Primary   Fetcher
	Secondary Fetcher
}

func (f *FallbackFetcher) Name() string {
	return f.Primary.Name() + "+" + f.Secondary.Name()
}

func (f *FallbackFetcher) FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.Bar, error) {
	bars, _, err := f.FetchWithSource(ctx, symbol, days)
	return bars, err
}

// FetchWithSource returns the bars and the name of the fetcher that served them.
func (f *FallbackFetcher) FetchWithSource(ctx context.Context, symbol string, days int) ([]model.Bar, string, error) {
	bars, err := f.Primary.FetchDailyBars(ctx, symbol, days)
	if err == nil && len(bars) > 0 {
		return bars, f.Primary.Name(), nil
	}
	if ctx.Err() != nil {
		return nil, "", ctx.Err()
	}
	logger.Warn("primary fetcher failed, using fallback",
		zap.String("symbol", symbol),
		zap.String("primary", f.Primary.Name()),
		zap.String("fallback", f.Secondary.Name()),
		zap.Error(err))

	bars, err2 := f.Secondary.FetchDailyBars(ctx, symbol, days)
	if err2 != nil {
		return nil, "", fmt.Errorf("primary: %v; fallback: %w", err, err2)
	}
	return bars, f.Secondary.Name(), nil
}

// Collector turns a symbol and timeframe into a bar series.
type Collector struct {
	Fetcher Fetcher
	Now     func() time.Time
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher) *Collector {
	return &Collector{Fetcher: fetcher, Now: time.Now}
}

// Collect fetches the bars covering timeframe for symbol.
func (c *Collector) Collect(ctx context.Context, symbol, timeframe string) (*model.Series, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("collect: %w", ErrEmptySymbol)
	}
	days, ok := Timeframes[timeframe]
	if !ok {
		return nil, fmt.Errorf("collect %s: %w: %q", symbol, ErrUnknownTimeframe, timeframe)
	}

	var (
		bars   []model.Bar
		source = c.Fetcher.Name()
		err    error
	)
	if sf, ok := c.Fetcher.(sourcedFetcher); ok {
		bars, source, err = sf.FetchWithSource(ctx, symbol, days)
	} else {
		bars, err = c.Fetcher.FetchDailyBars(ctx, symbol, days)
	}
	if err != nil {
		return nil, fmt.Errorf("collect %s %s: %w", symbol, timeframe, err)
	}

	logger.Debug("bars collected",
		zap.String("symbol", symbol),
		zap.String("timeframe", timeframe),
		zap.String("source", source),
		zap.Int("bars", len(bars)))

	return &model.Series{
		Symbol:    symbol,
		Timeframe: timeframe,
		Source:    source,
		Bars:      bars,
		FetchedAt: c.Now(),
	}, nil
}

// NewFetcher builds the fetcher for provider, wrapping it with the mock
// fallback when requested.
func NewFetcher(provider, baseURL, apiKey, proxy string, rps float64, timeout time.Duration, mockFallback bool) (Fetcher, error) {
	var f Fetcher
	switch provider {
	case "yahoo":
		f = NewYahooFetcher(baseURL, proxy, rps, timeout)
	case "rest":
		if baseURL == "" {
			return nil, errors.New("rest provider requires base_url")
		}
		f = NewRESTFetcher(baseURL, apiKey, proxy, timeout)
	case "mock":
		return &MockFetcher{}, nil
	default:
		return nil, fmt.Errorf("unknown data provider %q", provider)
	}
	if mockFallback {
		f = &FallbackFetcher{Primary: f, Secondary: &MockFetcher{}}
	}
	return f, nil
}
