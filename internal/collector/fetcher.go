package collector

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"SignalScope/internal/model"
)

// Fetcher defines the interface for fetching daily bars.
type Fetcher interface {
	FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.Bar, error)
	Name() string
}

// sourcedFetcher is implemented by fetchers that may delegate, so callers
// can learn which source actually served the bars.
type sourcedFetcher interface {
	FetchWithSource(ctx context.Context, symbol string, days int) ([]model.Bar, string, error)
}

// newHTTPClient builds a client with optional proxy support.
func newHTTPClient(proxyURL string, timeout time.Duration) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{Timeout: timeout, Transport: transport}
}

// trimTail keeps at most n most recent bars.
func trimTail(bars []model.Bar, n int) []model.Bar {
	if n > 0 && len(bars) > n {
		return bars[len(bars)-n:]
	}
	return bars
}
