package collector

import (
	"context"
	"net/http"
	"net/url"
	"sort"
	"time"

	"AerialView/internal/model"
)

// Fetcher defines the interface for fetching market data.
// Implementations wrap model.ErrDataUnavailable on failure.
type Fetcher interface {
	FetchOHLCV(ctx context.Context, symbol string, start, end time.Time, interval string) ([]model.Bar, error)
	Name() string
}

// newHTTPClient builds the client shared by the HTTP fetchers, with optional proxy support.
func newHTTPClient(proxyURL string, timeout time.Duration) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

// sortAndDedupe orders bars chronologically and keeps the last bar for any
// repeated timestamp. Providers occasionally repeat the live bar.
func sortAndDedupe(bars []model.Bar) []model.Bar {
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	out := bars[:0]
	for _, b := range bars {
		if n := len(out); n > 0 && out[n-1].Time.Equal(b.Time) {
			out[n-1] = b
			continue
		}
		out = append(out, b)
	}
	return out
}
