package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"AerialView/internal/model"
)

// RESTFetcher implements Fetcher against a generic JSON bars API:
//
//	GET {BaseURL}/api/v1/bars/{daily|weekly|monthly|<interval>}?symbol=&start=&end=
//
// authenticated with an optional bearer key.
type RESTFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewRESTFetcher creates a new fetcher with optional proxy support.
func NewRESTFetcher(baseURL, apiKey, proxyURL string, timeout time.Duration) *RESTFetcher {
	return &RESTFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  newHTTPClient(proxyURL, timeout),
	}
}

func (f *RESTFetcher) Name() string { return "rest" }

// restBar is the expected JSON shape from the bars API.
type restBar struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

// errNotServed marks a resolution the provider does not offer.
var errNotServed = errors.New("resolution not served")

func resolution(interval string) string {
	switch interval {
	case "1d":
		return "daily"
	case "1wk":
		return "weekly"
	case "1mo":
		return "monthly"
	default:
		return interval
	}
}

// FetchOHLCV fetches bars for the interval. Weekly and monthly requests fall
// back to aggregating daily bars when the provider does not serve them.
func (f *RESTFetcher) FetchOHLCV(ctx context.Context, symbol string, start, end time.Time, interval string) ([]model.Bar, error) {
	bars, err := f.fetchBars(ctx, symbol, start, end, resolution(interval))
	if err == nil {
		return bars, nil
	}
	var key periodKey
	switch interval {
	case "1wk":
		key = isoWeekKey
	case "1mo":
		key = monthKey
	default:
		return nil, err
	}
	if !errors.Is(err, errNotServed) {
		return nil, err
	}
	daily, dailyErr := f.fetchBars(ctx, symbol, start, end, "daily")
	if dailyErr != nil {
		return nil, fmt.Errorf("%s fetch failed: %v; daily fallback also failed: %w", interval, err, dailyErr)
	}
	return aggregateBars(daily, key), nil
}

func (f *RESTFetcher) fetchBars(ctx context.Context, symbol string, start, end time.Time, res string) ([]model.Bar, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("start", strconv.FormatInt(start.Unix(), 10))
	q.Set("end", strconv.FormatInt(end.Unix(), 10))
	endpoint := fmt.Sprintf("%s/api/v1/bars/%s?%s", f.BaseURL, url.PathEscape(res), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.APIKey)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch bars: %v: %w", err, model.ErrDataUnavailable)
	}
	defer resp.Body.Close()
	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusNotImplemented:
		return nil, fmt.Errorf("fetch %s bars: status %d: %w: %w", res, resp.StatusCode, errNotServed, model.ErrDataUnavailable)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fetch bars: status %d, body: %s: %w",
			resp.StatusCode, truncate(string(body), 200), model.ErrDataUnavailable)
	}
	var raw []restBar
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode bars: %v: %w", err, model.ErrDataUnavailable)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("fetch bars %s: empty response: %w", symbol, model.ErrDataUnavailable)
	}
	bars := make([]model.Bar, len(raw))
	for i, rb := range raw {
		bars[i] = model.Bar{
			Time:   time.Unix(rb.Timestamp, 0).UTC(),
			Open:   rb.Open,
			High:   rb.High,
			Low:    rb.Low,
			Close:  rb.Close,
			Volume: int64(math.Round(rb.Volume)),
		}
	}
	return sortAndDedupe(bars), nil
}

// periodKey buckets a timestamp into an aggregation period.
type periodKey func(t time.Time) int

func isoWeekKey(t time.Time) int {
	year, week := t.ISOWeek()
	return year*100 + week
}

func monthKey(t time.Time) int {
	return t.Year()*100 + int(t.Month())
}

// aggregateBars merges chronological bars sharing a period key. Each merged
// bar is stamped with the first bar's time: open of the first, close of the
// last, extreme high and low, summed volume.
func aggregateBars(bars []model.Bar, key periodKey) []model.Bar {
	if len(bars) == 0 {
		return nil
	}
	var out []model.Bar
	cur := bars[0]
	curKey := key(cur.Time)
	for _, b := range bars[1:] {
		if k := key(b.Time); k != curKey {
			out = append(out, cur)
			cur, curKey = b, k
			continue
		}
		if b.High > cur.High {
			cur.High = b.High
		}
		if b.Low < cur.Low {
			cur.Low = b.Low
		}
		cur.Close = b.Close
		cur.Volume += b.Volume
	}
	return append(out, cur)
}
