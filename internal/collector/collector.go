package collector

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"AerialView/internal/calculator"
	"AerialView/internal/config"
	"AerialView/internal/logger"
	"AerialView/internal/metrics"
	"AerialView/internal/model"
	"AerialView/internal/risk"
	"AerialView/internal/strategy"
)

// maxMockBars caps generated series; longer ranges keep their most recent bars.
const maxMockBars = 5000

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price float64
	Bars  []model.Bar // returned as-is when set
	Err   error       // returned instead of data when set
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchOHLCV(ctx context.Context, _ string, start, end time.Time, interval string) ([]model.Bar, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Bars != nil {
		return m.Bars, nil
	}
	step := intervalStep(interval)
	count := int(end.Sub(start) / step)
	if count < 1 {
		count = 1
	}
	if count > maxMockBars {
		start = start.Add(time.Duration(count-maxMockBars) * step)
		count = maxMockBars
	}
	return generateMockBars(m.Price, start, step, count), nil
}

func intervalStep(interval string) time.Duration {
	switch interval {
	case "1m":
		return time.Minute
	case "5m":
		return 5 * time.Minute
	case "15m":
		return 15 * time.Minute
	case "30m":
		return 30 * time.Minute
	case "1h":
		return time.Hour
	case "1wk":
		return 7 * 24 * time.Hour
	case "1mo":
		return 30 * 24 * time.Hour
	default:
		return 24 * time.Hour
	}
}

// generateMockBars produces a gently oscillating uptrend around basePrice.
func generateMockBars(basePrice float64, start time.Time, step time.Duration, count int) []model.Bar {
	if basePrice <= 0 {
		basePrice = 100
	}
	bars := make([]model.Bar, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001 + 0.02*math.Sin(float64(i)/5))
		bars[i] = model.Bar{
			Time:   start.Add(time.Duration(i) * step),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000 + int64(i%7)*50000,
		}
	}
	return bars
}

// NewFetcher builds the data source selected by the configuration.
func NewFetcher(cfg *config.Config) (Fetcher, error) {
	ds := cfg.DataSource
	switch ds.Provider {
	case "yahoo":
		return NewYahooFetcher(ds.Proxy, ds.Timeout), nil
	case "rest":
		return NewRESTFetcher(ds.BaseURL, ds.APIKey, ds.Proxy, ds.Timeout), nil
	case "mock":
		return &MockFetcher{Price: 100}, nil
	default:
		return nil, fmt.Errorf("unknown data provider %q", ds.Provider)
	}
}

// Options tunes the analysis pipeline.
type Options struct {
	Indicators   calculator.Config
	Thresholds   strategy.Thresholds
	RiskFreeRate float64
	MaxRetries   int
	Backoff      time.Duration // first retry delay, doubled per attempt
	Workers      int
}

// OptionsFromConfig maps the application config onto pipeline options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Indicators:   cfg.Analysis.Indicators,
		Thresholds:   cfg.Analysis.Thresholds,
		RiskFreeRate: cfg.Analysis.RiskFreeRate,
		MaxRetries:   cfg.DataSource.MaxRetries,
		Backoff:      time.Second,
		Workers:      cfg.Analysis.Workers,
	}
}

// Collector orchestrates data fetching, validation and analysis.
type Collector struct {
	Fetcher Fetcher
	opts    Options
	now     func() time.Time
}

// NewCollector creates a new Collector. Zero options fall back to defaults.
func NewCollector(fetcher Fetcher, opts Options) *Collector {
	opts.Indicators.ApplyDefaults()
	opts.Thresholds.ApplyDefaults()
	if !slices.Contains(opts.Indicators.SMAWindows, opts.Thresholds.TrendWindow) {
		opts.Indicators.SMAWindows = append(slices.Clone(opts.Indicators.SMAWindows), opts.Thresholds.TrendWindow)
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.Backoff <= 0 {
		opts.Backoff = time.Second
	}
	return &Collector{Fetcher: fetcher, opts: opts, now: time.Now}
}

// Options returns the effective pipeline options.
func (c *Collector) Options() Options { return c.opts }

// Fetch downloads and validates the bars for req, retrying transient
// failures with exponential backoff.
func (c *Collector) Fetch(ctx context.Context, req model.Request) (*model.Series, error) {
	bars, err := c.fetchWithRetry(ctx, req)
	if err != nil {
		return nil, err
	}
	series := &model.Series{Symbol: req.Symbol, Interval: req.Interval, Bars: bars}
	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("validate %s: %w", req.Symbol, err)
	}
	return series, nil
}

func (c *Collector) fetchWithRetry(ctx context.Context, req model.Request) ([]model.Bar, error) {
	source := c.Fetcher.Name()
	var lastErr error
	for i := 0; i <= c.opts.MaxRetries; i++ {
		started := time.Now()
		bars, err := c.Fetcher.FetchOHLCV(ctx, req.Symbol, req.Start, req.End, req.Interval)
		metrics.FetchDuration.WithLabelValues(source).Observe(time.Since(started).Seconds())
		if err == nil {
			metrics.FetchTotal.WithLabelValues(source, "success").Inc()
			return bars, nil
		}
		metrics.FetchTotal.WithLabelValues(source, "error").Inc()
		lastErr = err
		if !errors.Is(err, model.ErrDataUnavailable) || i == c.opts.MaxRetries {
			break
		}
		backoff := c.opts.Backoff * time.Duration(1<<uint(i))
		logger.Warn("fetch failed, retrying",
			logger.String("symbol", req.Symbol),
			logger.String("source", source),
			logger.Int("attempt", i+1),
			logger.Duration("backoff", backoff),
			logger.ErrorField(err))
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
	return nil, fmt.Errorf("fetch %s from %s: %w", req.Symbol, source, lastErr)
}

// Analyze fetches req and builds the full report. Risk metrics that lack
// history are reported as unavailable rather than failing the report.
func (c *Collector) Analyze(ctx context.Context, req model.Request) (*model.Report, error) {
	series, err := c.Fetch(ctx, req)
	if err != nil {
		metrics.AnalysisTotal.WithLabelValues("fetch_error").Inc()
		return nil, err
	}
	return c.AnalyzeSeries(series)
}

// AnalyzeSeries runs indicators, risk and signals over an already validated series.
func (c *Collector) AnalyzeSeries(series *model.Series) (*model.Report, error) {
	started := time.Now()
	rep, err := c.analyzeSeries(series)
	metrics.AnalysisDuration.Observe(time.Since(started).Seconds())
	if err != nil {
		metrics.AnalysisTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.AnalysisTotal.WithLabelValues("success").Inc()
	logger.Debug("analysis complete",
		logger.String("symbol", series.Symbol),
		logger.Int("bars", series.Len()),
		logger.String("outlook", string(rep.Outlook)),
		logger.Duration("elapsed", time.Since(started)))
	return rep, nil
}

func (c *Collector) analyzeSeries(series *model.Series) (*model.Report, error) {
	set, err := calculator.ComputeIndicators(series, c.opts.Indicators)
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", series.Symbol, err)
	}
	summary, err := calculator.Summarize(series)
	if err != nil {
		return nil, fmt.Errorf("summarize %s: %w", series.Symbol, err)
	}

	closes := series.Closes()
	rep := &model.Report{
		ID:          uuid.NewString(),
		Symbol:      series.Symbol,
		Interval:    series.Interval,
		Start:       series.Bars[0].Time,
		End:         series.Bars[series.Len()-1].Time,
		Bars:        series.Len(),
		Indicators:  set,
		Series:      series,
		Summary:     summary,
		GeneratedAt: c.now().UTC(),
	}

	rm, err := risk.Compute(closes, c.opts.RiskFreeRate)
	switch {
	case err == nil:
		rep.Risk = &rm
	case errors.Is(err, model.ErrInsufficientHistory), errors.Is(err, model.ErrInvalidSeries):
		rep.RiskError = err.Error()
	default:
		return nil, fmt.Errorf("risk %s: %w", series.Symbol, err)
	}

	rep.Signals = strategy.Classify(set, closes, c.opts.Indicators.RSIWindow, c.opts.Thresholds)
	rep.Outlook = rep.Signals.Outlook()
	return rep, nil
}

// Result is one entry of a batch analysis.
type Result struct {
	Symbol string
	Report *model.Report
	Err    error
}

// AnalyzeBatch analyzes every request on a bounded worker pool. Results are
// returned in request order; each carries its own error. Requests not yet
// started when ctx is cancelled fail with the context error.
func (c *Collector) AnalyzeBatch(ctx context.Context, reqs []model.Request) []Result {
	results := make([]Result, len(reqs))
	if len(reqs) == 0 {
		return results
	}
	workers := min(c.opts.Workers, len(reqs))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				rep, err := c.Analyze(ctx, reqs[i])
				results[i] = Result{Symbol: reqs[i].Symbol, Report: rep, Err: err}
			}
		}()
	}

feed:
	for i := range reqs {
		select {
		case jobs <- i:
		case <-ctx.Done():
			for j := i; j < len(reqs); j++ {
				results[j] = Result{Symbol: reqs[j].Symbol, Err: ctx.Err()}
			}
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	logger.Info("batch analysis finished",
		logger.Int("symbols", len(reqs)),
		logger.Int("failed", failed),
		logger.Int("workers", workers))
	return results
}
