package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"AerialView/internal/collector"
	"AerialView/internal/model"
)

type fakeSender struct {
	mu       sync.Mutex
	messages []string
	err      error
}

func (f *fakeSender) SendWithRetry(_ context.Context, text string, _ int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, text)
	return f.err
}

// recordingAnalyzer wraps a mock-backed collector and records requested symbols.
type recordingAnalyzer struct {
	*collector.Collector
	mu      sync.Mutex
	symbols []string
}

func (r *recordingAnalyzer) Analyze(ctx context.Context, req model.Request) (*model.Report, error) {
	r.mu.Lock()
	r.symbols = append(r.symbols, req.Symbol)
	r.mu.Unlock()
	return r.Collector.Analyze(ctx, req)
}

func newTestScheduler(fetcher collector.Fetcher, sender *fakeSender, watchlist []string) (*Scheduler, *recordingAnalyzer) {
	an := &recordingAnalyzer{Collector: collector.NewCollector(fetcher, collector.Options{Workers: 2})}
	s := NewScheduler(context.Background(), an, sender, watchlist, collector.RequestParams{Period: "6mo", Interval: "1d"})
	s.now = func() time.Time { return time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC) }
	return s, an
}

func TestHandleCommand_Help(t *testing.T) {
	s, _ := newTestScheduler(&collector.MockFetcher{}, &fakeSender{}, nil)
	for _, cmd := range []string{"", "/help", "/start", "hello"} {
		assert.Equal(t, helpText, s.HandleCommand(context.Background(), cmd), cmd)
	}
}

func TestHandleCommand_Report(t *testing.T) {
	s, an := newTestScheduler(&collector.MockFetcher{Price: 150}, &fakeSender{}, nil)

	reply := s.HandleCommand(context.Background(), "/report@AerialViewBot aapl")
	assert.Contains(t, reply, "<b>AAPL</b>")
	assert.Contains(t, reply, "Outlook:")
	assert.Equal(t, []string{"AAPL"}, an.symbols)

	assert.Equal(t, "Usage: /report SYMBOL", s.HandleCommand(context.Background(), "/report"))
	assert.Equal(t, "Usage: /report SYMBOL", s.HandleCommand(context.Background(), "/report aapl msft"))
}

func TestHandleCommand_ReportFailure(t *testing.T) {
	s, _ := newTestScheduler(&collector.MockFetcher{Err: errors.New("symbol not found")}, &fakeSender{}, nil)
	reply := s.HandleCommand(context.Background(), "/report zzz")
	assert.Contains(t, reply, "❌ ZZZ")
	assert.Contains(t, reply, "symbol not found")
}

func TestHandleCommand_Compare(t *testing.T) {
	s, _ := newTestScheduler(&collector.MockFetcher{Price: 80}, &fakeSender{}, nil)

	reply := s.HandleCommand(context.Background(), "/compare aapl, msft")
	assert.Contains(t, reply, "AAPL")
	assert.Contains(t, reply, "MSFT")
	assert.Contains(t, reply, "<pre>")

	assert.Equal(t, "Usage: /compare A,B[,C...]", s.HandleCommand(context.Background(), "/compare aapl"))
}

func TestHandleCommand_WatchlistSendsReport(t *testing.T) {
	sender := &fakeSender{}
	s, _ := newTestScheduler(&collector.MockFetcher{Price: 100}, sender, []string{"SPY", "QQQ"})

	assert.Empty(t, s.HandleCommand(context.Background(), "/watchlist"))
	require.Len(t, sender.messages, 1)
	assert.Contains(t, sender.messages[0], "Watchlist")
	assert.Contains(t, sender.messages[0], "SPY")
	assert.Contains(t, sender.messages[0], "QQQ")
}

func TestWatchlistTask_EmptyWatchlistSendsNothing(t *testing.T) {
	sender := &fakeSender{}
	s, _ := newTestScheduler(&collector.MockFetcher{}, sender, nil)
	s.RunWatchlistNow()
	assert.Empty(t, sender.messages)
}

func TestWatchlistTask_BadParamsReportsError(t *testing.T) {
	sender := &fakeSender{}
	s, _ := newTestScheduler(&collector.MockFetcher{}, sender, []string{"SPY"})
	s.Params.Interval = "7d"
	s.RunWatchlistNow()
	require.Len(t, sender.messages, 1)
	assert.Contains(t, sender.messages[0], "watchlist report")
}

func TestRegisterAll(t *testing.T) {
	s, _ := newTestScheduler(&collector.MockFetcher{}, &fakeSender{}, nil)
	require.NoError(t, s.RegisterAll("0 30 16 * * 1-5"))
	assert.Len(t, s.Cron.Entries(), 1)
	assert.Error(t, s.RegisterAll("not a schedule"))
}
