package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"AerialView/internal/collector"
	"AerialView/internal/config"
	"AerialView/internal/logger"
	"AerialView/internal/model"
	"AerialView/internal/notifier"
)

// Sender delivers a formatted message.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Analyzer is the part of the collector the scheduler drives.
type Analyzer interface {
	Analyze(ctx context.Context, req model.Request) (*model.Report, error)
	AnalyzeBatch(ctx context.Context, reqs []model.Request) []collector.Result
}

const helpText = `Available commands:
• /report SYMBOL - full analysis of one symbol
• /compare A,B,C - side-by-side comparison
• /watchlist - run the scheduled watchlist report now
• /help - this message`

// Scheduler manages the cron tasks and answers chat commands.
type Scheduler struct {
	Cron      *cron.Cron
	Collector Analyzer
	Notifier  Sender
	Watchlist []string
	Params    collector.RequestParams
	Ctx       context.Context
	now       func() time.Time
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col Analyzer, sender Sender, watchlist []string, params collector.RequestParams) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Notifier:  sender,
		Watchlist: watchlist,
		Params:    params,
		Ctx:       ctx,
		now:       time.Now,
	}
}

// ParamsFromConfig returns the request parameters used for scheduled and chat reports.
func ParamsFromConfig(cfg *config.Config) collector.RequestParams {
	return collector.RequestParams{Period: cfg.Analysis.Period, Interval: cfg.Analysis.Interval}
}

// RegisterAll registers the watchlist report task.
func (s *Scheduler) RegisterAll(reportCron string) error {
	if _, err := s.Cron.AddFunc(reportCron, s.watchlistTask); err != nil {
		return fmt.Errorf("register watchlist task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	logger.Info("scheduler started", logger.Strings("watchlist", s.Watchlist))
}

// Stop stops the cron scheduler and waits for running tasks.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	logger.Info("scheduler stopped")
}

// RunWatchlistNow executes the watchlist task immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunWatchlistNow() {
	s.watchlistTask()
}

func (s *Scheduler) watchlistTask() {
	if len(s.Watchlist) == 0 {
		logger.Warn("watchlist is empty, skipping scheduled report")
		return
	}
	logger.Info("running watchlist task", logger.Int("symbols", len(s.Watchlist)))
	msg, err := s.compare(s.Ctx, s.Watchlist)
	if err != nil {
		logger.Error("watchlist task failed", logger.ErrorField(err))
		s.trySend(notifier.FormatError("watchlist report", err))
		return
	}
	s.trySend(msg)
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return helpText
	}
	// Group chats address commands as /report@botname.
	name, _, _ := strings.Cut(strings.ToLower(fields[0]), "@")
	args := strings.Join(fields[1:], ",")

	switch name {
	case "/report":
		symbols := config.SplitSymbols(args)
		if len(symbols) != 1 {
			return "Usage: /report SYMBOL"
		}
		req, err := collector.BuildRequest(symbols[0], s.Params, s.now())
		if err != nil {
			return notifier.FormatError("report", err)
		}
		rep, err := s.Collector.Analyze(ctx, req)
		if err != nil {
			logger.Warn("report command failed", logger.String("symbol", req.Symbol), logger.ErrorField(err))
			return notifier.FormatError(req.Symbol, err)
		}
		return notifier.FormatReport(rep)
	case "/compare":
		symbols := config.SplitSymbols(args)
		if len(symbols) < 2 {
			return "Usage: /compare A,B[,C...]"
		}
		msg, err := s.compare(ctx, symbols)
		if err != nil {
			return notifier.FormatError("compare", err)
		}
		return msg
	case "/watchlist":
		s.watchlistTask()
		return ""
	default:
		return helpText
	}
}

func (s *Scheduler) compare(ctx context.Context, symbols []string) (string, error) {
	now := s.now()
	reqs := make([]model.Request, 0, len(symbols))
	for _, sym := range symbols {
		req, err := collector.BuildRequest(sym, s.Params, now)
		if err != nil {
			return "", err
		}
		reqs = append(reqs, req)
	}
	results := s.Collector.AnalyzeBatch(ctx, reqs)
	return notifier.FormatCompare(results, now), nil
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		logger.Error("send notification failed", logger.ErrorField(err))
	}
}
