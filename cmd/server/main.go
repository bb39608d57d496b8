package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"AerialView/internal/api"
	"AerialView/internal/collector"
	"AerialView/internal/config"
	"AerialView/internal/logger"
	"AerialView/internal/notifier"
	"AerialView/internal/scheduler"
)

func main() {
	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		panic("load config: " + err.Error())
	}
	if err := logger.Init(cfg.App.LogLevel, cfg.App.Environment); err != nil {
		panic("init logger: " + err.Error())
	}
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("config validation failed", logger.ErrorField(err))
	}
	logger.Info("AerialView server starting", logger.String("environment", cfg.App.Environment))

	// Init fetcher
	fetcher, err := collector.NewFetcher(cfg)
	if err != nil {
		logger.Fatal("init fetcher failed", logger.ErrorField(err))
	}
	logger.Info("data source ready", logger.String("source", fetcher.Name()))

	// Init collector
	col := collector.NewCollector(fetcher, collector.OptionsFromConfig(cfg))
	params := scheduler.ParamsFromConfig(cfg)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// HTTP API
	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           api.NewRouter(api.NewAnalysisHandler(col, params)),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      2 * cfg.DataSource.Timeout * time.Duration(cfg.DataSource.MaxRetries+1),
	}
	go func() {
		logger.Info("HTTP server listening", logger.String("addr", cfg.Server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", logger.ErrorField(err))
		}
	}()

	// Telegram reports and commands
	if cfg.TelegramEnabled() {
		tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.DataSource.Proxy)

		sched := scheduler.NewScheduler(ctx, col, tn, cfg.Schedule.Watchlist, params)
		if err := sched.RegisterAll(cfg.Schedule.ReportCron); err != nil {
			logger.Fatal("register cron tasks failed", logger.ErrorField(err))
		}
		sched.Start()
		defer sched.Stop()

		go tn.StartPolling(ctx, sched.HandleCommand)
		logger.Info("telegram polling started")

		// Optional: run immediately on start
		if os.Getenv("RUN_ON_START") == "true" {
			logger.Info("RUN_ON_START enabled, executing watchlist report now")
			go sched.RunWatchlistNow()
		}
	} else {
		logger.Info("telegram not configured, scheduled reports disabled")
	}

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutdown signal received, stopping")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", logger.ErrorField(err))
	}
	logger.Info("AerialView stopped")
}
