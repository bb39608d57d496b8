package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"ENVIRONMENT", "LOG_LEVEL", "DATA_PROVIDER", "DATA_BASE_URL", "DATA_API_KEY", "HTTPS_PROXY",
	"RISK_FREE_RATE", "ANALYSIS_WORKERS", "SERVER_ADDR", "TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID",
	"CRON_REPORT", "WATCHLIST",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "production", cfg.App.Environment)
	assert.Equal(t, "yahoo", cfg.DataSource.Provider)
	assert.Equal(t, 30*time.Second, cfg.DataSource.Timeout)
	assert.Equal(t, 2, cfg.DataSource.MaxRetries)
	assert.Equal(t, "1y", cfg.Analysis.Period)
	assert.Equal(t, "1d", cfg.Analysis.Interval)
	assert.Equal(t, 0.02, cfg.Analysis.RiskFreeRate)
	assert.Equal(t, 4, cfg.Analysis.Workers)
	assert.Equal(t, []int{20, 50, 200}, cfg.Analysis.Indicators.SMAWindows)
	assert.Equal(t, 14, cfg.Analysis.Indicators.RSIWindow)
	assert.Equal(t, 70.0, cfg.Analysis.Thresholds.RSIOverbought)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.False(t, cfg.TelegramEnabled())
}

func TestLoad_YAML(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("testdata/config.yaml")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "rest", cfg.DataSource.Provider)
	assert.Equal(t, "http://bars.internal:9000", cfg.DataSource.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.DataSource.Timeout)
	assert.Equal(t, 4, cfg.DataSource.MaxRetries)
	assert.Equal(t, "1wk", cfg.Analysis.Interval)
	assert.Equal(t, 0.0, cfg.Analysis.RiskFreeRate, "explicit zero rate is kept")
	assert.Equal(t, 8, cfg.Analysis.Workers)
	assert.Equal(t, []int{10, 30}, cfg.Analysis.Indicators.SMAWindows)
	assert.Equal(t, "wilder", cfg.Analysis.Indicators.RSISmoothing)
	assert.Equal(t, 26, cfg.Analysis.Indicators.MACD.Slow, "unset sections take defaults")
	assert.Equal(t, 75.0, cfg.Analysis.Thresholds.RSIOverbought)
	assert.Equal(t, 80.0, cfg.Analysis.Thresholds.StochOverbought)
	assert.Equal(t, []string{"AAPL", "MSFT"}, cfg.Schedule.Watchlist)
	assert.Equal(t, ":9090", cfg.Server.Addr)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATA_PROVIDER", "mock")
	t.Setenv("RISK_FREE_RATE", "0.05")
	t.Setenv("ANALYSIS_WORKERS", "2")
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("TELEGRAM_CHAT_ID", "42")
	t.Setenv("WATCHLIST", " spy, qqq ,,")

	cfg, err := Load("testdata/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, "mock", cfg.DataSource.Provider)
	assert.Equal(t, 0.05, cfg.Analysis.RiskFreeRate)
	assert.Equal(t, 2, cfg.Analysis.Workers)
	assert.True(t, cfg.TelegramEnabled())
	assert.Equal(t, []string{"SPY", "QQQ"}, cfg.Schedule.Watchlist)
}

func TestLoad_TrendWindowAddedToSMAWindows(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("testdata/config.yaml")
	require.NoError(t, err)
	assert.Contains(t, cfg.Analysis.Indicators.SMAWindows, cfg.Analysis.Thresholds.TrendWindow)

	path := filepath.Join(t.TempDir(), "c.yaml")
	require.NoError(t, os.WriteFile(path, []byte("analysis:\n  thresholds:\n    trend_window: 15\n"), 0o600))
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, []int{20, 50, 200, 15}, cfg.Analysis.Indicators.SMAWindows)
}

func TestLoad_ZeroRetriesKept(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "c.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_source:\n  max_retries: 0\n"), 0o600))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.DataSource.MaxRetries)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_PartialBollingerSectionKeepsDefaultWidth(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "c.yaml")
	require.NoError(t, os.WriteFile(path, []byte("analysis:\n  indicators:\n    bollinger:\n      window: 30\n"), 0o600))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Analysis.Indicators.Bollinger.Window)
	assert.Equal(t, 2.0, cfg.Analysis.Indicators.Bollinger.StdDev)
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("app: [unclosed"), 0o600))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown provider", func(c *Config) { c.DataSource.Provider = "bloomberg" }},
		{"rest without base url", func(c *Config) { c.DataSource.Provider = "rest"; c.DataSource.BaseURL = "" }},
		{"negative retries", func(c *Config) { c.DataSource.MaxRetries = -1 }},
		{"no workers", func(c *Config) { c.Analysis.Workers = 0 }},
		{"bad indicator window", func(c *Config) { c.Analysis.Indicators.RSIWindow = -3 }},
		{"inverted rsi thresholds", func(c *Config) { c.Analysis.Thresholds.RSIOversold = 80 }},
		{"inverted stochastic thresholds", func(c *Config) { c.Analysis.Thresholds.StochOversold = 90 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
			require.NoError(t, err)
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSplitSymbols(t *testing.T) {
	assert.Equal(t, []string{"AAPL", "BRK-B"}, SplitSymbols(" aapl ,brk-b,"))
	assert.Empty(t, SplitSymbols(""))
}
