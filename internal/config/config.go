package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"AerialView/internal/calculator"
	"AerialView/internal/risk"
	"AerialView/internal/strategy"
)

// Config holds all application configuration.
type Config struct {
	App struct {
		Environment string `yaml:"environment"`
		LogLevel    string `yaml:"log_level"`
	} `yaml:"app"`
	DataSource struct {
		Provider   string        `yaml:"provider"` // "yahoo", "rest" or "mock"
		BaseURL    string        `yaml:"base_url"`
		APIKey     string        `yaml:"api_key"`
		Proxy      string        `yaml:"proxy"`
		Timeout    time.Duration `yaml:"timeout"`
		MaxRetries int           `yaml:"max_retries"`
	} `yaml:"data_source"`
	Analysis struct {
		Period       string              `yaml:"period"`
		Interval     string              `yaml:"interval"`
		RiskFreeRate float64             `yaml:"risk_free_rate"`
		Workers      int                 `yaml:"workers"`
		Indicators   calculator.Config   `yaml:"indicators"`
		Thresholds   strategy.Thresholds `yaml:"thresholds"`
	} `yaml:"analysis"`
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		ReportCron string   `yaml:"report_cron"`
		Watchlist  []string `yaml:"watchlist"`
	} `yaml:"schedule"`
}

// Load reads config from a YAML file, loads .env if present, then applies
// environment variable overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	// Sentinels distinguish an explicit 0 from unset.
	cfg.Analysis.RiskFreeRate = -1
	cfg.DataSource.MaxRetries = -1

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("ENVIRONMENT"); v != "" {
		cfg.App.Environment = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.App.LogLevel = v
	}
	if v := os.Getenv("DATA_PROVIDER"); v != "" {
		cfg.DataSource.Provider = v
	}
	if v := os.Getenv("DATA_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("DATA_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.DataSource.Proxy = v
	}
	if v := os.Getenv("RISK_FREE_RATE"); v != "" {
		if rate, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Analysis.RiskFreeRate = rate
		}
	}
	if v := os.Getenv("ANALYSIS_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Analysis.Workers = n
		}
	}
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("CRON_REPORT"); v != "" {
		cfg.Schedule.ReportCron = v
	}
	if v := os.Getenv("WATCHLIST"); v != "" {
		cfg.Schedule.Watchlist = SplitSymbols(v)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.App.Environment == "" {
		c.App.Environment = "production"
	}
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.DataSource.Provider == "" {
		c.DataSource.Provider = "yahoo"
		if c.DataSource.BaseURL != "" {
			c.DataSource.Provider = "rest"
		}
	}
	if c.DataSource.Timeout == 0 {
		c.DataSource.Timeout = 30 * time.Second
	}
	if c.DataSource.MaxRetries < 0 {
		c.DataSource.MaxRetries = 2
	}
	if c.Analysis.Period == "" {
		c.Analysis.Period = "1y"
	}
	if c.Analysis.Interval == "" {
		c.Analysis.Interval = "1d"
	}
	if c.Analysis.RiskFreeRate < 0 {
		c.Analysis.RiskFreeRate = risk.DefaultRiskFreeRate
	}
	if c.Analysis.Workers == 0 {
		c.Analysis.Workers = 4
	}
	c.Analysis.Indicators.ApplyDefaults()
	c.Analysis.Thresholds.ApplyDefaults()
	// The trend signal reads an SMA series, so make sure it is computed.
	if !slices.Contains(c.Analysis.Indicators.SMAWindows, c.Analysis.Thresholds.TrendWindow) {
		c.Analysis.Indicators.SMAWindows = append(slices.Clone(c.Analysis.Indicators.SMAWindows),
			c.Analysis.Thresholds.TrendWindow)
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Schedule.ReportCron == "" {
		c.Schedule.ReportCron = "0 30 22 * * 1-5"
	}
	c.Schedule.Watchlist = SplitSymbols(strings.Join(c.Schedule.Watchlist, ","))
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.DataSource.Provider {
	case "yahoo", "mock":
	case "rest":
		if c.DataSource.BaseURL == "" {
			return fmt.Errorf("data_source.base_url is required for the rest provider")
		}
	default:
		return fmt.Errorf("unknown data_source.provider %q", c.DataSource.Provider)
	}
	if c.DataSource.MaxRetries < 0 {
		return fmt.Errorf("data_source.max_retries must not be negative")
	}
	if c.Analysis.Workers < 1 {
		return fmt.Errorf("analysis.workers must be at least 1")
	}
	if err := c.Analysis.Indicators.Validate(); err != nil {
		return fmt.Errorf("analysis.indicators: %w", err)
	}
	if c.Analysis.Thresholds.RSIOversold >= c.Analysis.Thresholds.RSIOverbought {
		return fmt.Errorf("analysis.thresholds: rsi_oversold must be below rsi_overbought")
	}
	if c.Analysis.Thresholds.StochOversold >= c.Analysis.Thresholds.StochOverbought {
		return fmt.Errorf("analysis.thresholds: stoch_oversold must be below stoch_overbought")
	}
	return nil
}

// TelegramEnabled reports whether scheduled reports can be delivered.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

// SplitSymbols parses a comma-separated symbol list, upper-casing and dropping blanks.
func SplitSymbols(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.ToUpper(strings.TrimSpace(p)); p != "" {
			out = append(out, p)
		}
	}
	return out
}
