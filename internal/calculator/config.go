package calculator

import "fmt"

// MACDConfig holds the MACD spans.
type MACDConfig struct {
	Fast   int `yaml:"fast"`
	Slow   int `yaml:"slow"`
	Signal int `yaml:"signal"`
}

// BollingerConfig holds the band window and width in standard deviations.
type BollingerConfig struct {
	Window int     `yaml:"window"`
	StdDev float64 `yaml:"stddev"`
}

// StochasticConfig holds the %K and %D windows.
type StochasticConfig struct {
	KWindow int `yaml:"k_window"`
	DWindow int `yaml:"d_window"`
}

// Config enumerates the indicator windows.
type Config struct {
	SMAWindows     []int            `yaml:"sma_windows"`
	RSIWindow      int              `yaml:"rsi_window"`
	RSISmoothing   string           `yaml:"rsi_smoothing"`
	MACD           MACDConfig       `yaml:"macd"`
	Bollinger      BollingerConfig  `yaml:"bollinger"`
	Stochastic     StochasticConfig `yaml:"stochastic"`
	VolumeMAWindow int              `yaml:"volume_ma_window"`
}

// DefaultConfig returns the conventional indicator windows.
func DefaultConfig() Config {
	return Config{
		SMAWindows:     []int{20, 50, 200},
		RSIWindow:      14,
		RSISmoothing:   SmoothingSimple,
		MACD:           MACDConfig{Fast: 12, Slow: 26, Signal: 9},
		Bollinger:      BollingerConfig{Window: 20, StdDev: 2},
		Stochastic:     StochasticConfig{KWindow: 14, DWindow: 3},
		VolumeMAWindow: 20,
	}
}

// ApplyDefaults fills zero fields from DefaultConfig.
func (c *Config) ApplyDefaults() {
	d := DefaultConfig()
	if len(c.SMAWindows) == 0 {
		c.SMAWindows = d.SMAWindows
	}
	if c.RSIWindow == 0 {
		c.RSIWindow = d.RSIWindow
	}
	if c.RSISmoothing == "" {
		c.RSISmoothing = d.RSISmoothing
	}
	if c.MACD.Fast == 0 {
		c.MACD.Fast = d.MACD.Fast
	}
	if c.MACD.Slow == 0 {
		c.MACD.Slow = d.MACD.Slow
	}
	if c.MACD.Signal == 0 {
		c.MACD.Signal = d.MACD.Signal
	}
	if c.Bollinger.Window == 0 {
		c.Bollinger.Window = d.Bollinger.Window
	}
	if c.Bollinger.StdDev == 0 {
		c.Bollinger.StdDev = d.Bollinger.StdDev
	}
	if c.Stochastic.KWindow == 0 {
		c.Stochastic.KWindow = d.Stochastic.KWindow
	}
	if c.Stochastic.DWindow == 0 {
		c.Stochastic.DWindow = d.Stochastic.DWindow
	}
	if c.VolumeMAWindow == 0 {
		c.VolumeMAWindow = d.VolumeMAWindow
	}
}

// Validate rejects non-positive windows and unknown smoothing modes.
func (c Config) Validate() error {
	for _, w := range c.SMAWindows {
		if w <= 0 {
			return fmt.Errorf("sma window must be positive, got %d", w)
		}
	}
	windows := map[string]int{
		"rsi_window":          c.RSIWindow,
		"macd.fast":           c.MACD.Fast,
		"macd.slow":           c.MACD.Slow,
		"macd.signal":         c.MACD.Signal,
		"bollinger.window":    c.Bollinger.Window,
		"stochastic.k_window": c.Stochastic.KWindow,
		"stochastic.d_window": c.Stochastic.DWindow,
		"volume_ma_window":    c.VolumeMAWindow,
	}
	for name, w := range windows {
		if w <= 0 {
			return fmt.Errorf("%s must be positive, got %d", name, w)
		}
	}
	if c.MACD.Fast >= c.MACD.Slow {
		return fmt.Errorf("macd.fast (%d) must be below macd.slow (%d)", c.MACD.Fast, c.MACD.Slow)
	}
	if c.Bollinger.StdDev < 0 {
		return fmt.Errorf("bollinger.stddev must not be negative")
	}
	switch c.RSISmoothing {
	case SmoothingSimple, SmoothingWilder:
	default:
		return fmt.Errorf("unknown rsi_smoothing %q", c.RSISmoothing)
	}
	return nil
}
