package model

import (
	"fmt"
	"time"
)

// Bar is one OHLCV observation.
type Bar struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// Series holds an ordered run of bars for one symbol.
type Series struct {
	Symbol   string
	Interval string
	Bars     []Bar
}

// Len returns the number of bars.
func (s *Series) Len() int { return len(s.Bars) }

// Validate rejects series that must not reach the calculators.
// An empty series is valid here; calculators report it as insufficient history.
func (s *Series) Validate() error {
	for i, b := range s.Bars {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("bar %d (%s): %w", i, b.Time.Format(time.RFC3339), err)
		}
		if i > 0 && !b.Time.After(s.Bars[i-1].Time) {
			return fmt.Errorf("bar %d: timestamp %s not after %s: %w",
				i, b.Time.Format(time.RFC3339), s.Bars[i-1].Time.Format(time.RFC3339), ErrInvalidSeries)
		}
	}
	return nil
}

// Validate checks the price and volume invariants of a single bar.
func (b Bar) Validate() error {
	switch {
	case b.Open < 0 || b.High < 0 || b.Low < 0 || b.Close < 0:
		return fmt.Errorf("negative price: %w", ErrInvalidSeries)
	case b.Close == 0:
		return fmt.Errorf("zero close: %w", ErrInvalidSeries)
	case b.Volume < 0:
		return fmt.Errorf("negative volume %d: %w", b.Volume, ErrInvalidSeries)
	case b.Low > b.High:
		return fmt.Errorf("low %.4f above high %.4f: %w", b.Low, b.High, ErrInvalidSeries)
	case b.Open < b.Low || b.Open > b.High:
		return fmt.Errorf("open %.4f outside [%.4f, %.4f]: %w", b.Open, b.Low, b.High, ErrInvalidSeries)
	case b.Close < b.Low || b.Close > b.High:
		return fmt.Errorf("close %.4f outside [%.4f, %.4f]: %w", b.Close, b.Low, b.High, ErrInvalidSeries)
	}
	return nil
}

// Closes returns the close prices in bar order.
func (s *Series) Closes() []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.Close
	}
	return out
}

// Highs returns the high prices in bar order.
func (s *Series) Highs() []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.High
	}
	return out
}

// Lows returns the low prices in bar order.
func (s *Series) Lows() []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.Low
	}
	return out
}

// Volumes returns the volumes in bar order.
func (s *Series) Volumes() []int64 {
	out := make([]int64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.Volume
	}
	return out
}

// Times returns the bar timestamps.
func (s *Series) Times() []time.Time {
	out := make([]time.Time, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.Time
	}
	return out
}
