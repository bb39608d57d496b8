package calculator

import (
	"errors"
	"math"

	"AerialView/internal/model"
)

// PriceRange scans the bars and returns the highest high and lowest low.
func PriceRange(bars []model.Bar) (high, low float64, err error) {
	if len(bars) == 0 {
		return 0, 0, model.ErrInsufficientHistory
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, b := range bars {
		if b.High > high {
			high = b.High
		}
		if b.Low < low {
			low = b.Low
		}
	}
	return high, low, nil
}

// RangePosition returns where the current price sits within [low, high] (0.0~1.0).
func RangePosition(current, high, low float64) (float64, error) {
	if high == low {
		return 0.5, nil
	}
	if high < low {
		return 0, errors.New("high must be >= low")
	}
	pos := (current - low) / (high - low)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos, nil
}

// Summarize builds the price and volume overview of a series.
func Summarize(series *model.Series) (model.Summary, error) {
	bars := series.Bars
	high, low, err := PriceRange(bars)
	if err != nil {
		return model.Summary{}, err
	}
	first, last := bars[0].Close, bars[len(bars)-1].Close

	var volSum float64
	for _, b := range bars {
		volSum += float64(b.Volume)
	}

	s := model.Summary{
		CurrentPrice:  last,
		PriceChange:   last - first,
		AverageVolume: volSum / float64(len(bars)),
		MaxPrice:      high,
		MinPrice:      low,
	}
	if first != 0 {
		s.PriceChangePct = (last/first - 1) * 100
	}
	if pos, err := RangePosition(last, high, low); err == nil {
		s.RangePosition = pos
	}
	return s, nil
}
