package calculator

import (
	"math"
	"time"

	"github.com/guregu/null/v6"

	"AerialView/internal/model"
)

var testStart = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

// seriesFromCloses builds a daily series with a 1% high/low envelope and constant volume.
func seriesFromCloses(closes []float64) *model.Series {
	bars := make([]model.Bar, len(closes))
	for i, c := range closes {
		bars[i] = model.Bar{
			Time:   testStart.AddDate(0, 0, i),
			Open:   c,
			High:   c * 1.01,
			Low:    c * 0.99,
			Close:  c,
			Volume: 1000,
		}
	}
	return &model.Series{Symbol: "TEST", Interval: "1d", Bars: bars}
}

// wave returns n closes oscillating around 100 with a slow drift.
func wave(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 100 + 0.05*float64(i) + 5*math.Sin(float64(i)/3) + 2*math.Cos(float64(i)/7)
	}
	return out
}

func increasing(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 50 + float64(i)*1.5
	}
	return out
}

func constant(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func countValid(vals []null.Float) int {
	n := 0
	for _, v := range vals {
		if v.Valid {
			n++
		}
	}
	return n
}

func firstValid(vals []null.Float) int {
	for i, v := range vals {
		if v.Valid {
			return i
		}
	}
	return -1
}
