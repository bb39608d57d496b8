package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMACD_MissingRegionAndHistogram(t *testing.T) {
	closes := wave(100)
	res := CalculateMACD(closes, 12, 26, 9)
	require.Len(t, res.MACD, 100)
	require.Len(t, res.Signal, 100)
	require.Len(t, res.Histogram, 100)

	assert.Equal(t, 25, firstValid(res.MACD))
	assert.Equal(t, 33, firstValid(res.Signal))
	assert.Equal(t, 33, firstValid(res.Histogram))
	for i := 33; i < 100; i++ {
		assert.InDelta(t, res.MACD[i].Float64-res.Signal[i].Float64, res.Histogram[i].Float64, 1e-12)
	}
}

func TestMACD_ConstantSeriesIsZero(t *testing.T) {
	res := CalculateMACD(constant(60, 10), 12, 26, 9)
	for i := 33; i < 60; i++ {
		assert.InDelta(t, 0.0, res.MACD[i].Float64, 1e-12)
		assert.InDelta(t, 0.0, res.Signal[i].Float64, 1e-12)
	}
}

func TestMACD_TooShort(t *testing.T) {
	res := CalculateMACD(wave(20), 12, 26, 9)
	assert.Equal(t, 0, countValid(res.MACD))
	assert.Equal(t, 0, countValid(res.Signal))
}

func TestBollinger_KnownWindow(t *testing.T) {
	res := CalculateBollinger([]float64{1, 2, 3}, 3, 2)
	std := math.Sqrt(2.0 / 3.0)
	require.True(t, res.Middle[2].Valid)
	assert.InDelta(t, 2.0, res.Middle[2].Float64, 1e-12)
	assert.InDelta(t, 2+2*std, res.Upper[2].Float64, 1e-12)
	assert.InDelta(t, 2-2*std, res.Lower[2].Float64, 1e-12)
	assert.False(t, res.Upper[1].Valid)
}

func TestBollinger_FlatSeriesCollapses(t *testing.T) {
	res := CalculateBollinger(constant(30, 101.25), 20, 2)
	for i := 19; i < 30; i++ {
		require.True(t, res.Middle[i].Valid)
		assert.Equal(t, res.Middle[i].Float64, res.Upper[i].Float64)
		assert.Equal(t, res.Middle[i].Float64, res.Lower[i].Float64)
	}
}

func TestBollinger_Ordering(t *testing.T) {
	res := CalculateBollinger(wave(150), 20, 2)
	for i := 19; i < 150; i++ {
		assert.GreaterOrEqual(t, res.Upper[i].Float64, res.Middle[i].Float64)
		assert.LessOrEqual(t, res.Lower[i].Float64, res.Middle[i].Float64)
	}
}

func TestStochastic_KnownValues(t *testing.T) {
	highs := []float64{10, 12, 11, 13}
	lows := []float64{8, 9, 9, 10}
	closes := []float64{9, 11, 10, 12}
	res := CalculateStochastic(highs, lows, closes, 3, 2)

	assert.False(t, res.K[1].Valid)
	// window [0,2]: HH 12, LL 8, close 10
	assert.InDelta(t, 50.0, res.K[2].Float64, 1e-12)
	// window [1,3]: HH 13, LL 9, close 12
	assert.InDelta(t, 75.0, res.K[3].Float64, 1e-12)

	assert.False(t, res.D[2].Valid)
	assert.InDelta(t, 62.5, res.D[3].Float64, 1e-12)
}

func TestStochastic_FlatRangeIsMissing(t *testing.T) {
	flat := constant(10, 5)
	res := CalculateStochastic(flat, flat, flat, 3, 3)
	assert.Equal(t, 0, countValid(res.K))
	assert.Equal(t, 0, countValid(res.D))
}

func TestStochastic_Bounds(t *testing.T) {
	s := seriesFromCloses(wave(120))
	res := CalculateStochastic(s.Highs(), s.Lows(), s.Closes(), 14, 3)
	for _, v := range res.K {
		if v.Valid {
			assert.GreaterOrEqual(t, v.Float64, 0.0)
			assert.LessOrEqual(t, v.Float64, 100.0)
		}
	}
}

func TestOBV_KnownSequence(t *testing.T) {
	got := OBV([]float64{10, 11, 9, 9, 12}, []int64{100, 100, 100, 100, 100})
	want := []float64{100, 200, 100, 100, 200}
	require.Len(t, got, len(want))
	for i, w := range want {
		require.True(t, got[i].Valid)
		assert.Equal(t, w, got[i].Float64, "position %d", i)
	}
}

func TestOBV_Deterministic(t *testing.T) {
	s := seriesFromCloses(wave(300))
	first := OBV(s.Closes(), s.Volumes())
	second := OBV(s.Closes(), s.Volumes())
	assert.Equal(t, first, second)
}

func TestOBV_Empty(t *testing.T) {
	assert.Empty(t, OBV(nil, nil))
}
