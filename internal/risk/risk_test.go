package risk

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"AerialView/internal/model"
)

func TestReturns(t *testing.T) {
	got := Returns([]float64{100, 110, 99})
	require.Len(t, got, 2)
	assert.InDelta(t, 0.10, got[0], 1e-12)
	assert.InDelta(t, -0.10, got[1], 1e-12)
	assert.Nil(t, Returns([]float64{100}))
}

func TestCompute_KnownSeries(t *testing.T) {
	closes := []float64{100, 110, 99, 120}
	m, err := Compute(closes, 0)
	require.NoError(t, err)

	assert.InDelta(t, 0.20, m.TotalReturn, 1e-12)
	assert.InDelta(t, -0.10, m.MaxDrawdown, 1e-12)
	assert.Equal(t, 120.0, m.LatestPrice)
	assert.InDelta(t, 21.0, m.LatestChange, 1e-12)
	assert.InDelta(t, 120.0/99-1, m.LatestChangePct, 1e-12)

	rets := Returns(closes)
	mu := (rets[0] + rets[1] + rets[2]) / 3
	var ss float64
	for _, r := range rets {
		ss += (r - mu) * (r - mu)
	}
	vol := math.Sqrt(ss/2) * math.Sqrt(TradingDaysPerYear)
	require.True(t, m.AnnualVolatility.Valid)
	assert.InDelta(t, vol, m.AnnualVolatility.Float64, 1e-12)
	require.True(t, m.SharpeRatio.Valid)
	assert.InDelta(t, mu*TradingDaysPerYear/vol, m.SharpeRatio.Float64, 1e-9)
}

func TestCompute_RiskFreeRateLowersSharpe(t *testing.T) {
	closes := []float64{100, 102, 101, 105, 104, 108}
	zero, err := Compute(closes, 0)
	require.NoError(t, err)
	withRate, err := Compute(closes, DefaultRiskFreeRate)
	require.NoError(t, err)
	assert.Less(t, withRate.SharpeRatio.Float64, zero.SharpeRatio.Float64)
}

func TestCompute_NonDecreasingHasZeroDrawdown(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 10 + float64(i)
	}
	m, err := Compute(closes, DefaultRiskFreeRate)
	require.NoError(t, err)
	assert.Equal(t, 0.0, m.MaxDrawdown)
}

func TestCompute_FlatSeriesHasNoSharpe(t *testing.T) {
	m, err := Compute([]float64{50, 50, 50, 50}, DefaultRiskFreeRate)
	require.NoError(t, err)
	require.True(t, m.AnnualVolatility.Valid)
	assert.Equal(t, 0.0, m.AnnualVolatility.Float64)
	assert.False(t, m.SharpeRatio.Valid)
	assert.Equal(t, 0.0, m.VaR95)
}

func TestCompute_TwoClosesLeavesVolatilityUndefined(t *testing.T) {
	m, err := Compute([]float64{100, 101}, DefaultRiskFreeRate)
	require.NoError(t, err)
	assert.False(t, m.AnnualVolatility.Valid)
	assert.False(t, m.SharpeRatio.Valid)
	assert.InDelta(t, 0.01, m.VaR95, 1e-12)
}

func TestCompute_InsufficientHistory(t *testing.T) {
	for _, closes := range [][]float64{nil, {100}} {
		_, err := Compute(closes, DefaultRiskFreeRate)
		assert.True(t, errors.Is(err, model.ErrInsufficientHistory))
	}
}

func TestCompute_NonPositiveClose(t *testing.T) {
	_, err := Compute([]float64{100, 0, 101}, DefaultRiskFreeRate)
	assert.True(t, errors.Is(err, model.ErrInvalidSeries))
}

func TestCompute_Deterministic(t *testing.T) {
	closes := make([]float64, 200)
	for i := range closes {
		closes[i] = 100 + 10*math.Sin(float64(i)/9)
	}
	a, err := Compute(closes, DefaultRiskFreeRate)
	require.NoError(t, err)
	b, err := Compute(closes, DefaultRiskFreeRate)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.LessOrEqual(t, a.MaxDrawdown, 0.0)
}

func TestMaxDrawdown(t *testing.T) {
	assert.InDelta(t, -0.5, MaxDrawdown([]float64{100, 200, 100, 150}), 1e-12)
	assert.Equal(t, 0.0, MaxDrawdown([]float64{1, 2, 3}))
}

func TestQuantile(t *testing.T) {
	vals := []float64{5, 1, 4, 2, 3}
	assert.Equal(t, 1.0, Quantile(vals, 0))
	assert.Equal(t, 5.0, Quantile(vals, 1))
	assert.Equal(t, 3.0, Quantile(vals, 0.5))
	// position 0.05*4 = 0.2 between 1 and 2
	assert.InDelta(t, 1.2, Quantile(vals, 0.05), 1e-12)
	assert.True(t, math.IsNaN(Quantile(nil, 0.5)))
	assert.Equal(t, []float64{5, 1, 4, 2, 3}, vals, "input must not be reordered")
}
