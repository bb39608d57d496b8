package calculator

import "github.com/guregu/null/v6"

// rollingMoments keeps the sum and sum of squares of the last `window`
// values. Values are shifted by the first observation so a flat window
// yields an exact zero variance.
type rollingMoments struct {
	window int
	shift  float64
	buf    []float64
	idx    int
	count  int
	sum    float64
	sumSq  float64
}

func newRollingMoments(window int, shift float64) *rollingMoments {
	return &rollingMoments{window: window, shift: shift, buf: make([]float64, window)}
}

func (r *rollingMoments) push(x float64) {
	d := x - r.shift
	if r.count >= r.window {
		old := r.buf[r.idx]
		r.sum -= old
		r.sumSq -= old * old
	}
	r.buf[r.idx] = d
	r.sum += d
	r.sumSq += d * d
	r.idx = (r.idx + 1) % r.window
	r.count++
}

func (r *rollingMoments) full() bool { return r.count >= r.window }

func (r *rollingMoments) mean() float64 {
	return r.shift + r.sum/float64(r.window)
}

// variance is the population variance of the window.
func (r *rollingMoments) variance() float64 {
	n := float64(r.window)
	v := (r.sumSq - r.sum*r.sum/n) / n
	if v < 0 {
		return 0
	}
	return v
}

// monoDeque tracks the index of the window maximum (or minimum) in O(1) amortised.
type monoDeque struct {
	idx  []int
	less func(a, b float64) bool
}

func newMaxDeque() *monoDeque {
	return &monoDeque{less: func(a, b float64) bool { return a <= b }}
}

func newMinDeque() *monoDeque {
	return &monoDeque{less: func(a, b float64) bool { return a >= b }}
}

// push adds position i of vals and drops positions older than i-window+1.
func (d *monoDeque) push(vals []float64, i, window int) {
	for len(d.idx) > 0 && d.less(vals[d.idx[len(d.idx)-1]], vals[i]) {
		d.idx = d.idx[:len(d.idx)-1]
	}
	d.idx = append(d.idx, i)
	for d.idx[0] <= i-window {
		d.idx = d.idx[1:]
	}
}

func (d *monoDeque) front(vals []float64) float64 {
	return vals[d.idx[0]]
}

// smaOptional averages the trailing window of an optional series; a position is
// valid only when every value in its window is valid.
func smaOptional(vals []null.Float, window int) []null.Float {
	out := make([]null.Float, len(vals))
	if window <= 0 {
		return out
	}
	var sum float64
	valid := 0
	for i, v := range vals {
		if v.Valid {
			sum += v.Float64
			valid++
		}
		if i >= window {
			if old := vals[i-window]; old.Valid {
				sum -= old.Float64
				valid--
			}
		}
		if i >= window-1 && valid == window {
			out[i] = null.FloatFrom(sum / float64(window))
		}
	}
	return out
}
