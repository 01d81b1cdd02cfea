package stats

import "math"

// Welford accumulates count, mean, variance, and range in a single pass
// without keeping the values around.
type Welford struct {
	n    int
	mean float64
	m2   float64
	min  float64
	max  float64
}

func NewWelford() *Welford {
	return &Welford{min: math.Inf(1), max: math.Inf(-1)}
}

func (w *Welford) Add(x float64) {
	w.n++
	if x < w.min {
		w.min = x
	}
	if x > w.max {
		w.max = x
	}
	delta := x - w.mean
	w.mean += delta / float64(w.n)
	w.m2 += delta * (x - w.mean)
}

func (w *Welford) N() int        { return w.n }
func (w *Welford) Mean() float64 { return w.mean }
func (w *Welford) Min() float64  { return w.min }
func (w *Welford) Max() float64  { return w.max }

// SampleVariance returns the n-1 variance, 0 when fewer than two values
// have been added.
func (w *Welford) SampleVariance() float64 {
	if w.n < 2 {
		return 0
	}
	return w.m2 / float64(w.n-1)
}

func (w *Welford) StdDev() float64 {
	return math.Sqrt(w.SampleVariance())
}

func (w *Welford) CV() float64 {
	if w.mean == 0 {
		return math.Inf(1)
	}
	return w.StdDev() / w.mean
}
