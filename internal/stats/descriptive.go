// Package stats carries the descriptive building blocks the calculators
// share: sample summaries, running accumulators, z-scores, text histograms,
// and the scale-up from a fixture sample to a building-level estimate.
package stats

import (
	"fmt"
	"math"
)

// Summary holds the descriptive statistics of one sample. Variance and the
// derived values use the n-1 sample convention.
type Summary struct {
	N        int
	Mean     float64
	Variance float64
	StdDev   float64
	CV       float64
	Min      float64
	Max      float64
}

// Describe computes the sample summary. At least two values are needed for
// the n-1 variance to exist.
func Describe(values []float64) (*Summary, error) {
	n := len(values)
	if n < 2 {
		return nil, &TooFewValuesError{N: n, Need: 2}
	}
	s := &Summary{N: n, Min: values[0], Max: values[0]}
	var sum float64
	for _, v := range values {
		sum += v
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	s.Mean = sum / float64(n)
	var sq float64
	for _, v := range values {
		d := v - s.Mean
		sq += d * d
	}
	s.Variance = sq / float64(n-1)
	s.StdDev = math.Sqrt(s.Variance)
	if s.Mean != 0 {
		s.CV = s.StdDev / s.Mean
	} else {
		s.CV = math.Inf(1)
	}
	return s, nil
}

// Deviations returns each value's deviation from the sample mean and its
// square, aligned with the input order.
func (s *Summary) Deviations(values []float64) (devs, sqDevs []float64) {
	devs = make([]float64, len(values))
	sqDevs = make([]float64, len(values))
	for i, v := range values {
		devs[i] = v - s.Mean
		sqDevs[i] = devs[i] * devs[i]
	}
	return devs, sqDevs
}

// Sum adds up the values.
func Sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

// TooFewValuesError indicates a computation received fewer values than it
// needs.
type TooFewValuesError struct {
	N    int
	Need int
}

func (e *TooFewValuesError) Error() string {
	return fmt.Sprintf("got %d values, need at least %d", e.N, e.Need)
}
