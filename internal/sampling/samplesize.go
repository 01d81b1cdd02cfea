package sampling

import (
	"math"

	"github.com/greenmetrics/mvstat/internal/stats"
)

// SampleSizeInfinite is the required sample size for an infinite
// population: n0 = (Z * CV / P)^2.
func SampleSizeInfinite(z, cv, precision float64) float64 {
	r := z * cv / precision
	return r * r
}

// FiniteCorrection shrinks n0 for a population of the given size:
// n = (n0 * N) / (n0 + N).
func FiniteCorrection(n0 float64, population int) float64 {
	n := float64(population)
	return n0 * n / (n0 + n)
}

// Requirement is one sample-size calculation: the inputs, the uncorrected
// n0, and the finite-corrected n when a population size is known.
type Requirement struct {
	ConfidencePct float64
	Precision     float64
	Z             float64
	N0            float64
	N             float64
}

// Required sizes a sample for the given CV, relative precision, and
// confidence level. A population of 0 means no finite correction.
func Required(cv, precision, confidencePct float64, population int) Requirement {
	z := stats.ZScore(confidencePct)
	n0 := SampleSizeInfinite(z, cv, precision)
	r := Requirement{
		ConfidencePct: confidencePct,
		Precision:     precision,
		Z:             z,
		N0:            n0,
		N:             n0,
	}
	if population > 0 {
		r.N = FiniteCorrection(n0, population)
	}
	return r
}

// Samples returns the whole number of samples to collect.
func (r Requirement) Samples() int {
	return int(math.Ceil(r.N))
}

// Scenarios sweeps the standard grid of confidence levels and precision
// targets for comparison.
func Scenarios(cv float64, population int) []Requirement {
	out := make([]Requirement, 0, 9)
	for _, conf := range []float64{80, 90, 95} {
		for _, prec := range []float64{0.05, 0.10, 0.20} {
			out = append(out, Required(cv, prec, conf, population))
		}
	}
	return out
}
