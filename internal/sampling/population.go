// Package sampling covers the sampling-methodology exercise: synthesizing a
// fixture population, drawing simple random samples from it, and sizing the
// sample a survey needs for a precision target.
package sampling

import "math/rand"

// GeneratePopulation synthesizes n values from N(mean, stddev), clamped at
// zero since wattages cannot go negative. The same seed reproduces the same
// population.
func GeneratePopulation(mean, stddev float64, n int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	for i := range out {
		v := mean + stddev*rng.NormFloat64()
		if v < 0 {
			v = 0
		}
		out[i] = v
	}
	return out
}

// DrawSample draws a simple random sample without replacement via a seeded
// permutation. Sizes beyond the population return the whole population.
func DrawSample(population []float64, size int, seed int64) []float64 {
	if size < 0 {
		size = 0
	}
	if size > len(population) {
		size = len(population)
	}
	rng := rand.New(rand.NewSource(seed))
	idx := rng.Perm(len(population))
	out := make([]float64, size)
	for i := range out {
		out[i] = population[idx[i]]
	}
	return out
}
