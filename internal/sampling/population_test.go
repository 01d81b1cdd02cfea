package sampling

import (
	"math"
	"testing"

	"github.com/greenmetrics/mvstat/internal/stats"
)

func TestGeneratePopulationDeterministic(t *testing.T) {
	a := GeneratePopulation(100, 25, 1000, 42)
	b := GeneratePopulation(100, 25, 1000, 42)
	if len(a) != 1000 {
		t.Fatalf("len = %d, want 1000", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed diverged at %d: %v vs %v", i, a[i], b[i])
		}
	}
	c := GeneratePopulation(100, 25, 1000, 43)
	same := true
	for i := range a {
		if a[i] != c[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different seeds produced identical populations")
	}
}

func TestGeneratePopulationMoments(t *testing.T) {
	pop := GeneratePopulation(100, 25, 1000, 42)
	s, err := stats.Describe(pop)
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if math.Abs(s.Mean-100) > 5 {
		t.Fatalf("mean = %v, want ~100", s.Mean)
	}
	if math.Abs(s.StdDev-25) > 5 {
		t.Fatalf("std dev = %v, want ~25", s.StdDev)
	}
}

func TestGeneratePopulationClampsAtZero(t *testing.T) {
	pop := GeneratePopulation(0, 25, 500, 7)
	clamped := 0
	for _, v := range pop {
		if v < 0 {
			t.Fatalf("negative value %v survived the clamp", v)
		}
		if v == 0 {
			clamped++
		}
	}
	if clamped == 0 {
		t.Fatal("expected some values clamped to zero with mean 0")
	}
}

func TestDrawSampleWithoutReplacement(t *testing.T) {
	pop := make([]float64, 1000)
	for i := range pop {
		pop[i] = float64(i)
	}
	sample := DrawSample(pop, 30, 43)
	if len(sample) != 30 {
		t.Fatalf("len = %d, want 30", len(sample))
	}
	seen := make(map[float64]bool, len(sample))
	for _, v := range sample {
		if v < 0 || v > 999 || v != math.Trunc(v) {
			t.Fatalf("value %v not drawn from the population", v)
		}
		if seen[v] {
			t.Fatalf("value %v drawn twice", v)
		}
		seen[v] = true
	}
	again := DrawSample(pop, 30, 43)
	for i := range sample {
		if sample[i] != again[i] {
			t.Fatalf("same seed diverged at %d", i)
		}
	}
}

func TestDrawSampleClampsSize(t *testing.T) {
	pop := []float64{1, 2, 3}
	if got := DrawSample(pop, 10, 1); len(got) != 3 {
		t.Fatalf("len = %d, want whole population", len(got))
	}
	if got := DrawSample(pop, -1, 1); len(got) != 0 {
		t.Fatalf("len = %d, want 0", len(got))
	}
}
