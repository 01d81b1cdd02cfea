package sampling

import (
	"strings"
	"testing"
)

func TestExerciseTextSections(t *testing.T) {
	out, err := ExerciseText(ExerciseOptions{
		PopMean:    100,
		PopStd:     25,
		PopSize:    1000,
		SampleSize: 30,
		Seed:       42,
		Precision:  0.10,
		Confidence: 90,
		Bins:       10,
	})
	if err != nil {
		t.Fatalf("ExerciseText: %v", err)
	}

	for _, want := range []string{
		"STEP 1: GENERATE POPULATION",
		"Target:   mean=100, std_dev=25, N=1000",
		"Distribution:",
		"STEP 2: DRAW RANDOM SAMPLE (n=30)",
		"Statistic            Population",
		"STEP 3: DESCRIPTIVE STATISTICS (STEP BY STEP)",
		"Sample Variance =",
		"STEP 4: SAMPLE SIZE CALCULATOR",
		"Formula: n0 = (Z * CV / P)^2",
		"SCENARIO COMPARISON",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("walkthrough missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, strings.Repeat("#", 40)) {
		t.Fatal("histogram should render a full-width bar for the peak bin")
	}
}

func TestExerciseTextDeterministic(t *testing.T) {
	opt := ExerciseOptions{PopMean: 100, PopStd: 25, PopSize: 200, SampleSize: 20, Seed: 7, Precision: 0.10, Confidence: 90, Bins: 10}
	a, err := ExerciseText(opt)
	if err != nil {
		t.Fatalf("ExerciseText: %v", err)
	}
	b, err := ExerciseText(opt)
	if err != nil {
		t.Fatalf("ExerciseText: %v", err)
	}
	if a != b {
		t.Fatal("same seed should render the same walkthrough")
	}
}

func TestExerciseTextTooSmall(t *testing.T) {
	_, err := ExerciseText(ExerciseOptions{PopMean: 100, PopStd: 25, PopSize: 1, SampleSize: 1, Seed: 1, Precision: 0.1, Confidence: 90, Bins: 5})
	if err == nil {
		t.Fatal("expected an error for a one-value population")
	}
}

func TestCalcTextNinetyPercent(t *testing.T) {
	out := CalcText(0.25, 0.10, 90, 1000)
	for _, want := range []string{
		"Z(90%) = 1.645,  CV = 0.2500,  P = 0.10",
		"n0 = (1.645 * 0.2500 / 0.10)^2 = 16.9",
		"Finite population correction (N=1000):",
		"Required sample size: 17",
		"n (N=1000)",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("calc text missing %q:\n%s", want, out)
		}
	}
}

func TestCalcTextInfinitePopulation(t *testing.T) {
	out := CalcText(0.25, 0.10, 95, 0)
	if strings.Contains(out, "Finite population correction") {
		t.Fatalf("no correction expected:\n%s", out)
	}
	if !strings.Contains(out, "n (N=inf)") {
		t.Fatalf("grid header should note the infinite population:\n%s", out)
	}
	if !strings.Contains(out, "Z(95%) = 1.960") {
		t.Fatalf("z-score line missing:\n%s", out)
	}
}
