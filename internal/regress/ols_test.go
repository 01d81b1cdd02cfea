package regress

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func closeTo(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// relClose compares with a relative tolerance, falling back to absolute
// near zero.
func relClose(a, b, tol float64) bool {
	scale := math.Max(math.Abs(a), math.Abs(b))
	if scale < 1 {
		scale = 1
	}
	return math.Abs(a-b) <= tol*scale
}

func mustFit(t *testing.T, obs []Observation) *FitResult {
	t.Helper()
	r, err := Fit(obs)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	return r
}

func TestFitPerfectLine(t *testing.T) {
	obs := []Observation{{1, 2}, {2, 4}, {3, 6}}
	r := mustFit(t, obs)
	if !closeTo(r.Beta0, 0, 1e-9) || !closeTo(r.Beta1, 2, 1e-9) {
		t.Fatalf("beta = (%v, %v), want (0, 2)", r.Beta0, r.Beta1)
	}
	if !closeTo(r.SSRes, 0, 1e-9) {
		t.Fatalf("SSRes = %v, want 0", r.SSRes)
	}
	if !closeTo(r.RSquared, 1, 1e-9) {
		t.Fatalf("R^2 = %v, want 1", r.RSquared)
	}
	for i, res := range r.Residuals {
		if !closeTo(res, 0, 1e-9) {
			t.Fatalf("residual[%d] = %v, want 0", i, res)
		}
	}
}

func TestFitKnownScenario(t *testing.T) {
	obs := []Observation{{1, 1}, {2, 2}, {3, 2}}
	r := mustFit(t, obs)
	if !closeTo(r.Beta0, 2.0/3.0, 1e-9) {
		t.Fatalf("b0 = %v, want 0.6667", r.Beta0)
	}
	if !closeTo(r.Beta1, 0.5, 1e-9) {
		t.Fatalf("b1 = %v, want 0.5", r.Beta1)
	}
	if !closeTo(r.SSRes, 1.0/6.0, 1e-9) {
		t.Fatalf("SSRes = %v, want 1/6", r.SSRes)
	}
	if !closeTo(r.SSTot, 2.0/3.0, 1e-9) {
		t.Fatalf("SSTot = %v, want 2/3", r.SSTot)
	}
	if !closeTo(r.RSquared, 0.75, 1e-9) {
		t.Fatalf("R^2 = %v, want 0.75", r.RSquared)
	}
	if !closeTo(r.MSE, 1.0/6.0, 1e-9) {
		t.Fatalf("MSE = %v, want 1/6", r.MSE)
	}
	if !closeTo(r.SEBeta0, math.Sqrt(14.0/36.0), 1e-9) {
		t.Fatalf("SE(b0) = %v", r.SEBeta0)
	}
	if !closeTo(r.SEBeta1, math.Sqrt(1.0/12.0), 1e-9) {
		t.Fatalf("SE(b1) = %v", r.SEBeta1)
	}
	if !closeTo(r.TBeta1, 0.5/math.Sqrt(1.0/12.0), 1e-9) {
		t.Fatalf("t(b1) = %v", r.TBeta1)
	}
}

// The worksheet dataset the defaults reproduce.
func TestFitWorksheetDefaults(t *testing.T) {
	obs := []Observation{{0.5, 6}, {4, 7}, {6, 7}, {8, 8}, {10, 7}}
	r := mustFit(t, obs)
	if !closeTo(r.Det, 269, 1e-9) {
		t.Fatalf("det = %v, want 269", r.Det)
	}
	if !closeTo(r.Beta0, 1669.25/269.0, 1e-9) || !closeTo(r.Beta1, 37.5/269.0, 1e-9) {
		t.Fatalf("beta = (%v, %v)", r.Beta0, r.Beta1)
	}
	if !closeTo(r.SSTot, 2, 1e-9) {
		t.Fatalf("SSTot = %v, want 2", r.SSTot)
	}
}

// X'X * beta must reproduce X'Y for any fit that succeeds.
func TestFitSatisfiesNormalEquations(t *testing.T) {
	datasets := [][]Observation{
		{{0.5, 6}, {4, 7}, {6, 7}, {8, 8}, {10, 7}},
		{{1, 1}, {2, 2}, {3, 2}},
		{{-3, 2.5}, {-1, 0.4}, {0, -1.2}, {2, 3.3}, {7, 9.9}, {11, 4.2}},
	}
	for _, obs := range datasets {
		r := mustFit(t, obs)
		lhs0 := r.XtX[0][0]*r.Beta0 + r.XtX[0][1]*r.Beta1
		lhs1 := r.XtX[1][0]*r.Beta0 + r.XtX[1][1]*r.Beta1
		if !relClose(lhs0, r.XtY[0], 1e-9) || !relClose(lhs1, r.XtY[1], 1e-9) {
			t.Fatalf("normal equations violated: [%v %v] vs [%v %v]", lhs0, lhs1, r.XtY[0], r.XtY[1])
		}
	}
}

func TestFitIsDeterministic(t *testing.T) {
	obs := []Observation{{1, 1}, {2, 2}, {3, 2}}
	first := mustFit(t, obs)
	second := mustFit(t, obs)
	if first.Beta0 != second.Beta0 || first.Beta1 != second.Beta1 || first.RSquared != second.RSquared {
		t.Fatalf("repeat fit differs: %+v vs %+v", first, second)
	}
	if obs[0] != (Observation{1, 1}) || obs[2] != (Observation{3, 2}) {
		t.Fatalf("input mutated: %+v", obs)
	}
}

func TestFitConstantX(t *testing.T) {
	_, err := Fit([]Observation{{2, 1}, {2, 5}, {2, 9}})
	var sing *SingularMatrixError
	if !errors.As(err, &sing) {
		t.Fatalf("err = %v, want SingularMatrixError", err)
	}
	if !closeTo(sing.Det, 0, 1e-9) {
		t.Fatalf("det = %v, want ~0", sing.Det)
	}
}

func TestFitConstantY(t *testing.T) {
	_, err := Fit([]Observation{{1, 4}, {2, 4}, {3, 4}})
	var deg *DegenerateResponseError
	if !errors.As(err, &deg) {
		t.Fatalf("err = %v, want DegenerateResponseError", err)
	}
	if deg.Y != 4 {
		t.Fatalf("degenerate y = %v, want 4", deg.Y)
	}
}

func TestFitTooFewObservations(t *testing.T) {
	for _, obs := range [][]Observation{nil, {{1, 2}}} {
		_, err := Fit(obs)
		var insufficient *InsufficientDataError
		if !errors.As(err, &insufficient) {
			t.Fatalf("err = %v, want InsufficientDataError", err)
		}
		if insufficient.N != len(obs) {
			t.Fatalf("n = %d, want %d", insufficient.N, len(obs))
		}
	}
}

// Two points with distinct x fit exactly but leave no degrees of freedom.
func TestFitTwoPoints(t *testing.T) {
	r := mustFit(t, []Observation{{0, 1}, {1, 3}})
	if !closeTo(r.Beta0, 1, 1e-9) || !closeTo(r.Beta1, 2, 1e-9) {
		t.Fatalf("beta = (%v, %v), want (1, 2)", r.Beta0, r.Beta1)
	}
	if !closeTo(r.RSquared, 1, 1e-9) {
		t.Fatalf("R^2 = %v, want 1", r.RSquared)
	}
	if !math.IsNaN(r.MSE) || !math.IsNaN(r.SEBeta0) || !math.IsNaN(r.TBeta1) {
		t.Fatalf("expected NaN diagnostics, got MSE=%v SE=%v t=%v", r.MSE, r.SEBeta0, r.TBeta1)
	}
}

func TestPredict(t *testing.T) {
	r := mustFit(t, []Observation{{1, 2}, {2, 4}, {3, 6}})
	if got := r.Predict(10); !closeTo(got, 20, 1e-9) {
		t.Fatalf("Predict(10) = %v, want 20", got)
	}
}

func TestCrossCheckAgrees(t *testing.T) {
	r := mustFit(t, []Observation{{0.5, 6}, {4, 7}, {6, 7}, {8, 8}, {10, 7}})
	alpha, beta, match := CrossCheck(r)
	if !match {
		t.Fatalf("cross-check mismatch: got (%v, %v), fit (%v, %v)", alpha, beta, r.Beta0, r.Beta1)
	}
}

func TestTextReportSections(t *testing.T) {
	r := mustFit(t, []Observation{{1, 1}, {2, 2}, {3, 2}})
	out := r.Text()
	for _, want := range []string{
		"OLS REGRESSION VIA MATRIX ALGEBRA",
		"INPUT DATA",
		"MATRIX CONSTRUCTION",
		"det(X'X) = 6.0000",
		"SOLUTION: beta = (X'X)^-1 * X'Y",
		"b0 (intercept) = 0.6667",
		"b1 (slope)     = 0.5000",
		"PREDICTIONS & RESIDUALS",
		"GOODNESS OF FIT",
		"R^2           = 0.7500",
		"STANDARD ERRORS & T-STATISTICS",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}

func TestTextReportTwoPointDiagnostics(t *testing.T) {
	r := mustFit(t, []Observation{{0, 1}, {1, 3}})
	out := r.Text()
	if !strings.Contains(out, "MSE           = n/a") {
		t.Fatalf("report should mark MSE n/a:\n%s", out)
	}
}
