// Package regress fits simple linear models by ordinary least squares using
// the explicit normal-equations route: accumulate the X'X and X'Y sums,
// invert the 2x2 system in closed form, and keep every intermediate so a
// result can be traced against a hand calculation line by line.
package regress

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// DetTolerance is the magnitude below which det(X'X) is treated as zero.
const DetTolerance = 1e-12

// Observation is one (x, y) pair.
type Observation struct {
	X float64
	Y float64
}

// FitResult carries the fitted line y = Beta0 + Beta1*x together with the
// matrix intermediates and diagnostics produced along the way. All values
// are unrounded; rendering decides display precision.
type FitResult struct {
	Obs []Observation
	N   int

	XtX    [2][2]float64
	XtY    [2]float64
	Det    float64
	XtXInv [2][2]float64

	Beta0 float64
	Beta1 float64

	Fitted    []float64
	Residuals []float64

	SSReg    float64
	SSRes    float64
	SSTot    float64
	RSquared float64

	// MSE and the standard errors are NaN when n == 2: the line passes
	// through both points exactly and leaves no degrees of freedom.
	MSE     float64
	SEBeta0 float64
	SEBeta1 float64
	TBeta0  float64
	TBeta1  float64
}

// Fit estimates y = b0 + b1*x over the given observations.
//
// It fails with *InsufficientDataError when fewer than two observations are
// supplied, *SingularMatrixError when X'X is not invertible (constant x),
// and *DegenerateResponseError when the y values have zero variance. The
// input slice is never modified.
func Fit(obs []Observation) (*FitResult, error) {
	n := len(obs)
	if n < 2 {
		return nil, &InsufficientDataError{N: n}
	}

	var sumX, sumY, sumXX, sumXY float64
	for _, o := range obs {
		sumX += o.X
		sumY += o.Y
		sumXX += o.X * o.X
		sumXY += o.X * o.Y
	}

	fn := float64(n)
	r := &FitResult{
		Obs: append([]Observation(nil), obs...),
		N:   n,
		XtX: [2][2]float64{{fn, sumX}, {sumX, sumXX}},
		XtY: [2]float64{sumY, sumXY},
	}

	// det of [[a,b],[c,d]] is ad - bc.
	r.Det = r.XtX[0][0]*r.XtX[1][1] - r.XtX[0][1]*r.XtX[1][0]
	if math.Abs(r.Det) < DetTolerance {
		return nil, &SingularMatrixError{Det: r.Det, Tolerance: DetTolerance}
	}

	// [[a,b],[c,d]]^-1 = (1/det) [[d,-b],[-c,a]]
	r.XtXInv = [2][2]float64{
		{r.XtX[1][1] / r.Det, -r.XtX[0][1] / r.Det},
		{-r.XtX[1][0] / r.Det, r.XtX[0][0] / r.Det},
	}

	r.Beta0 = r.XtXInv[0][0]*r.XtY[0] + r.XtXInv[0][1]*r.XtY[1]
	r.Beta1 = r.XtXInv[1][0]*r.XtY[0] + r.XtXInv[1][1]*r.XtY[1]

	yMean := sumY / fn
	r.Fitted = make([]float64, n)
	r.Residuals = make([]float64, n)
	for i, o := range obs {
		r.Fitted[i] = r.Beta0 + r.Beta1*o.X
		r.Residuals[i] = o.Y - r.Fitted[i]
		r.SSRes += r.Residuals[i] * r.Residuals[i]
		d := o.Y - yMean
		r.SSTot += d * d
	}
	if r.SSTot == 0 {
		return nil, &DegenerateResponseError{Y: obs[0].Y}
	}
	r.SSReg = r.SSTot - r.SSRes
	r.RSquared = 1 - r.SSRes/r.SSTot

	if n > 2 {
		r.MSE = r.SSRes / float64(n-2)
	} else {
		r.MSE = math.NaN()
	}
	r.SEBeta0 = math.Sqrt(r.MSE * r.XtXInv[0][0])
	r.SEBeta1 = math.Sqrt(r.MSE * r.XtXInv[1][1])
	r.TBeta0 = tStat(r.Beta0, r.SEBeta0)
	r.TBeta1 = tStat(r.Beta1, r.SEBeta1)
	return r, nil
}

func tStat(beta, se float64) float64 {
	if math.IsNaN(se) {
		return math.NaN()
	}
	if se == 0 {
		return math.Inf(1)
	}
	return beta / se
}

// Predict evaluates the fitted line at x.
func (r *FitResult) Predict(x float64) float64 {
	return r.Beta0 + r.Beta1*x
}

// Equation returns the fitted line formatted for display.
func (r *FitResult) Equation() string {
	return "y = " + formatCoef(r.Beta0) + " + " + formatCoef(r.Beta1) + " * x"
}

// CrossCheck refits the same observations through gonum's simple linear
// regression and reports whether both routes land on the same coefficients.
// The matrix route above stays the source of truth; this is the independent
// confirmation a reviewer would otherwise do by hand.
func CrossCheck(r *FitResult) (alpha, beta float64, match bool) {
	xs := make([]float64, len(r.Obs))
	ys := make([]float64, len(r.Obs))
	for i, o := range r.Obs {
		xs[i] = o.X
		ys[i] = o.Y
	}
	alpha, beta = stat.LinearRegression(xs, ys, nil, false)
	match = math.Abs(alpha-r.Beta0) < 1e-8 && math.Abs(beta-r.Beta1) < 1e-8
	return alpha, beta, match
}
