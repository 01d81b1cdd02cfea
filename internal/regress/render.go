package regress

import (
	"fmt"
	"math"
	"strings"
)

// Text renders the fit as the step-by-step calculation trace: input sums,
// matrix construction, solution, residuals, and goodness of fit. The layout
// mirrors the worksheet the numbers are checked against.
func (r *FitResult) Text() string {
	var b strings.Builder
	banner := strings.Repeat("=", 60)
	b.WriteString(banner + "\n")
	b.WriteString("OLS REGRESSION VIA MATRIX ALGEBRA\n")
	b.WriteString(banner + "\n\n")

	b.WriteString("INPUT DATA\n")
	b.WriteString(fmt.Sprintf("  %-5s %-10s %-10s %-12s %-10s\n", "Obs", "x", "y", "x*y", "x^2"))
	b.WriteString("  " + strings.Repeat("-", 47) + "\n")
	for i, o := range r.Obs {
		b.WriteString(fmt.Sprintf("  %-5d %-10.2f %-10.2f %-12.2f %-10.2f\n", i+1, o.X, o.Y, o.X*o.Y, o.X*o.X))
	}
	b.WriteString("\n")

	b.WriteString("MATRIX CONSTRUCTION\n")
	writeMatrix(&b, "X'X", r.XtX)
	writeVector(&b, "X'Y", r.XtY)
	b.WriteString(fmt.Sprintf("\n  det(X'X) = %.4f\n", r.Det))
	writeMatrix(&b, "(X'X)^-1", r.XtXInv)
	b.WriteString("\n")

	b.WriteString("SOLUTION: beta = (X'X)^-1 * X'Y\n")
	b.WriteString(fmt.Sprintf("  b0 (intercept) = %.4f\n", r.Beta0))
	b.WriteString(fmt.Sprintf("  b1 (slope)     = %.4f\n", r.Beta1))
	b.WriteString(fmt.Sprintf("  Equation: %s\n\n", r.Equation()))

	b.WriteString("PREDICTIONS & RESIDUALS\n")
	b.WriteString(fmt.Sprintf("  %-5s %-8s %-8s %-10s %-10s\n", "Obs", "x", "y", "y_hat", "residual"))
	b.WriteString("  " + strings.Repeat("-", 41) + "\n")
	for i, o := range r.Obs {
		b.WriteString(fmt.Sprintf("  %-5d %-8.2f %-8.2f %-10.4f %-10.4f\n", i+1, o.X, o.Y, r.Fitted[i], r.Residuals[i]))
	}
	b.WriteString("\n")

	b.WriteString("GOODNESS OF FIT\n")
	b.WriteString(fmt.Sprintf("  SS_regression = %.4f\n", r.SSReg))
	b.WriteString(fmt.Sprintf("  SS_residual   = %.4f\n", r.SSRes))
	b.WriteString(fmt.Sprintf("  SS_total      = %.4f\n", r.SSTot))
	b.WriteString(fmt.Sprintf("  R^2           = %.4f\n", r.RSquared))
	b.WriteString(fmt.Sprintf("  MSE           = %s\n\n", formatStat(r.MSE)))

	b.WriteString("STANDARD ERRORS & T-STATISTICS\n")
	b.WriteString(fmt.Sprintf("  SE(b0) = %-10s t(b0) = %s\n", formatStat(r.SEBeta0), formatStat(r.TBeta0)))
	b.WriteString(fmt.Sprintf("  SE(b1) = %-10s t(b1) = %s\n", formatStat(r.SEBeta1), formatStat(r.TBeta1)))
	return b.String()
}

func writeMatrix(b *strings.Builder, name string, m [2][2]float64) {
	b.WriteString(fmt.Sprintf("  %s:\n", name))
	for _, row := range m {
		b.WriteString(fmt.Sprintf("    [%.4f, %.4f]\n", row[0], row[1]))
	}
}

func writeVector(b *strings.Builder, name string, v [2]float64) {
	b.WriteString(fmt.Sprintf("  %s:\n", name))
	b.WriteString(fmt.Sprintf("    [%.4f, %.4f]\n", v[0], v[1]))
}

// formatStat renders one diagnostic, with n/a standing in for the NaN an
// exact two-point fit produces and inf for a zero standard error.
func formatStat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "n/a"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return fmt.Sprintf("%.4f", v)
}

func formatCoef(v float64) string {
	return fmt.Sprintf("%.4f", v)
}
