package regress

import "fmt"

// SingularMatrixError indicates X'X could not be inverted because its
// determinant is (numerically) zero, which happens when every x value is
// the same.
type SingularMatrixError struct {
	Det       float64
	Tolerance float64
}

func (e *SingularMatrixError) Error() string {
	return fmt.Sprintf("singular X'X matrix: |det| = %g is below tolerance %g (x values carry no variation)", e.Det, e.Tolerance)
}

// DegenerateResponseError indicates every y value is identical, so the total
// sum of squares is zero and R^2 is undefined.
type DegenerateResponseError struct {
	Y float64
}

func (e *DegenerateResponseError) Error() string {
	return fmt.Sprintf("degenerate response: all y values equal %g, R^2 is undefined", e.Y)
}

// InsufficientDataError indicates fewer observations than the two the line
// fit needs.
type InsufficientDataError struct {
	N int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: need at least 2 observations, got %d", e.N)
}
