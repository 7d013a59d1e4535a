package ilp

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// integralityTolerance is intentionally looser than a Dictionary's pivot
// tolerance (maxError): a basic value that is within floating-point noise
// of an integer should still count as integral.
const integralityTolerance = 1e-8

// isIntegral reports whether value is within integralityTolerance of an
// integer: the tolerance band around value crosses an integer boundary
// exactly when flooring its two ends disagrees.
func isIntegral(value float64) bool {
	lower := math.Floor(value - integralityTolerance)
	upper := math.Floor(value + integralityTolerance)
	return lower != upper
}

// clean snaps value to the nearest integer when isIntegral would accept it,
// purely for display purposes.
func clean(value float64) float64 {
	if isIntegral(value) {
		return math.Floor(value-integralityTolerance) + 1
	}
	return value
}

// Solution is an objective value paired with a vector of decision variable
// values. Vars may be longer than the problem's structural variable count;
// callers truncate to the first n entries.
type Solution struct {
	Value float64
	Vars  *mat.VecDense
}

// IsIntegral reports whether every entry of the solution is within
// integralityTolerance of an integer.
func (s Solution) IsIntegral() bool {
	if s.Vars == nil {
		return false
	}
	for i := 0; i < s.Vars.Len(); i++ {
		if !isIntegral(s.Vars.AtVec(i)) {
			return false
		}
	}
	return true
}

// Truncate returns a copy of s whose Vars has been cut down to its first n
// entries, discarding any slack-variable tail.
func (s Solution) Truncate(n int) Solution {
	out := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		out.SetVec(i, s.Vars.AtVec(i))
	}
	return Solution{Value: s.Value, Vars: out}
}

// String renders the solution for diagnostic output, cleaning near-integer
// values for readability.
func (s Solution) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "  z: %v\n", clean(s.Value))

	n := s.Vars.Len()
	for i := 0; i < n; i++ {
		sep := "\n"
		if i == n-1 {
			sep = ""
		}
		fmt.Fprintf(&b, "%3s: %v%s", fmt.Sprintf("x%d", i), clean(s.Vars.AtVec(i)), sep)
	}
	return b.String()
}
