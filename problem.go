package ilp

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Problem is the data carrier for a relaxed LP node: maximize c^T x subject
// to A x <= b, x >= 0. base and nonBase partition [0, m+n) into the indices
// currently held basic and non-basic; indices below n name structural
// variables, indices at or above n name slack variables.
//
// dual marks this Problem as the dual formulation of some primal node; a
// Solver recovers the primal solution from it in a second pass.
type Problem struct {
	A *mat.Dense
	b *mat.VecDense
	c *mat.VecDense
	z float64

	base    []int
	nonBase []int
	dual    bool
}

// Dims returns the row and structural-variable counts of p.
func (p Problem) Dims() (m, n int) {
	return p.A.Dims()
}

// Dual returns the dual formulation of p: A' = -A^T, b' = -c, c' = -b,
// z' = -z, with base and nonBase swapped and the dual flag toggled.
func (p Problem) Dual() Problem {
	m, n := p.Dims()

	negAT := mat.NewDense(n, m, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			negAT.Set(i, j, -p.A.At(j, i))
		}
	}

	negC := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		negC.SetVec(i, -p.c.AtVec(i))
	}

	negB := mat.NewVecDense(m, nil)
	for i := 0; i < m; i++ {
		negB.SetVec(i, -p.b.AtVec(i))
	}

	return Problem{
		A:       negAT,
		b:       negC,
		c:       negB,
		z:       -p.z,
		base:    append([]int(nil), p.nonBase...),
		nonBase: append([]int(nil), p.base...),
		dual:    !p.dual,
	}
}

// Copy returns a deep copy of p.
func (p Problem) Copy() Problem {
	return Problem{
		A:       mat.DenseCopyOf(p.A),
		b:       copyVec(p.b),
		c:       copyVec(p.c),
		z:       p.z,
		base:    append([]int(nil), p.base...),
		nonBase: append([]int(nil), p.nonBase...),
		dual:    p.dual,
	}
}

// appendRow grows p with one additional constraint row and a fresh slack
// variable at global index m+n, used by the Brancher to carve off a child
// node. row has length n and rhs is its right-hand side.
func (p Problem) appendRow(row []float64, rhs float64) Problem {
	m, n := p.Dims()

	newA := mat.NewDense(m+1, n, nil)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			newA.Set(i, j, p.A.At(i, j))
		}
	}
	newA.SetRow(m, row)

	newB := mat.NewVecDense(m+1, nil)
	for i := 0; i < m; i++ {
		newB.SetVec(i, p.b.AtVec(i))
	}
	newB.SetVec(m, rhs)

	return Problem{
		A:       newA,
		b:       newB,
		c:       copyVec(p.c),
		z:       p.z,
		base:    append(append([]int(nil), p.base...), m+n),
		nonBase: append([]int(nil), p.nonBase...),
		dual:    p.dual,
	}
}

func copyVec(v *mat.VecDense) *mat.VecDense {
	out := mat.NewVecDense(v.Len(), nil)
	out.CopyVec(v)
	return out
}

// String renders p for diagnostic output.
func (p Problem) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "A:\n%v\n", mat.Formatted(p.A))
	fmt.Fprintf(&b, "b:\n%v\n", mat.Formatted(p.b))
	fmt.Fprintf(&b, "c:\n%v\n", mat.Formatted(p.c))
	fmt.Fprintf(&b, "z: %v\n", p.z)
	fmt.Fprintf(&b, "base: %v\n", p.base)
	fmt.Fprintf(&b, "nonBase: %v\n", p.nonBase)
	fmt.Fprintf(&b, "dual: %v\n", p.dual)
	return b.String()
}

// ToAMPL renders p as an AMPL model, a diagnostic collaborator outside the
// core solver.
func (p Problem) ToAMPL() string {
	_, n := p.Dims()
	m, _ := p.Dims()

	var sb strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, "var x%d integer >= 0;\n", i)
	}

	sb.WriteString("\nmaximize objVal: 0")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, " + %v * x%d", p.c.AtVec(i), i)
	}
	sb.WriteString(";\n\n")

	for i := 0; i < m; i++ {
		fmt.Fprintf(&sb, "c%d: 0", i)
		for j := 0; j < n; j++ {
			fmt.Fprintf(&sb, " + %v * x%d", p.A.At(i, j), j)
		}
		fmt.Fprintf(&sb, " <= %v;\n", p.b.AtVec(i))
	}

	sb.WriteString("\nsolve;\ndisplay objVal")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, ", x%d", i)
	}
	sb.WriteString(";\nend;\n")
	return sb.String()
}
