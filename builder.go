package ilp

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// ProblemBuilder is a fluent assembler for a Problem: callers declare
// variables and constraints in whatever mix of equalities, inequalities,
// and bounds is natural, and Build lowers them to the single-A,
// ≤-constraints-only, non-negative-orthant form the solver requires.
// Every declared variable is an integer decision variable, per the
// maximize cᵀx subject to Ax ≤ b, x ≥ 0, x ∈ ℤⁿ model this system solves.
type ProblemBuilder struct {
	maximize    bool
	variables   []*builderVariable
	constraints []*builderConstraint
}

type builderVariable struct {
	name        string
	coefficient float64
	upper       float64
	lower       float64
}

type builderExpression struct {
	coef     float64
	variable *builderVariable
}

type builderConstraint struct {
	builder     *ProblemBuilder
	expressions []builderExpression
	rhs         float64
	equality    bool
}

// NewProblemBuilder starts an empty builder.
func NewProblemBuilder() *ProblemBuilder {
	return &ProblemBuilder{maximize: true}
}

// AddVariable declares a new non-negative integer decision variable with
// objective coefficient 0 and returns a reference for further
// configuration.
func (b *ProblemBuilder) AddVariable(name string) *builderVariable {
	v := &builderVariable{name: name, lower: 0, upper: math.Inf(1)}
	b.variables = append(b.variables, v)
	return v
}

// SetCoeff sets v's coefficient in the objective function.
func (v *builderVariable) SetCoeff(coef float64) *builderVariable {
	v.coefficient = coef
	return v
}

// UpperBound sets v's inclusive upper bound.
func (v *builderVariable) UpperBound(bound float64) *builderVariable {
	v.upper = bound
	return v
}

// LowerBound sets v's inclusive lower bound. Must be non-negative; the
// model has no facility for variables unrestricted in sign.
func (v *builderVariable) LowerBound(bound float64) *builderVariable {
	v.lower = bound
	return v
}

// AddConstraint starts a new constraint with right-hand side 0; it is a ≤
// inequality unless EqualTo is called.
func (b *ProblemBuilder) AddConstraint() *builderConstraint {
	c := &builderConstraint{builder: b}
	b.constraints = append(b.constraints, c)
	return c
}

// AddExpression appends coef*v to the constraint's left-hand side. v must
// already have been declared on the same builder.
func (c *builderConstraint) AddExpression(coef float64, v *builderVariable) *builderConstraint {
	c.builder.indexOf(v)
	c.expressions = append(c.expressions, builderExpression{coef: coef, variable: v})
	return c
}

// EqualTo finalizes the constraint as an equality.
func (c *builderConstraint) EqualTo(rhs float64) *builderConstraint {
	c.equality = true
	c.rhs = rhs
	return c
}

// SmallerThanOrEqualTo finalizes the constraint as a ≤ inequality.
func (c *builderConstraint) SmallerThanOrEqualTo(rhs float64) *builderConstraint {
	c.equality = false
	c.rhs = rhs
	return c
}

// Maximize marks the objective for maximization (the model's native
// direction; this is the default).
func (b *ProblemBuilder) Maximize() *ProblemBuilder {
	b.maximize = true
	return b
}

// Minimize marks the objective for minimization, internally negating
// coefficients since the solver always maximizes.
func (b *ProblemBuilder) Minimize() *ProblemBuilder {
	b.maximize = false
	return b
}

func (b *ProblemBuilder) indexOf(v *builderVariable) int {
	for i, va := range b.variables {
		if va == v {
			return i
		}
	}
	panic("ilp: variable not declared on this builder")
}

// Build lowers the declared variables and constraints into a Problem:
// equalities split into a pair of opposing ≤ rows, upper bounds become a
// row per bounded variable, and any lower bound above 0 becomes a negated
// ≤ row, since the solver's non-negative orthant only captures x ≥ 0
// directly.
func (b *ProblemBuilder) Build() Problem {
	n := len(b.variables)

	c := mat.NewVecDense(n, nil)
	for i, v := range b.variables {
		k := v.coefficient
		if !b.maximize {
			k = -k
		}
		c.SetVec(i, k)
	}

	var rows [][]float64
	var rhs []float64

	for _, constraint := range b.constraints {
		row := make([]float64, n)
		for _, exp := range constraint.expressions {
			row[b.indexOf(exp.variable)] += exp.coef
		}

		if constraint.equality {
			neg := make([]float64, n)
			for i, v := range row {
				neg[i] = -v
			}
			rows = append(rows, row, neg)
			rhs = append(rhs, constraint.rhs, -constraint.rhs)
		} else {
			rows = append(rows, row)
			rhs = append(rhs, constraint.rhs)
		}
	}

	for i, v := range b.variables {
		if !math.IsInf(v.upper, 1) {
			row := make([]float64, n)
			row[i] = 1
			rows = append(rows, row)
			rhs = append(rhs, v.upper)
		}
		if v.lower > 0 {
			row := make([]float64, n)
			row[i] = -1
			rows = append(rows, row)
			rhs = append(rhs, -v.lower)
		}
	}

	m := len(rows)
	A := mat.NewDense(m, n, nil)
	for i, row := range rows {
		A.SetRow(i, row)
	}
	bVec := mat.NewVecDense(m, rhs)

	base := make([]int, m)
	for i := range base {
		base[i] = n + i
	}
	nonBase := make([]int, n)
	for i := range nonBase {
		nonBase[i] = i
	}

	return Problem{
		A:       A,
		b:       bVec,
		c:       c,
		z:       0,
		base:    base,
		nonBase: nonBase,
		dual:    false,
	}
}
