package ilp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func sampleProblem() Problem {
	return Problem{
		A: mat.NewDense(2, 2, []float64{
			1, 1,
			2, 1,
		}),
		b:       mat.NewVecDense(2, []float64{4, 6}),
		c:       mat.NewVecDense(2, []float64{3, 2}),
		z:       0,
		base:    []int{2, 3},
		nonBase: []int{0, 1},
		dual:    false,
	}
}

func TestProblem_Dims(t *testing.T) {
	p := sampleProblem()
	m, n := p.Dims()
	assert.Equal(t, 2, m)
	assert.Equal(t, 2, n)
}

func TestProblem_DualOfDualIsPrimal(t *testing.T) {
	p := sampleProblem()
	got := p.Dual().Dual()

	assert.True(t, mat.EqualApprox(p.A, got.A, 1e-12))
	assert.True(t, mat.EqualApprox(p.b, got.b, 1e-12))
	assert.True(t, mat.EqualApprox(p.c, got.c, 1e-12))
	assert.Equal(t, p.z, got.z)
	assert.Equal(t, p.base, got.base)
	assert.Equal(t, p.nonBase, got.nonBase)
	assert.Equal(t, p.dual, got.dual)
}

func TestProblem_DualTogglesFlagAndSwapsBasis(t *testing.T) {
	p := sampleProblem()
	dual := p.Dual()

	assert.True(t, dual.dual)
	assert.Equal(t, p.nonBase, dual.base)
	assert.Equal(t, p.base, dual.nonBase)

	m, n := dual.Dims()
	assert.Equal(t, 2, m)
	assert.Equal(t, 2, n)
}

func TestProblem_Copy_IsIndependent(t *testing.T) {
	p := sampleProblem()
	cp := p.Copy()

	cp.A.Set(0, 0, 99)
	cp.b.SetVec(0, 99)
	cp.base[0] = 99

	assert.Equal(t, 1.0, p.A.At(0, 0))
	assert.Equal(t, 4.0, p.b.AtVec(0))
	assert.Equal(t, 2, p.base[0])
}

func TestProblem_AppendRow(t *testing.T) {
	p := sampleProblem()
	m, n := p.Dims()

	child := p.appendRow([]float64{-1, 0}, -2)

	newM, newN := child.Dims()
	assert.Equal(t, m+1, newM)
	assert.Equal(t, n, newN)
	assert.Equal(t, -1.0, child.A.At(m, 0))
	assert.Equal(t, 0.0, child.A.At(m, 1))
	assert.Equal(t, -2.0, child.b.AtVec(m))
	assert.Equal(t, m+n, child.base[len(child.base)-1])

	// original untouched
	origM, _ := p.Dims()
	assert.Equal(t, 2, origM)
}

func TestProblem_ToAMPL_ContainsVariablesAndConstraints(t *testing.T) {
	p := sampleProblem()
	out := p.ToAMPL()

	assert.Contains(t, out, "var x0 integer >= 0;")
	assert.Contains(t, out, "var x1 integer >= 0;")
	assert.Contains(t, out, "maximize objVal")
	assert.Contains(t, out, "c0: 0")
	assert.Contains(t, out, "c1: 0")
}

func TestProblem_String_DoesNotPanic(t *testing.T) {
	p := sampleProblem()
	assert.NotPanics(t, func() { _ = p.String() })
}
