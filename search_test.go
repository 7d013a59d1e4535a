package ilp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestNodeBound_PrimalUsesZDirectly(t *testing.T) {
	p := Problem{z: 5, dual: false}
	assert.Equal(t, 5.0, nodeBound(p))
}

func TestNodeBound_DualNegatesZ(t *testing.T) {
	p := Problem{z: 5, dual: true}
	assert.Equal(t, -5.0, nodeBound(p))
}

func TestIsBetter_StrictImprovement(t *testing.T) {
	assert.True(t, isBetter(5, 4))
	assert.False(t, isBetter(4, 4))
	assert.False(t, isBetter(3, 4))
}

func TestSolveNode_IntegralReturnsNoFinalPrimal(t *testing.T) {
	// maximize x0 s.t. x0<=4, an already-integral optimum.
	p := Problem{
		A:       mat.NewDense(1, 1, []float64{1}),
		b:       mat.NewVecDense(1, []float64{4}),
		c:       mat.NewVecDense(1, []float64{1}),
		base:    []int{1},
		nonBase: []int{0},
	}

	sol, finalPrimal, err := solveNode(p)
	require.NoError(t, err)
	assert.True(t, sol.IsIntegral())
	assert.Nil(t, finalPrimal.A)
}

func TestSolveNode_FractionalReturnsFinalPrimal(t *testing.T) {
	sol, finalPrimal, err := solveNode(fractionalProblem())
	require.NoError(t, err)
	assert.False(t, sol.IsIntegral())
	assert.NotNil(t, finalPrimal.A)
	assert.False(t, finalPrimal.dual, "solveNode always hands back a primal-form dictionary")
}

func TestSolveNode_UnboundedReturnsError(t *testing.T) {
	p := Problem{
		A:       mat.NewDense(1, 1, []float64{0}),
		b:       mat.NewVecDense(1, []float64{4}),
		c:       mat.NewVecDense(1, []float64{1}),
		base:    []int{1},
		nonBase: []int{0},
	}

	_, _, err := solveNode(p)
	assert.ErrorIs(t, err, ErrUnbounded)
}

func TestBranchNode_ProducesTwoDualChildren(t *testing.T) {
	_, finalPrimal, err := solveNode(fractionalProblem())
	require.NoError(t, err)

	lower, upper := branchNode(finalPrimal, SmallestFractionalRow)
	assert.True(t, lower.dual)
	assert.True(t, upper.dual)
}

// TestSolveNode_BranchedChildKeepsOriginalVariableCount guards against a
// dual-recovery bug where a branched child's own Dims (its row count grown
// by appendRow) was used to size the recovered solution instead of the
// structural-variable count of the LP it was branched from.
func TestSolveNode_BranchedChildKeepsOriginalVariableCount(t *testing.T) {
	root := fractionalProblem()
	_, rootN := root.Dims()

	_, finalPrimal, err := solveNode(root)
	require.NoError(t, err)

	lower, upper := branchNode(finalPrimal, SmallestFractionalRow)

	for _, child := range []Problem{lower, upper} {
		childSol, _, err := solveNode(child)
		require.NoError(t, err)
		assert.Equal(t, rootN, childSol.Vars.Len())
	}
}
