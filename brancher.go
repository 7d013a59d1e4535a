package ilp

import "math"

// BranchRule selects which fractional basic row a Brancher splits on.
type BranchRule int

const (
	// SmallestFractionalRow picks the lowest-indexed non-integral basic
	// row, the deterministic default that keeps the search reproducible.
	SmallestFractionalRow BranchRule = iota

	// MostFractionalRow picks the non-integral basic row whose value is
	// closest to a half-integer, a heuristic alternative that sometimes
	// shrinks the tree by branching where the relaxation is least sure.
	MostFractionalRow
)

// Brancher splits a fractional relaxed node's final dictionary into two
// child Problems, each tightening the branching row's basic variable
// towards an integer.
type Brancher struct {
	Rule BranchRule
}

// NewBrancher returns a Brancher using rule.
func NewBrancher(rule BranchRule) *Brancher {
	return &Brancher{Rule: rule}
}

// FirstBranches splits dict, the final-dictionary Problem of a fractional
// relaxed node, into lower and upper child Problems, each exported in dual
// form so the next Solver invocation starts from a dual-feasible basis.
func (br *Brancher) FirstBranches(dict Problem) (lower, upper Problem) {
	row := br.chooseRow(dict)

	_, n := dict.Dims()
	beta := dict.b.AtVec(row)

	ai := make([]float64, n)
	for j := 0; j < n; j++ {
		ai[j] = dict.A.At(row, j)
	}

	negAi := make([]float64, n)
	for j := 0; j < n; j++ {
		negAi[j] = -ai[j]
	}

	lowerRHS := math.Floor(beta) - beta
	upperRHS := beta - math.Ceil(beta)

	lowerChild := dict.appendRow(negAi, lowerRHS)
	upperChild := dict.appendRow(ai, upperRHS)

	return lowerChild.Dual(), upperChild.Dual()
}

// chooseRow applies br.Rule over dict's basic values to pick the branching
// row.
func (br *Brancher) chooseRow(dict Problem) int {
	m, _ := dict.Dims()

	switch br.Rule {
	case MostFractionalRow:
		best := -1
		bestDist := math.Inf(1)
		for i := 0; i < m; i++ {
			v := dict.b.AtVec(i)
			if isIntegral(v) {
				continue
			}
			dist := math.Abs(v - math.Floor(v) - 0.5)
			if best == -1 || dist < bestDist {
				best = i
				bestDist = dist
			}
		}
		return best
	default: // SmallestFractionalRow
		for i := 0; i < m; i++ {
			if !isIntegral(dict.b.AtVec(i)) {
				return i
			}
		}
		return -1
	}
}
