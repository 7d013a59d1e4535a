package ilp

// queuedNode pairs a pending Problem with the bookkeeping a BnbMiddleware
// needs to render it as part of the enumeration tree.
type queuedNode struct {
	problem Problem
	id      int
	parent  int
}

// Counters tallies the outcomes a search driver assigns to each node it
// finishes handling. Total counts solved nodes only: a node pruned on its
// bound before dispatch is counted in Pruned alone, while a node pruned
// after solving (its fractional objective does not beat the incumbent) is
// counted in Total and Decimal as well as Pruned.
type Counters struct {
	Integral   int
	Decimal    int
	Infeasible int
	Pruned     int
	Total      int
}

// nodeBound returns the LP bound a Problem carries for pruning purposes:
// its z field if primal, the negation of z if dual (a dual Problem's z is
// already the negated primal bound).
func nodeBound(p Problem) float64 {
	if p.dual {
		return -p.z
	}
	return p.z
}

// isBetter reports whether value strictly improves on incumbent.
func isBetter(value, incumbent float64) bool {
	return value > incumbent
}

// solveNode solves p to optimality. A non-nil error (always ErrUnbounded)
// means the node contributed nothing to the search; the caller counts it as
// infeasible-or-unbounded regardless of which side of the primal/dual
// transform actually went unbounded. When the solution is fractional,
// finalPrimal is the node's final dictionary in primal form, ready for the
// Brancher; it is the zero Problem otherwise.
func solveNode(p Problem) (solution Solution, finalPrimal Problem, err error) {
	solver := NewSolver(p)
	solution, err = solver.Solve()
	if err != nil {
		return Solution{}, Problem{}, err
	}
	if solution.IsIntegral() {
		return solution, Problem{}, nil
	}

	dict := solver.FinalProblem()
	if dict.dual {
		dict = dict.Dual()
	}
	return solution, dict, nil
}

// branchNode splits a fractional node's final (primal) dictionary into its
// two children using rule.
func branchNode(finalPrimal Problem, rule BranchRule) (lower, upper Problem) {
	return NewBrancher(rule).FirstBranches(finalPrimal)
}
