package ilp

import "errors"

// ErrUnbounded is returned by Solve when a relaxation's objective is
// unbounded over its feasible region.
var ErrUnbounded = errors.New("ilp: relaxation is unbounded")

// Solver drives a Dictionary to optimality with the revised simplex method.
type Solver struct {
	problem Problem
	dict    *Dictionary
}

// NewSolver prepares a Solver for p. p is not mutated.
func NewSolver(p Problem) *Solver {
	return &Solver{problem: p, dict: newDictionary(p)}
}

// Solve runs the revised simplex method to optimality and returns the
// decision-variable solution, always in primal form regardless of whether p
// itself was a dual formulation. It returns ErrUnbounded when the
// relaxation is unbounded.
func (s *Solver) Solve() (Solution, error) {
	runToFinality(s.dict)
	if s.dict.state == unbounded {
		return Solution{}, ErrUnbounded
	}

	dict := s.dict
	if s.problem.dual {
		primal := dict.toProblem().Dual()
		dict = newDictionary(primal)
	}

	// getSolution already restricts to dict's own structural-variable count;
	// when s.problem was dual, that count belongs to the recovered primal,
	// not to s.problem itself, so no further truncation is needed or safe.
	return dict.getSolution(), nil
}

// FinalProblem exports the Dictionary reached by the last Solve call, in
// whichever form (primal or dual) the Solver was constructed with, for the
// Brancher to carve child nodes from. Solve must have returned a nil error
// before this is called.
func (s *Solver) FinalProblem() Problem {
	return s.dict.toProblem()
}

func runToFinality(d *Dictionary) {
	for d.canPivot() {
		d.pivot()
	}
}
