package ilp

import (
	"context"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Serial is the degenerate W=0 search driver: it inlines the worker role
// into the same loop that owns the pending queue and incumbent, running
// the same algorithm the master/worker pair runs without any message
// passing.
type Serial struct {
	problem Problem
	rule    BranchRule

	pending   []queuedNode
	incumbent Solution
	counts    Counters
	nextID    int

	onProgress func(counts Counters, pending int)
	instrument BnbMiddleware
}

// NewSerial prepares a Serial driver for problem using rule to branch.
func NewSerial(problem Problem, rule BranchRule) *Serial {
	_, n := problem.Dims()
	return &Serial{
		problem:    problem,
		rule:       rule,
		incumbent:  Solution{Value: math.Inf(-1), Vars: mat.NewVecDense(n, nil)},
		instrument: dummyMiddleware{},
	}
}

// OnProgress registers a callback invoked after each handled node (solved
// or pruned) whenever Counters.Total is a multiple of 100, the periodic
// report master.py and serial.py both print. Nodes pruned while Total sits
// at such a multiple trigger it again with the same Total.
func (s *Serial) OnProgress(f func(counts Counters, pending int)) {
	s.onProgress = f
}

// Instrument attaches a BnbMiddleware observing every node this driver
// enqueues and resolves.
func (s *Serial) Instrument(m BnbMiddleware) {
	s.instrument = m
}

// Solve runs the search to completion, or until ctx is canceled, and
// returns the incumbent solution found so far (truncated to the problem's
// structural variable count) along with ctx.Err() if the search was cut
// short.
func (s *Serial) Solve(ctx context.Context) (Solution, error) {
	s.bootstrap()

	for len(s.pending) > 0 {
		if err := ctx.Err(); err != nil {
			_, n := s.problem.Dims()
			return s.incumbent.Truncate(n), err
		}

		node := s.pending[0]
		s.pending = s.pending[1:]

		if !isBetter(nodeBound(node.problem), s.incumbent.Value) {
			s.counts.Pruned++
			s.instrument.ProcessDecision(node.id, decisionPruned, nodeBound(node.problem))
			s.reportProgress()
			continue
		}

		solution, finalPrimal, err := solveNode(node.problem)
		s.counts.Total++

		switch {
		case err != nil:
			s.counts.Infeasible++
			s.instrument.ProcessDecision(node.id, decisionInfeasible, 0)
		case solution.IsIntegral():
			if isBetter(solution.Value, s.incumbent.Value) {
				s.counts.Integral++
				s.incumbent = solution
				s.instrument.ProcessDecision(node.id, decisionIntegralIncumbent, solution.Value)
			} else {
				s.counts.Integral++
				s.instrument.ProcessDecision(node.id, decisionIntegralWorse, solution.Value)
			}
		default:
			s.counts.Decimal++
			if isBetter(solution.Value, s.incumbent.Value) {
				s.instrument.ProcessDecision(node.id, decisionBranched, solution.Value)
				s.enqueueChildren(node.id, finalPrimal)
			} else {
				s.counts.Pruned++
				s.instrument.ProcessDecision(node.id, decisionPruned, solution.Value)
			}
		}

		s.reportProgress()
	}

	_, n := s.problem.Dims()
	return s.incumbent.Truncate(n), nil
}

func (s *Serial) bootstrap() {
	rootID := s.allocID()
	s.instrument.NewNode(rootID, rootID, s.problem.z)

	solution, finalPrimal, err := solveNode(s.problem)
	if err != nil {
		s.instrument.ProcessDecision(rootID, decisionInfeasible, 0)
		return
	}
	if solution.IsIntegral() {
		s.incumbent = solution
		s.instrument.ProcessDecision(rootID, decisionIntegralIncumbent, solution.Value)
		return
	}
	s.instrument.ProcessDecision(rootID, decisionBranched, solution.Value)
	s.enqueueChildren(rootID, finalPrimal)
}

func (s *Serial) enqueueChildren(parent int, finalPrimal Problem) {
	lower, upper := branchNode(finalPrimal, s.rule)
	for _, child := range []Problem{lower, upper} {
		id := s.allocID()
		s.instrument.NewNode(id, parent, nodeBound(child))
		s.pending = append(s.pending, queuedNode{problem: child, id: id, parent: parent})
	}
}

func (s *Serial) allocID() int {
	id := s.nextID
	s.nextID++
	return id
}

func (s *Serial) reportProgress() {
	if s.onProgress != nil && s.counts.Total%100 == 0 {
		s.onProgress(s.counts, len(s.pending))
	}
}
