package ilp

import (
	"context"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Master is the distributed search driver: it owns the pending queue and
// the incumbent, and dispatches nodes to a pool of worker goroutines
// communicating over a bus, standing in for the MPI rank-0 process
// coordinating worker ranks.
type Master struct {
	problem Problem
	rule    BranchRule
	workers int

	bus       *bus
	pending   []Problem
	idle      []int
	incumbent Solution
	counts    Counters

	onProgress func(counts Counters, pending int)
}

// NewMaster prepares a Master for problem, rule, and workers worker
// goroutines.
func NewMaster(problem Problem, rule BranchRule, workers int) *Master {
	idle := make([]int, workers)
	for i := range idle {
		idle[i] = i
	}
	_, n := problem.Dims()
	return &Master{
		problem:   problem,
		rule:      rule,
		workers:   workers,
		bus:       newBus(workers),
		idle:      idle,
		incumbent: Solution{Value: math.Inf(-1), Vars: mat.NewVecDense(n, nil)},
	}
}

// OnProgress registers a callback invoked after each worker message or
// pre-dispatch prune whenever Counters.Total is a multiple of 100, so it
// can fire more than once for the same Total.
func (m *Master) OnProgress(f func(counts Counters, pending int)) {
	m.onProgress = f
}

// Solve spawns the worker pool and runs the search to completion, or until
// ctx is canceled. It always broadcasts KILL to every worker before
// returning, so cancellation never leaks a worker goroutine.
func (m *Master) Solve(ctx context.Context) (Solution, error) {
	for rank := 0; rank < m.workers; rank++ {
		w := &worker{rank: rank, bus: m.bus, rule: m.rule}
		go w.run()
	}

	m.bootstrap()

	var cancelErr error
	for len(m.pending) > 0 || len(m.idle) < m.workers {
		m.dispatchReady()

		if len(m.idle) == m.workers {
			if err := ctx.Err(); err != nil {
				cancelErr = err
				break
			}
			continue
		}

		msg, err := m.bus.recvFromWorkerCtx(ctx)
		if err != nil {
			cancelErr = err
			break
		}
		m.handleOne(msg)
	}

	m.bus.broadcastKill()

	_, n := m.problem.Dims()
	return m.incumbent.Truncate(n), cancelErr
}

// bootstrap solves the root relaxation. An unbounded root leaves pending
// empty and the incumbent at -Inf; since no worker is ever dispatched, the
// main loop exits immediately and the single KILL broadcast at the end of
// Solve covers it, matching a bootstrap failure killing workers before the
// search gives up.
func (m *Master) bootstrap() {
	solution, finalPrimal, err := solveNode(m.problem)
	if err != nil {
		return
	}
	if solution.IsIntegral() {
		m.incumbent = solution
		return
	}
	lower, upper := branchNode(finalPrimal, m.rule)
	m.pending = append(m.pending, lower, upper)
}

// dispatchReady hands pending problems to idle workers until one side runs
// out, pruning any problem whose bound no longer beats the incumbent
// instead of dispatching it.
func (m *Master) dispatchReady() {
	for len(m.pending) > 0 && len(m.idle) > 0 {
		p := m.pending[0]
		m.pending = m.pending[1:]

		if !isBetter(nodeBound(p), m.incumbent.Value) {
			m.counts.Pruned++
			m.reportProgress()
			continue
		}

		rank := m.idle[0]
		m.idle = m.idle[1:]
		m.bus.isendTo(rank, envelope{Tag: TagProblem, Problem: p})
	}
}

// handleOne processes a single message received from a worker.
func (m *Master) handleOne(msg envelope) {
	switch msg.Tag {
	case TagNoSol:
		m.counts.Infeasible++
		m.counts.Total++
		m.idle = append(m.idle, msg.Rank)

	case TagIntSol:
		m.counts.Integral++
		m.counts.Total++
		if isBetter(msg.Solution.Value, m.incumbent.Value) {
			m.incumbent = msg.Solution
		}
		m.idle = append(m.idle, msg.Rank)

	case TagDecSol:
		m.counts.Decimal++
		m.counts.Total++
		proceed := isBetter(msg.Solution.Value, m.incumbent.Value)
		if !proceed {
			m.counts.Pruned++
			m.idle = append(m.idle, msg.Rank)
		}
		m.bus.isendTo(msg.Rank, envelope{Tag: TagProceed, Proceed: proceed})

	case TagProblem:
		m.pending = append(m.pending, msg.Problem)
	}

	m.reportProgress()
}

func (m *Master) reportProgress() {
	if m.onProgress != nil && m.counts.Total%100 == 0 {
		m.onProgress(m.counts, len(m.pending))
	}
}
