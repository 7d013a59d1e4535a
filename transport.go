package ilp

import "context"

// Tag identifies the kind of payload an envelope carries, the Go-channel
// realization of the message tags a point-to-point transport would attach
// to each send.
type Tag int

const (
	TagProblem Tag = iota
	TagIntSol
	TagDecSol
	TagNoSol
	TagProceed
	TagKill
)

func (t Tag) String() string {
	switch t {
	case TagProblem:
		return "PROBLEM"
	case TagIntSol:
		return "INT_SOL"
	case TagDecSol:
		return "DEC_SOL"
	case TagNoSol:
		return "NO_SOL"
	case TagProceed:
		return "PROCEED"
	case TagKill:
		return "KILL"
	default:
		return "UNKNOWN"
	}
}

// envelope is one message crossing the bus: a tagged union carrying exactly
// the payload its Tag implies.
type envelope struct {
	Tag      Tag
	Rank     int
	Problem  Problem
	Solution Solution
	Proceed  bool
}

// bus is an in-process, channel-backed stand-in for a reliable, tagged,
// ordered point-to-point message transport. Each worker rank owns one
// buffered down channel (master to worker: PROBLEM, PROCEED, KILL); all
// workers share one buffered up channel (worker to master: PROBLEM,
// INT_SOL, DEC_SOL, NO_SOL), with envelope.Rank identifying the source.
// Buffered sends model isend: the caller never blocks on delivery.
type bus struct {
	down []chan envelope
	up   chan envelope
}

// newBus allocates a bus wired for the given worker count.
func newBus(workers int) *bus {
	down := make([]chan envelope, workers)
	for i := range down {
		down[i] = make(chan envelope, 8)
	}
	return &bus{
		down: down,
		up:   make(chan envelope, 8*workers+8),
	}
}

// isendTo is the master's non-blocking send to worker rank.
func (b *bus) isendTo(rank int, e envelope) {
	b.down[rank] <- e
}

// isendUp is a worker's non-blocking send to the master. e.Rank is set to
// rank so the master's handler knows which worker to reactivate.
func (b *bus) isendUp(rank int, e envelope) {
	e.Rank = rank
	b.up <- e
}

// recvFromMaster blocks until a message addressed to rank arrives.
func (b *bus) recvFromMaster(rank int) envelope {
	return <-b.down[rank]
}

// recvFromWorker blocks until any worker message arrives.
func (b *bus) recvFromWorker() envelope {
	return <-b.up
}

// iprobe is the master's non-blocking check for a pending worker message.
func (b *bus) iprobe() (envelope, bool) {
	select {
	case e := <-b.up:
		return e, true
	default:
		return envelope{}, false
	}
}

// recvFromWorkerCtx blocks until a worker message arrives or ctx is
// canceled, whichever comes first. A canceled ctx leaves already-dispatched
// workers running in the background, unreachable until they next check in;
// the caller must still broadcastKill to reclaim them before exiting.
func (b *bus) recvFromWorkerCtx(ctx context.Context) (envelope, error) {
	select {
	case e := <-b.up:
		return e, nil
	case <-ctx.Done():
		return envelope{}, ctx.Err()
	}
}

// broadcastKill sends KILL to every worker rank.
func (b *bus) broadcastKill() {
	for rank := range b.down {
		b.isendTo(rank, envelope{Tag: TagKill})
	}
}
