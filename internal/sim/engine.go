package sim

import "context"

// Engine owns one complete, independent simulation: its nodes, their
// processes, and the cross-node rendezvous registry. Nothing here is
// package-level state, so callers can run many Engines concurrently (see
// internal/batch) as long as each Engine is only driven by one goroutine at
// a time.
type Engine struct {
	Nodes     []*Node
	Registry  Registry
	Processes []*Process

	started bool
}

// NewEngine builds an Engine with nodeCount nodes (ids 1..nodeCount), each
// sharing the given quantum, and no resident processes yet.
func NewEngine(nodeCount, quantum int) *Engine {
	e := &Engine{Nodes: make([]*Node, nodeCount)}
	for i := 0; i < nodeCount; i++ {
		e.Nodes[i] = NewNode(i+1, quantum)
	}
	return e
}

func (e *Engine) nodeByID(id int) *Node {
	return e.Nodes[id-1]
}

// AddProcess registers p as resident on its home node. Must be called
// before Start. p.State should be StateNew.
func (e *Engine) AddProcess(p *Process) {
	e.Processes = append(e.Processes, p)
	home := e.nodeByID(p.NodeID)
	home.Resident = append(home.Resident, p)
}

// Start performs the fixed time-0 emission order: for each node in
// ascending id order, emit "new" for every resident process (input order),
// then emit "ready" for every resident process and enqueue it.
func (e *Engine) Start(trace EventSink) {
	if e.started {
		return
	}
	e.started = true
	for _, n := range e.Nodes {
		for _, p := range n.Resident {
			trace.Emit(n.ID, n.Clock, p.LocalPID, "new")
		}
	}
	for _, n := range e.Nodes {
		for _, p := range n.Resident {
			n.enqueueReady(p)
			trace.Emit(n.ID, n.Clock, p.LocalPID, "ready")
		}
	}
}

// Step runs one driver iteration (spec §4.5): flush pending releases,
// expire timed blocks, run one time-slice per node (all in ascending
// node-id order), then fall back to a registry sweep, then a single-node
// time-skip. Returns whether the simulation can make further progress —
// false means quiescence: either every process finished, or whatever
// remains (processes deadlocked on an unmatchable rendezvous) has no
// future event that could ever unstick it, per §4.5's termination rule.
func (e *Engine) Step(trace EventSink) bool {
	progressed := false

	for _, n := range e.Nodes {
		if n.flushPending(trace) {
			progressed = true
		}
	}
	for _, n := range e.Nodes {
		if n.expireBlock(trace) {
			progressed = true
		}
	}
	for _, n := range e.Nodes {
		if e.runTimeslice(n, trace) {
			progressed = true
		}
	}

	if !progressed {
		progressed = e.sweepGlobalMatches(trace)
	}

	if !progressed {
		return e.timeSkip()
	}

	return true
}

// timeSkip advances exactly one node's clock to its earliest future event,
// breaking ties by lowest node id, when no other progress is possible.
// Reports whether any node had a future event to skip to; false means no
// node will ever progress again (quiescence, possibly with permanently
// deadlocked processes left behind).
func (e *Engine) timeSkip() bool {
	bestIdx := -1
	bestTime := 0
	for i, n := range e.Nodes {
		t, ok := n.nextEventTime()
		if !ok {
			continue
		}
		if bestIdx == -1 || t < bestTime {
			bestIdx = i
			bestTime = t
		}
	}
	if bestIdx == -1 {
		return false
	}
	e.Nodes[bestIdx].Clock = bestTime
	return true
}

// UnfinishedCount returns the number of processes that never reached
// FINISHED — non-zero only when some process deadlocked on an unmatchable
// rendezvous. Used for the optional verbose diagnostic log line; it is
// never reported as an error (§7, DeadlockedRendezvous).
func (e *Engine) UnfinishedCount() int {
	n := 0
	for _, p := range e.Processes {
		if p.State != StateFinished {
			n++
		}
	}
	return n
}

// Run drives the engine to quiescence, emitting events to trace and,
// afterward, one summary row per FINISHED process to summary (sorted by
// summary's own Flush). It returns ctx.Err() if ctx is canceled between
// iterations, leaving the engine in its partially-run state; the summary sink
// still receives a row for every process that had finished by then.
// Otherwise it returns the error from the summary sink's Flush.
func (e *Engine) Run(ctx context.Context, trace EventSink, summary SummarySink) error {
	e.Start(trace)

	for {
		select {
		case <-ctx.Done():
			e.emitSummary(summary)
			return ctx.Err()
		default:
		}
		if !e.Step(trace) {
			break
		}
	}

	return e.emitSummary(summary)
}

func (e *Engine) emitSummary(summary SummarySink) error {
	for _, p := range e.Processes {
		if p.State != StateFinished {
			continue
		}
		summary.Row(SummaryRow{
			FinishTime: p.FinishTime,
			NodeID:     p.NodeID,
			LocalPID:   p.LocalPID,
			Run:        p.RunTime,
			Block:      p.BlockTime,
			Wait:       p.WaitTime,
			Sends:      p.Sends,
			Recvs:      p.Recvs,
		})
	}
	return summary.Flush()
}
