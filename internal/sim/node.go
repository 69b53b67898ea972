package sim

// PendingEntry is a deferred release scheduled by the rendezvous matcher: at
// DueTime the process transitions to FINISHED (if IsFinish) or READY.
type PendingEntry struct {
	Process  *Process
	DueTime  int
	IsFinish bool
}

// Node is one simulated compute resource: its own clock, a FIFO ready queue,
// an unordered blocked list, and a pending-release list for rendezvous
// releases (timed BLOCKs are released straight from the blocked list). Node
// ids are 1-based and dense.
type Node struct {
	ID      int
	Quantum int
	Clock   int

	Resident []*Process
	Ready    []*Process
	Blocked  []*Process
	Pending  []*PendingEntry
}

// NewNode constructs an empty Node with the given id and quantum.
func NewNode(id, quantum int) *Node {
	return &Node{ID: id, Quantum: quantum}
}

// enqueueReady appends p to the tail of the ready queue and marks it READY.
func (n *Node) enqueueReady(p *Process) {
	p.State = StateReady
	n.Ready = append(n.Ready, p)
}

// dequeueReady pops the head of the ready queue, FIFO.
func (n *Node) dequeueReady() (*Process, bool) {
	if len(n.Ready) == 0 {
		return nil, false
	}
	p := n.Ready[0]
	n.Ready = n.Ready[1:]
	return p, true
}

// addBlocked appends p to the (unordered) blocked list.
func (n *Node) addBlocked(p *Process) {
	p.State = StateBlocked
	n.Blocked = append(n.Blocked, p)
}

// removeBlocked removes p from the blocked list by identity. No-op if absent.
func (n *Node) removeBlocked(p *Process) {
	for i, q := range n.Blocked {
		if q == p {
			n.Blocked = append(n.Blocked[:i], n.Blocked[i+1:]...)
			return
		}
	}
}

// addPending schedules a release for p. A process appears in at most one
// pending entry per node (callers only ever block/match a READY-dispatched
// or BLOCKED process once).
func (n *Node) addPending(p *Process, dueTime int, isFinish bool) {
	n.Pending = append(n.Pending, &PendingEntry{Process: p, DueTime: dueTime, IsFinish: isFinish})
}

// anyWorkLeft reports whether this node has anything ready, blocked, or
// pending. The driver does not consult it: Step ends the run when timeSkip
// finds no future event on any node.
func (n *Node) anyWorkLeft() bool {
	return len(n.Ready) > 0 || len(n.Blocked) > 0 || len(n.Pending) > 0
}

// nextEventTime returns the smallest due/unblock time strictly greater than
// the node's current clock, across pending entries and timed BLOCKs, and
// whether any such event exists.
func (n *Node) nextEventTime() (int, bool) {
	best := 0
	found := false
	consider := func(t int) {
		if t > n.Clock && (!found || t < best) {
			best = t
			found = true
		}
	}
	for _, pe := range n.Pending {
		consider(pe.DueTime)
	}
	for _, p := range n.Blocked {
		if p.UnblockTime > 0 {
			consider(p.UnblockTime)
		}
	}
	return best, found
}

// addWaitReady credits every process currently in the ready queue with
// delta ticks of wait time, except the excluded process (the one actually
// dispatched, which accrues no wait time for its own slice, including when it
// is preempted).
func (n *Node) addWaitReady(delta int, excluded *Process) {
	for _, p := range n.Ready {
		if p == excluded {
			continue
		}
		p.WaitTime += delta
	}
}
