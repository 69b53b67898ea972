package sim

// flushPending applies every pending entry whose due time has arrived,
// emitting the corresponding transition and removing the entry. Entries due
// in the future are left in place. Reports whether anything fired.
func (n *Node) flushPending(trace EventSink) bool {
	if len(n.Pending) == 0 {
		return false
	}
	fired := false
	remaining := n.Pending[:0]
	for _, pe := range n.Pending {
		if pe.DueTime != n.Clock {
			remaining = append(remaining, pe)
			continue
		}
		fired = true
		p := pe.Process
		if pe.IsFinish {
			p.State = StateFinished
			p.FinishTime = n.Clock
			trace.Emit(n.ID, n.Clock, p.LocalPID, "finished")
		} else {
			n.enqueueReady(p)
			trace.Emit(n.ID, n.Clock, p.LocalPID, "ready")
		}
	}
	n.Pending = remaining
	return fired
}

// expireBlock releases every BLOCKED process whose timed-BLOCK unblock time
// has arrived. If its next instruction is HALT, the release collapses
// directly into FINISHED (mirroring the matcher's release behavior);
// otherwise it returns to READY. Reports whether anything fired.
func (n *Node) expireBlock(trace EventSink) bool {
	if len(n.Blocked) == 0 {
		return false
	}
	fired := false
	remaining := n.Blocked[:0]
	for _, p := range n.Blocked {
		if p.UnblockTime == 0 || n.Clock < p.UnblockTime {
			remaining = append(remaining, p)
			continue
		}
		fired = true
		p.UnblockTime = 0
		if p.NextIsHalt() {
			p.PC++
			p.State = StateFinished
			p.FinishTime = n.Clock
			trace.Emit(n.ID, n.Clock, p.LocalPID, "finished")
		} else {
			n.enqueueReady(p)
			trace.Emit(n.ID, n.Clock, p.LocalPID, "ready")
		}
	}
	n.Blocked = remaining
	return fired
}
