package sim

// tryMatchNow looks for a registered counterpart for p (which must have just
// entered the BLOCKED/rendezvous state) and, if found, completes the match:
// both sides consume their SEND/RECV opcode and are scheduled for release on
// their own home node's clock at triggerNode.Clock+1.
func (e *Engine) tryMatchNow(triggerNode *Node, p *Process, trace EventSink) bool {
	var q *Process
	switch {
	case p.WantDstAddr > 0:
		target, mine := p.WantDstAddr, p.Address()
		q = e.Registry.find(p, func(c *Process) bool {
			return c.State == StateBlocked && c.WantSrcAddr > 0 &&
				target == c.Address() && c.WantSrcAddr == mine
		})
	case p.WantSrcAddr > 0:
		target, mine := p.WantSrcAddr, p.Address()
		q = e.Registry.find(p, func(c *Process) bool {
			return c.State == StateBlocked && c.WantDstAddr > 0 &&
				c.WantDstAddr == mine && target == c.Address()
		})
	default:
		return false
	}
	if q == nil {
		return false
	}
	e.completeMatch(triggerNode, p, q)
	return true
}

// completeMatch consumes the SEND/RECV instruction on both sides, updates
// sends/recvs counters, and schedules both releases at the same due time.
func (e *Engine) completeMatch(triggerNode *Node, p, q *Process) {
	sender, receiver := p, q
	if p.WantSrcAddr > 0 {
		sender, receiver = q, p
	}

	sender.PC++
	receiver.PC++
	sender.Sends++
	receiver.Recvs++
	sender.clearWish()
	receiver.clearWish()

	due := triggerNode.Clock + 1
	e.scheduleRelease(sender, due)
	e.scheduleRelease(receiver, due)

	e.Registry.Remove(sender)
	e.Registry.Remove(receiver)
}

// scheduleRelease moves p from its home node's blocked list into a pending
// release at dueTime, collapsing straight to FINISHED if its next
// instruction (after the just-consumed SEND/RECV) is HALT.
func (e *Engine) scheduleRelease(p *Process, dueTime int) {
	home := e.nodeByID(p.NodeID)
	home.removeBlocked(p)
	home.addPending(p, dueTime, p.NextIsHalt())
}

// sweepGlobalMatches scans the registry in insertion order and invokes
// tryMatchNow on the first process that finds a match, using that process's
// own home node as the trigger node. Returns whether any match occurred.
func (e *Engine) sweepGlobalMatches(trace EventSink) bool {
	snapshot := append([]*Process(nil), e.Registry.entries...)
	for _, p := range snapshot {
		if !e.Registry.Contains(p) {
			continue // already matched earlier in this same sweep
		}
		home := e.nodeByID(p.NodeID)
		if e.tryMatchNow(home, p, trace) {
			return true
		}
	}
	return false
}
