package sim

// runTimeslice dispatches the head of n's ready queue for up to one
// quantum, interpreting DOOP/BLOCK/SEND/RECV/HALT. It reports whether any
// work happened (a process was dequeued), which the driver uses as one of
// its progress signals.
func (e *Engine) runTimeslice(n *Node, trace EventSink) bool {
	p, ok := n.dequeueReady()
	if !ok {
		return false
	}

	// Defensive: a ready-queue entry should never already be finished or
	// past the end of its program (invariant: pc == op_count implies
	// FINISHED). Guard anyway and treat as a silent no-op.
	if p.State == StateFinished || p.AtEnd() {
		return true
	}

	p.State = StateRunning
	trace.Emit(n.ID, n.Clock, p.LocalPID, "running")

	used := 0
	yielded := false
	for used < n.Quantum && !p.AtEnd() {
		op := p.Program[p.PC]
		switch op.Kind {
		case OpDOOP:
			consume := op.Arg
			if room := n.Quantum - used; consume > room {
				consume = room
			}
			n.Clock += consume
			p.RunTime += consume
			n.addWaitReady(consume, p)
			used += consume
			op.Arg -= consume
			if op.Arg == 0 {
				p.PC++
			} else {
				p.Program[p.PC] = op
			}

		case OpBLOCK:
			p.UnblockTime = n.Clock + op.Arg
			p.BlockTime += op.Arg
			p.clearWish()
			p.PC++
			p.State = StateBlocked
			trace.Emit(n.ID, n.Clock, p.LocalPID, "blocked")
			n.addBlocked(p)
			yielded = true

		case OpSEND:
			n.Clock++
			p.RunTime++
			n.addWaitReady(1, p)
			used++
			p.WantDstAddr = op.Arg
			p.WantSrcAddr = 0
			p.UnblockTime = 0
			p.State = StateBlocked
			trace.Emit(n.ID, n.Clock, p.LocalPID, "blocked (send)")
			n.addBlocked(p)
			e.Registry.Add(p)
			e.tryMatchNow(n, p, trace)
			yielded = true

		case OpRECV:
			n.Clock++
			p.RunTime++
			n.addWaitReady(1, p)
			used++
			p.WantSrcAddr = op.Arg
			p.WantDstAddr = 0
			p.UnblockTime = 0
			p.State = StateBlocked
			trace.Emit(n.ID, n.Clock, p.LocalPID, "blocked (recv)")
			n.addBlocked(p)
			e.Registry.Add(p)
			e.tryMatchNow(n, p, trace)
			yielded = true

		case OpHALT:
			p.PC++
			p.State = StateFinished
			p.FinishTime = n.Clock
			trace.Emit(n.ID, n.Clock, p.LocalPID, "finished")
			yielded = true

		default:
			// Unknown opcode kind reaching the engine: defensively
			// advance pc and keep going within the quantum.
			p.PC++
		}

		if yielded {
			break
		}
	}

	if !yielded {
		if p.AtEnd() {
			// Safety path: program ran off the end without an explicit
			// HALT. Collapse straight to finished.
			p.State = StateFinished
			p.FinishTime = n.Clock
			trace.Emit(n.ID, n.Clock, p.LocalPID, "finished")
		} else {
			// Quantum exhausted while still runnable: preempt back to
			// ready. The preempted process's own wait is not self-credited
			// here (see Open Question 1): only other ready processes
			// accrue wait while this one runs, matching the worked
			// end-to-end scenarios.
			n.enqueueReady(p)
			trace.Emit(n.ID, n.Clock, p.LocalPID, "ready")
		}
	}

	return true
}
