package sim

// Registry is the global cross-node rendezvous registry: the set of
// processes currently blocked on SEND or RECV, kept in insertion order so
// sweeps are deterministic. It is owned by an Engine, never a package-level
// singleton, so multiple independent simulations can run side by side
// (see Design Notes, "Global mutable registry").
type Registry struct {
	entries []*Process
}

// Add registers p. Callers must ensure p is BLOCKED with exactly one wish
// field set before calling.
func (r *Registry) Add(p *Process) {
	r.entries = append(r.entries, p)
}

// Remove deregisters p by identity. No-op if absent.
func (r *Registry) Remove(p *Process) {
	for i, q := range r.entries {
		if q == p {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return
		}
	}
}

// find returns the first registered process (in insertion order) other than
// skip for which pred holds.
func (r *Registry) find(skip *Process, pred func(*Process) bool) *Process {
	for _, q := range r.entries {
		if q == skip {
			continue
		}
		if pred(q) {
			return q
		}
	}
	return nil
}

// Contains reports whether p is currently registered, by identity. Exported
// for property tests that check registry membership against process state
// (spec invariant P2) from outside the package.
func (r *Registry) Contains(p *Process) bool {
	for _, q := range r.entries {
		if q == p {
			return true
		}
	}
	return false
}
