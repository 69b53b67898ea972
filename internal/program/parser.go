// Package program implements the simulator's input tokenizer/parser, the
// external collaborator that turns the whitespace-separated stdin format
// (spec §6) into a flat, pre-expanded []sim.Operation per process — LOOP
// unrolled, unknown tokens skipped, HALT terminating a program.
package program

import (
	"io"

	"github.com/MaafiaTroodon/MultiProSim/internal/sim"
	"github.com/MaafiaTroodon/MultiProSim/internal/simerr"
)

// ProcessSpec is one parsed process, before the engine assigns it a global
// pid or a node-local pid.
type ProcessSpec struct {
	Name     string
	Size     int
	Priority int
	NodeID   int
	Program  []sim.Operation
}

// Header is the three leading integers of the input.
type Header struct {
	TotalProcs int
	NumNodes   int
	Quantum    int
}

// Parse reads the full simulator input from r: the header, then
// TotalProcs process records in order.
func Parse(r io.Reader) (Header, []ProcessSpec, error) {
	t := newTokenizer(r)

	hdr, err := parseHeader(t)
	if err != nil {
		return Header{}, nil, err
	}

	specs := make([]ProcessSpec, 0, hdr.TotalProcs)
	for i := 0; i < hdr.TotalProcs; i++ {
		spec, err := parseProcess(t, i)
		if err != nil {
			return Header{}, nil, err
		}
		specs = append(specs, spec)
	}
	return hdr, specs, nil
}

func parseHeader(t *tokenizer) (Header, error) {
	total, ok := t.nextInt()
	if !ok {
		return Header{}, simerr.WrapHeader("expected total_procs")
	}
	nodes, ok := t.nextInt()
	if !ok {
		return Header{}, simerr.WrapHeader("expected num_nodes")
	}
	quantum, ok := t.nextInt()
	if !ok {
		return Header{}, simerr.WrapHeader("expected quantum")
	}
	return Header{TotalProcs: total, NumNodes: nodes, Quantum: quantum}, nil
}

func parseProcess(t *tokenizer, index int) (ProcessSpec, error) {
	name, ok := t.next()
	if !ok {
		return ProcessSpec{}, simerr.WrapProcess("process %d: expected name", index)
	}
	size, ok := t.nextInt()
	if !ok {
		return ProcessSpec{}, simerr.WrapProcess("process %d: expected size", index)
	}
	priority, ok := t.nextInt()
	if !ok {
		return ProcessSpec{}, simerr.WrapProcess("process %d: expected priority", index)
	}
	nodeID, ok := t.nextInt()
	if !ok {
		return ProcessSpec{}, simerr.WrapProcess("process %d: expected node_id", index)
	}

	ops := parseOps(t)

	return ProcessSpec{
		Name:     name,
		Size:     size,
		Priority: priority,
		NodeID:   nodeID,
		Program:  ops,
	}, nil
}

// loopFrame tracks one open LOOP while scanning its body linearly; on the
// matching END the already-accumulated body is duplicated count-1 more
// times. Nested loops resolve inner-to-outer since an inner END always
// arrives, and is expanded, before its enclosing END is reached.
type loopFrame struct {
	count     int
	bodyStart int
}

// parseOps consumes opcode tokens up to and including HALT, or EOF if the
// program never halts (accepted per §7, MissingHaltOrEndOfInput). Unknown
// tokens, and LOOP/SEND/etc. with a missing or non-numeric argument, are
// skipped silently.
func parseOps(t *tokenizer) []sim.Operation {
	var ops []sim.Operation
	var stack []loopFrame

	for {
		tok, ok := t.next()
		if !ok {
			return ops
		}

		switch tok {
		case "DOOP":
			if k, ok := t.nextInt(); ok {
				ops = append(ops, sim.Operation{Kind: sim.OpDOOP, Arg: k})
			}
		case "BLOCK":
			if k, ok := t.nextInt(); ok {
				ops = append(ops, sim.Operation{Kind: sim.OpBLOCK, Arg: k})
			}
		case "SEND":
			if a, ok := t.nextInt(); ok {
				ops = append(ops, sim.Operation{Kind: sim.OpSEND, Arg: a})
			}
		case "RECV":
			if a, ok := t.nextInt(); ok {
				ops = append(ops, sim.Operation{Kind: sim.OpRECV, Arg: a})
			}
		case "HALT":
			ops = append(ops, sim.Operation{Kind: sim.OpHALT})
			return ops
		case "LOOP":
			if n, ok := t.nextInt(); ok {
				stack = append(stack, loopFrame{count: n, bodyStart: len(ops)})
			}
		case "END":
			if len(stack) == 0 {
				continue // unmatched END: treat as an unknown token
			}
			frame := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if frame.count <= 0 {
				ops = ops[:frame.bodyStart]
				continue
			}
			body := append([]sim.Operation(nil), ops[frame.bodyStart:]...)
			for i := 1; i < frame.count; i++ {
				ops = append(ops, body...)
			}
		default:
			// Unknown token: silently skipped, per spec.
		}
	}
}
