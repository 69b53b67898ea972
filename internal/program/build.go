package program

import (
	"github.com/MaafiaTroodon/MultiProSim/internal/sim"
	"github.com/MaafiaTroodon/MultiProSim/internal/simerr"
)

// Build assembles a ready-to-run sim.Engine from a parsed Header and its
// ProcessSpecs: global pids are assigned 1-based in input order across all
// processes, node-local pids 1-based in input order within each node.
func Build(hdr Header, specs []ProcessSpec) (*sim.Engine, error) {
	e := sim.NewEngine(hdr.NumNodes, hdr.Quantum)
	localCount := make(map[int]int, hdr.NumNodes)

	for i, spec := range specs {
		if spec.NodeID < 1 || spec.NodeID > hdr.NumNodes {
			return nil, simerr.WrapProcess("process %d: node_id %d out of range [1,%d]", i, spec.NodeID, hdr.NumNodes)
		}
		localCount[spec.NodeID]++
		p := &sim.Process{
			Name:      spec.Name,
			GlobalPID: i + 1,
			NodeID:    spec.NodeID,
			LocalPID:  localCount[spec.NodeID],
			Size:      spec.Size,
			Priority:  spec.Priority,
			Program:   spec.Program,
			State:     sim.StateNew,
		}
		e.AddProcess(p)
	}
	return e, nil
}
