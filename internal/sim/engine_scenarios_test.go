package sim_test

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaafiaTroodon/MultiProSim/internal/sim"
)

func mustRun(t *testing.T, e *sim.Engine) ([]string, []sim.SummaryRow) {
	t.Helper()
	trace := &recorder{}
	summary := &summaryRecorder{}
	err := e.Run(context.Background(), trace, summary)
	require.NoError(t, err)
	return trace.lines, summary.rows
}

// recorder and summaryRecorder mirror internal/trace.Recorder and
// internal/summary.Recorder without importing them, keeping this package's
// tests free of a dependency on its own consumers.
type recorder struct {
	lines []string
}

func (r *recorder) Emit(nodeID, clock, localPID int, label string) {
	r.lines = append(r.lines, fmtLine(nodeID, clock, localPID, label))
}

func fmtLine(nodeID, clock, localPID int, label string) string {
	return fmt.Sprintf("[%02d] %05d: process %d %s", nodeID, clock, localPID, label)
}

type summaryRecorder struct {
	rows []sim.SummaryRow
}

func (r *summaryRecorder) Row(row sim.SummaryRow) { r.rows = append(r.rows, row) }
func (r *summaryRecorder) Flush() error {
	sort.SliceStable(r.rows, func(i, j int) bool {
		a, b := r.rows[i], r.rows[j]
		if a.FinishTime != b.FinishTime {
			return a.FinishTime < b.FinishTime
		}
		if a.NodeID != b.NodeID {
			return a.NodeID < b.NodeID
		}
		return a.LocalPID < b.LocalPID
	})
	return nil
}

func TestS1_SingleNodeNoIPC(t *testing.T) {
	e := sim.NewEngine(1, 2)
	e.AddProcess(&sim.Process{
		Name: "P", NodeID: 1, LocalPID: 1, GlobalPID: 1,
		Program: []sim.Operation{{Kind: sim.OpDOOP, Arg: 3}, {Kind: sim.OpHALT}},
	})

	lines, rows := mustRun(t, e)

	wantLines := []string{
		"[01] 00000: process 1 new",
		"[01] 00000: process 1 ready",
		"[01] 00000: process 1 running",
		"[01] 00002: process 1 ready",
		"[01] 00002: process 1 running",
		"[01] 00003: process 1 finished",
	}
	if diff := cmp.Diff(wantLines, lines); diff != "" {
		t.Errorf("trace mismatch (-want +got):\n%s", diff)
	}

	wantRows := []sim.SummaryRow{{FinishTime: 3, NodeID: 1, LocalPID: 1, Run: 3}}
	if diff := cmp.Diff(wantRows, rows); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestS2_SingleNodePreemption(t *testing.T) {
	e := sim.NewEngine(1, 2)
	e.AddProcess(&sim.Process{
		Name: "A", NodeID: 1, LocalPID: 1, GlobalPID: 1,
		Program: []sim.Operation{{Kind: sim.OpDOOP, Arg: 5}, {Kind: sim.OpHALT}},
	})
	e.AddProcess(&sim.Process{
		Name: "B", NodeID: 1, LocalPID: 2, GlobalPID: 2,
		Program: []sim.Operation{{Kind: sim.OpDOOP, Arg: 1}, {Kind: sim.OpHALT}},
	})

	_, rows := mustRun(t, e)
	require.Len(t, rows, 2)

	byPID := map[int]sim.SummaryRow{}
	for _, r := range rows {
		byPID[r.LocalPID] = r
	}

	assert.Equal(t, 1, byPID[1].Wait, "A's wait_time")
	assert.Equal(t, 2, byPID[2].Wait, "B's wait_time")
	assert.Equal(t, 5, byPID[1].Run, "A's final run_time")
}

func TestS3_CrossNodeRendezvous(t *testing.T) {
	e := sim.NewEngine(2, 2)
	e.AddProcess(&sim.Process{
		Name: "A", NodeID: 1, LocalPID: 1, GlobalPID: 1,
		Program: []sim.Operation{{Kind: sim.OpSEND, Arg: sim.Address(2, 1)}, {Kind: sim.OpHALT}},
	})
	e.AddProcess(&sim.Process{
		Name: "B", NodeID: 2, LocalPID: 1, GlobalPID: 2,
		Program: []sim.Operation{{Kind: sim.OpRECV, Arg: sim.Address(1, 1)}, {Kind: sim.OpHALT}},
	})

	_, rows := mustRun(t, e)
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, 2, r.FinishTime)
	}

	byNode := map[int]sim.SummaryRow{}
	for _, r := range rows {
		byNode[r.NodeID] = r
	}
	assert.Equal(t, 1, byNode[1].Sends)
	assert.Equal(t, 1, byNode[2].Recvs)
}

func TestS4_TimedBlock(t *testing.T) {
	e := sim.NewEngine(1, 2)
	e.AddProcess(&sim.Process{
		Name: "P", NodeID: 1, LocalPID: 1, GlobalPID: 1,
		Program: []sim.Operation{
			{Kind: sim.OpDOOP, Arg: 1},
			{Kind: sim.OpBLOCK, Arg: 3},
			{Kind: sim.OpHALT},
		},
	})

	lines, rows := mustRun(t, e)
	assert.Contains(t, lines, "[01] 00000: process 1 running")
	assert.Contains(t, lines, "[01] 00001: process 1 blocked")
	assert.Contains(t, lines, "[01] 00004: process 1 finished")

	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].Run)
	assert.Equal(t, 3, rows[0].Block)
}

func TestS5_UnmatchedRendezvousDeadlocksCleanly(t *testing.T) {
	e := sim.NewEngine(1, 2)
	e.AddProcess(&sim.Process{
		Name: "P", NodeID: 1, LocalPID: 1, GlobalPID: 1,
		Program: []sim.Operation{{Kind: sim.OpSEND, Arg: 199}, {Kind: sim.OpHALT}},
	})

	_, rows := mustRun(t, e)
	assert.Empty(t, rows, "a permanently deadlocked process is omitted from the summary")
	assert.Equal(t, 1, e.UnfinishedCount())
}

// TestS6_LoopExpansionMatchesUnrolledForm runs the program that the parser
// produces for "LOOP 3 DOOP 1 END HALT" (three DOOP 1 then HALT, checked in
// internal/program's TestParse_LoopExpansion), built here by hand, and checks
// the scenario's expected run_time and finish time.
func TestS6_LoopExpansionMatchesUnrolledForm(t *testing.T) {
	looped := sim.NewEngine(1, 2)
	looped.AddProcess(&sim.Process{
		Name: "P", NodeID: 1, LocalPID: 1, GlobalPID: 1,
		Program: []sim.Operation{
			{Kind: sim.OpDOOP, Arg: 1},
			{Kind: sim.OpDOOP, Arg: 1},
			{Kind: sim.OpDOOP, Arg: 1},
			{Kind: sim.OpHALT},
		},
	})
	_, rows := mustRun(t, looped)
	wantRows := []sim.SummaryRow{{FinishTime: 3, NodeID: 1, LocalPID: 1, Run: 3}}
	if diff := cmp.Diff(wantRows, rows); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
}
