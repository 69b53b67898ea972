// Package summary implements the simulator's final statistics table (spec
// §6): one row per FINISHED process, sorted by (finish_time, node_id,
// node_local_pid) ascending and rendered in the fixed-width format.
package summary

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/MaafiaTroodon/MultiProSim/internal/sim"
)

// Writer buffers rows and renders them, sorted, on Flush.
type Writer struct {
	w    *bufio.Writer
	rows []sim.SummaryRow
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Row implements sim.SummarySink.
func (sw *Writer) Row(r sim.SummaryRow) {
	sw.rows = append(sw.rows, r)
}

// Flush sorts the accumulated rows by the composite key
// (FinishTime, NodeID, LocalPID) and writes the fixed-width table.
func (sw *Writer) Flush() error {
	sort.SliceStable(sw.rows, func(i, j int) bool {
		a, b := sw.rows[i], sw.rows[j]
		if a.FinishTime != b.FinishTime {
			return a.FinishTime < b.FinishTime
		}
		if a.NodeID != b.NodeID {
			return a.NodeID < b.NodeID
		}
		return a.LocalPID < b.LocalPID
	})
	for _, r := range sw.rows {
		fmt.Fprintf(sw.w, "| %05d | Proc %02d.%02d | Run %d, Block %d, Wait %d, Sends %d, Recvs %d\n",
			r.FinishTime, r.NodeID, r.LocalPID, r.Run, r.Block, r.Wait, r.Sends, r.Recvs)
	}
	return sw.w.Flush()
}

// Recorder is an in-memory sim.SummarySink for tests.
type Recorder struct {
	Rows []sim.SummaryRow
}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Row(row sim.SummaryRow) { r.Rows = append(r.Rows, row) }

func (r *Recorder) Flush() error {
	sort.SliceStable(r.Rows, func(i, j int) bool {
		a, b := r.Rows[i], r.Rows[j]
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
