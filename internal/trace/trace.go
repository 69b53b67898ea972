// Package trace implements the simulator's trace sink: the fixed-width
// "[NN] TTTTT: process P LABEL" line format (spec §6), a newline-delimited
// JSON writer for the CLI's --format=json mode, and an in-memory recorder
// for tests.
package trace

import (
	"bufio"
	"fmt"
	"io"
)

// Writer formats events to the canonical text trace format and writes them
// in emission order, buffered until Flush.
type Writer struct {
	w *bufio.Writer
}

// NewWriter wraps w in a buffered trace.Writer. Callers must call Flush
// when done.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Emit implements sim.EventSink.
func (tw *Writer) Emit(nodeID, clock, localPID int, label string) {
	fmt.Fprintf(tw.w, "[%02d] %05d: process %d %s\n", nodeID, clock, localPID, label)
}

// Flush flushes any buffered output to the underlying writer.
func (tw *Writer) Flush() error {
	return tw.w.Flush()
}

// Event is one recorded state transition, used by Recorder.
type Event struct {
	NodeID   int
	Clock    int
	LocalPID int
	Label    string
}

// Recorder is an in-memory sim.EventSink, for tests.
type Recorder struct {
	Events []Event
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Emit(nodeID, clock, localPID int, label string) {
	r.Events = append(r.Events, Event{NodeID: nodeID, Clock: clock, LocalPID: localPID, Label: label})
}

// Lines renders the recorded events in the canonical text format, useful
// for golden-output comparisons in tests without going through a Writer.
func (r *Recorder) Lines() []string {
	lines := make([]string, len(r.Events))
	for i, e := range r.Events {
		lines[i] = fmt.Sprintf("[%02d] %05d: process %d %s", e.NodeID, e.Clock, e.LocalPID, e.Label)
	}
	return lines
}
