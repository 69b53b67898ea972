package sim

// EventSink receives state-transition records as the engine produces them,
// in emission order. It is the engine's only output dependency for the
// trace stream; internal/trace implements the canonical text format against
// it, and tests use an in-memory recorder.
type EventSink interface {
	Emit(nodeID, clock, localPID int, label string)
}

// SummaryRow is one finished process's final statistics.
type SummaryRow struct {
	FinishTime int
	NodeID     int
	LocalPID   int
	Run        int
	Block      int
	Wait       int
	Sends      int
	Recvs      int
}

// SummarySink receives one row per FINISHED process at end of simulation.
// Row order of calls is not significant; sinks are responsible for sorting
// on Flush per the composite key (FinishTime, NodeID, LocalPID).
type SummarySink interface {
	Row(r SummaryRow)
	Flush() error
}

// NopSink discards events; useful where only the summary rows matter.
type NopSink struct{}

func (NopSink) Emit(nodeID, clock, localPID int, label string) {}
