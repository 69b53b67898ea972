package trace

import (
	"bufio"
	"encoding/json"
	"io"
)

// jsonEvent is the wire shape for --format=json, one object per line
// (newline-delimited JSON), mirroring the fields of Event.
type jsonEvent struct {
	Node  int    `json:"node"`
	Clock int    `json:"clock"`
	Proc  int    `json:"proc"`
	State string `json:"state"`
}

// JSONWriter emits one JSON object per event, newline-delimited, as an
// alternative machine-readable trace format. It does not replace the
// canonical text format (spec §6); it is an additional CLI mode.
type JSONWriter struct {
	w   *bufio.Writer
	enc *json.Encoder
}

func NewJSONWriter(w io.Writer) *JSONWriter {
	bw := bufio.NewWriter(w)
	return &JSONWriter{w: bw, enc: json.NewEncoder(bw)}
}

func (jw *JSONWriter) Emit(nodeID, clock, localPID int, label string) {
	_ = jw.enc.Encode(jsonEvent{Node: nodeID, Clock: clock, Proc: localPID, State: label})
}

func (jw *JSONWriter) Flush() error {
	return jw.w.Flush()
}
