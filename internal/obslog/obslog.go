// Package obslog provides the simulator's operational logging: run
// start/end, parse failures, and (in verbose mode) parser/driver
// diagnostics that never touch the trace or summary data products. It
// wraps logrus the way the example corpus wires a single process-wide
// logger through its CLI entrypoint.
package obslog

import (
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Logger is the operational logger for one CLI invocation, tagged with a run
// ID. In batch mode one Logger is shared by all files, and each file's log
// lines carry a "file" field instead.
type Logger struct {
	*logrus.Entry
	RunID string
}

// New builds a Logger writing to w (stderr in normal operation), at the
// given level.
func New(w io.Writer, verbose bool) *Logger {
	base := logrus.New()
	base.SetOutput(w)
	base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if verbose {
		base.SetLevel(logrus.DebugLevel)
	} else {
		base.SetLevel(logrus.InfoLevel)
	}
	runID := uuid.NewString()
	return &Logger{
		Entry: base.WithField("run_id", runID),
		RunID: runID,
	}
}

// Default is a convenience Logger writing to stderr at info level, for
// callers (like quick tests) that don't need a dedicated instance.
func Default() *Logger {
	return New(os.Stderr, false)
}
