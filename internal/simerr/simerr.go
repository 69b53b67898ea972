// Package simerr defines the sentinel error values of the simulator's
// input-parsing error taxonomy (spec §7), wrapped with causal context via
// github.com/pkg/errors so callers can both log a full chain and classify
// the failure with errors.Is for exit-code mapping.
package simerr

import "github.com/pkg/errors"

// ErrMalformedHeader is returned when the input does not start with three
// well-formed integers (total_procs, num_nodes, quantum).
var ErrMalformedHeader = errors.New("malformed header")

// ErrMalformedProcess is returned when a process line has fewer than four
// well-formed fields (name, size, priority, node_id).
var ErrMalformedProcess = errors.New("malformed process")

// WrapHeader wraps ErrMalformedHeader with additional context.
func WrapHeader(format string, args ...interface{}) error {
	return errors.Wrapf(ErrMalformedHeader, format, args...)
}

// WrapProcess wraps ErrMalformedProcess with additional context.
func WrapProcess(format string, args ...interface{}) error {
	return errors.Wrapf(ErrMalformedProcess, format, args...)
}
