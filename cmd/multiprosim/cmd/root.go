// Package cmd implements multiprosim's Cobra command tree.
package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/MaafiaTroodon/MultiProSim/internal/simerr"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "multiprosim",
		Short:         "Discrete-event simulator for a small distributed OS",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd())
	root.AddCommand(newBatchCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// Execute runs the CLI with the given arguments (excluding argv[0]) and
// returns the process exit code per spec §6/§7: 0 on success (including a
// run that ends in deadlock, which is a valid simulated outcome, not a
// tool error), 2 on a malformed header or process record, 1 on any other
// unexpected error.
func Execute(args []string) int {
	root := newRootCmd()
	root.SetArgs(args)

	err := root.Execute()
	if err == nil {
		return 0
	}

	fmt.Fprintln(os.Stderr, err)

	switch {
	case errors.Is(err, simerr.ErrMalformedHeader), errors.Is(err, simerr.ErrMalformedProcess):
		return 2
	default:
		return 1
	}
}
