package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MaafiaTroodon/MultiProSim/internal/batch"
	"github.com/MaafiaTroodon/MultiProSim/internal/obslog"
)

func newBatchCmd() *cobra.Command {
	var (
		concurrency int
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:   "batch FILE...",
		Short: "Run many independent simulations concurrently",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := obslog.New(os.Stderr, verbose)
			outcomes := batch.Run(cmd.Context(), args, concurrency, log)

			failed := 0
			for _, o := range outcomes {
				if o.Err != nil {
					failed++
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", o.File, o.Err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "== %s ==\n%s%s", o.File, o.Trace, o.Summary)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d input(s) failed", failed, len(outcomes))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "max simulations running at once (0 = unbounded)")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "enable debug-level operational logging")

	return cmd
}
