package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/MaafiaTroodon/MultiProSim/internal/obslog"
	"github.com/MaafiaTroodon/MultiProSim/internal/program"
	"github.com/MaafiaTroodon/MultiProSim/internal/sim"
	"github.com/MaafiaTroodon/MultiProSim/internal/summary"
	"github.com/MaafiaTroodon/MultiProSim/internal/trace"
)

func newRunCmd() *cobra.Command {
	var (
		inputPath   string
		format      string
		summaryOnly bool
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a single simulation to completion",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOne(cmd, inputPath, format, summaryOnly, verbose)
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "input file (default: stdin)")
	cmd.Flags().StringVar(&format, "format", "text", "trace format: text or json")
	cmd.Flags().BoolVar(&summaryOnly, "summary-only", false, "suppress the trace, print only the summary table")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "enable debug-level operational logging")

	return cmd
}

func runOne(cmd *cobra.Command, inputPath, format string, summaryOnly, verbose bool) error {
	log := obslog.New(os.Stderr, verbose)

	in := cmd.InOrStdin()
	if inputPath != "" {
		f, err := os.Open(inputPath)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	hdr, specs, err := program.Parse(in)
	if err != nil {
		log.WithError(err).Debug("input rejected")
		return err
	}
	engine, err := program.Build(hdr, specs)
	if err != nil {
		log.WithError(err).Debug("input rejected")
		return err
	}

	var evSink sim.EventSink
	var flush func() error
	out := cmd.OutOrStdout()
	if summaryOnly {
		evSink = discardSink{}
	} else if format == "json" {
		jw := trace.NewJSONWriter(out)
		evSink, flush = jw, jw.Flush
	} else {
		tw := trace.NewWriter(out)
		evSink, flush = tw, tw.Flush
	}

	sw := summary.NewWriter(out)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	runErr := engine.Run(ctx, evSink, sw)
	if flush != nil {
		if err := flush(); err != nil {
			return err
		}
	}

	if unfinished := engine.UnfinishedCount(); unfinished > 0 {
		log.WithField("unfinished", unfinished).Debug("run quiesced with deadlocked process(es)")
	}
	log.WithField("run_id", log.RunID).Info("run complete")

	if runErr == context.Canceled {
		fmt.Fprintln(cmd.ErrOrStderr(), "interrupted")
		return nil
	}
	return runErr
}

// discardSink is the sim.EventSink used for --summary-only: it drops every
// trace event and keeps only the final summary table.
type discardSink struct{}

func (discardSink) Emit(nodeID, clock, localPID int, label string) {}
