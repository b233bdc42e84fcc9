package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/zeroone/internal/render"
	"github.com/roach88/zeroone/internal/store"
)

// LeavesOptions holds flags for the leaves command.
type LeavesOptions struct {
	*RootOptions
	Database string
}

// NewLeavesCommand creates the leaves command.
func NewLeavesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LeavesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "leaves <deg-p> <deg-q>",
		Short: "Show the stored leaves of the latest run for a degree pair",
		Long: `Print the residual systems persisted by the most recent run of a
degree pair, re-rendered in the selected format. These are the cases
still waiting on an external algebraic check.

Example:
  zeroone leaves 5 9 --db ./runs.db --format cas`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			degP, degQ, err := parseDegrees(args[0], args[1])
			if err != nil {
				return err
			}
			return runLeaves(cmd, opts, degP, degQ)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runLeaves(cmd *cobra.Command, opts *LeavesOptions, degP, degQ int) error {
	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	ctx := cmd.Context()
	run, err := st.LatestRun(ctx, degP, degQ)
	if errors.Is(err, store.ErrNotFound) {
		return WrapExitError(ExitCommandError, "no stored run", err)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read run", err)
	}

	leaves, err := st.ReadLeaves(ctx, run.ID)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read leaves", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run %s (%d, %d): %d leaves\n", run.ID, run.DegP, run.DegQ, len(leaves))

	format := opts.OutputFormat()
	for _, leaf := range leaves {
		eqs, err := render.ParsePlain(leaf.Equations)
		if err != nil {
			return WrapExitError(ExitFailure, fmt.Sprintf("stored leaf %d is corrupt", leaf.Seq), err)
		}
		rendered, err := render.Equations(eqs, format)
		if err != nil {
			return WrapExitError(ExitFailure, "rendering leaf", err)
		}
		fmt.Fprintf(out, "\nLeaf %d at case %s:\n%s", leaf.Seq, leaf.CasePath, rendered)
	}
	return nil
}
