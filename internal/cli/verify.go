package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/zeroone/internal/render"
	"github.com/roach88/zeroone/internal/solve"
	"github.com/roach88/zeroone/internal/store"
)

// VerifyOptions holds flags for the verify command.
type VerifyOptions struct {
	*RootOptions
	Workers  int
	Paranoid bool
	Database string
	Proof    string
}

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &VerifyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "verify <deg-p> <deg-q>",
		Short: "Verify one degree pair of the conjecture",
		Long: `Verify the (deg-p, deg-q) instance of the conjecture.

With more than one worker and deg-p < deg-q the top-level case space is
partitioned across workers. Any residual leaves are printed in the
selected format; a run with leaves exits non-zero, since those cases
still need an external algebraic check.

Example:
  zeroone verify 3 5
  zeroone verify 5 9 --workers 8 --db ./runs.db
  zeroone verify 2 4 --proof proof.tex`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			degP, degQ, err := parseDegrees(args[0], args[1])
			if err != nil {
				return err
			}
			return runVerify(cmd, opts, degP, degQ)
		},
	}

	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "search workers (0 = all CPUs)")
	cmd.Flags().BoolVar(&opts.Paranoid, "paranoid", false, "re-check structural invariants on every node")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database for persisting the run")
	cmd.Flags().StringVar(&opts.Proof, "proof", "", "write a proof transcript in the selected format to this file (forces a single worker)")

	return cmd
}

// parseDegrees converts the two positional arguments into a degree
// pair, rejecting anything outside the representable range.
func parseDegrees(pArg, qArg string) (int, int, error) {
	degP, err := strconv.Atoi(pArg)
	if err != nil {
		return 0, 0, WrapExitError(ExitCommandError, fmt.Sprintf("invalid degree %q", pArg), err)
	}
	degQ, err := strconv.Atoi(qArg)
	if err != nil {
		return 0, 0, WrapExitError(ExitCommandError, fmt.Sprintf("invalid degree %q", qArg), err)
	}
	if degP < 1 || degP > 255 || degQ < 1 || degQ > 255 {
		return 0, 0, NewExitError(ExitCommandError, fmt.Sprintf("degrees must be in [1, 255], got (%d, %d)", degP, degQ))
	}
	return degP, degQ, nil
}

func runVerify(cmd *cobra.Command, opts *VerifyOptions, degP, degQ int) error {
	runOpts := solve.RunOptions{
		Workers:  opts.Workers,
		Paranoid: opts.Paranoid,
	}
	if opts.Proof != "" {
		runOpts.Trace = &solve.Trace{}
	}

	slog.Info("verification starting", "deg_p", degP, "deg_q", degQ, "workers", opts.Workers)
	started := time.Now()
	res, err := solve.Run(cmd.Context(), degP, degQ, runOpts)
	if err != nil {
		return WrapExitError(ExitFailure, "verification aborted", err)
	}
	finished := time.Now()
	slog.Info("verification finished",
		"solved", res.Solved,
		"inconsistent", res.Inconsistent,
		"leaves", len(res.Leaves),
		"nodes", res.Nodes,
		"elapsed", finished.Sub(started))

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "(%d, %d): %d cases, %d solved, %d inconsistent, %d open leaves, %d nodes\n",
		degP, degQ, len(res.Cases), res.Solved, res.Inconsistent, len(res.Leaves), res.Nodes)

	format := opts.OutputFormat()
	for _, leaf := range res.Leaves {
		rendered, err := render.System(leaf.System, format)
		if err != nil {
			return WrapExitError(ExitFailure, "rendering leaf", err)
		}
		fmt.Fprintf(out, "\nLeaf at case %s:\n%s", leaf.Path, rendered)
	}

	if opts.Proof != "" {
		transcript := proofDocument(format, degP, degQ, runOpts.Trace, res.Leaves)
		if err := os.WriteFile(opts.Proof, []byte(transcript), 0o644); err != nil {
			return WrapExitError(ExitCommandError, "writing proof transcript", err)
		}
		slog.Info("proof transcript written", "path", opts.Proof, "format", format)
	}

	if opts.Database != "" {
		if err := persistRun(cmd.Context(), opts.Database, res, opts.Workers, started, finished); err != nil {
			return err
		}
	}

	if len(res.Leaves) > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d cases remain open", len(res.Leaves)))
	}
	return nil
}

// proofDocument builds the proof artifact for the selected format: a
// standalone LaTeX document, a plain-text step progression, or the
// blank-line-separated leaf blocks consumed by the external algebra
// system.
func proofDocument(format render.Format, degP, degQ int, tr *solve.Trace, leaves []solve.Leaf) string {
	switch format {
	case render.FormatLaTeX:
		return render.Transcript(degP, degQ, tr)
	case render.FormatCAS:
		parts := make([]string, len(leaves))
		for k, leaf := range leaves {
			parts[k] = render.CAS(leaf.System)
		}
		return strings.Join(parts, "\n")
	default:
		return render.TranscriptPlain(degP, degQ, tr)
	}
}

// persistRun writes the run summary and its leaves, in the plain
// interchange form, to the SQLite store.
func persistRun(ctx context.Context, path string, res *solve.RunResult, workers int, started, finished time.Time) error {
	st, err := store.Open(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()
	return writeRun(ctx, st, res, workers, started, finished)
}

func writeRun(ctx context.Context, st *store.Store, res *solve.RunResult, workers int, started, finished time.Time) error {
	if ctx == nil {
		ctx = context.Background()
	}
	run := store.Run{
		ID:           store.NewRunID(),
		DegP:         res.DegP,
		DegQ:         res.DegQ,
		Workers:      workers,
		Sharded:      res.Sharded,
		Solved:       res.Solved,
		Inconsistent: res.Inconsistent,
		Nodes:        res.Nodes,
		StartedAt:    started,
		FinishedAt:   finished,
	}
	leaves := make([]store.LeafRecord, 0, len(res.Leaves))
	for _, leaf := range res.Leaves {
		leaves = append(leaves, store.LeafRecord{
			RunID:     run.ID,
			CasePath:  leaf.Path.String(),
			Equations: render.Plain(leaf.System),
		})
	}
	if err := st.WriteRun(ctx, run, leaves); err != nil {
		return WrapExitError(ExitCommandError, "failed to persist run", err)
	}
	slog.Info("run persisted", "id", run.ID, "leaves", len(leaves))
	return nil
}
