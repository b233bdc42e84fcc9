package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/zeroone/internal/render"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "plain" | "latex" | "cas"
}

// OutputFormat returns the validated render format for the run.
func (o *RootOptions) OutputFormat() render.Format {
	f, err := render.ParseFormat(o.Format)
	if err != nil {
		// PersistentPreRunE already rejected anything else.
		panic(err)
	}
	return f
}

// NewRootCommand creates the root command for the zeroone CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "zeroone",
		Short: "zeroone - 0-1 conjecture verifier",
		Long: `A decision procedure for instances of the 0-1 polynomial conjecture.

Given degrees (m, n), zeroone builds the coefficient equation system of
p(x) * q(x) = 1 + x + ... + x^(m+n), propagates constraints to a fixpoint
and branches on the remaining cases until every case is either solved,
contradictory, or handed off as a residual leaf.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := render.ParseFormat(opts.Format); err != nil {
				return err
			}
			configureLogging(opts.Verbose)
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "plain", "output format (plain|latex|cas)")

	// Add subcommands
	cmd.AddCommand(NewVerifyCommand(opts))
	cmd.AddCommand(NewCampaignCommand(opts))
	cmd.AddCommand(NewLeavesCommand(opts))

	return cmd
}

func configureLogging(verbose bool) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}
