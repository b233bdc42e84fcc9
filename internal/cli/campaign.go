package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/zeroone/internal/solve"
	"github.com/roach88/zeroone/internal/store"
)

// CampaignOptions holds flags for the campaign command.
type CampaignOptions struct {
	*RootOptions
	Database string
	Force    bool
}

// NewCampaignCommand creates the campaign command.
func NewCampaignCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CampaignOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "campaign <dir>",
		Short: "Verify a CUE-declared batch of degree pairs",
		Long: `Run every degree pair declared by the campaign in the given
directory of CUE files.

A campaign declares a name, worker and paranoia settings shared by all
instances, and the list of degree pairs:

  campaign: {
      name: "published-instances"
      workers: 4
      pairs: [
          {deg_p: 2, deg_q: 3},
          {deg_p: 3, deg_q: 5},
      ]
  }

With --db, each run is persisted and pairs already recorded in the
database are skipped, so an interrupted campaign can be resumed.

Example:
  zeroone campaign ./campaigns/small --db ./runs.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCampaign(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database for persisting each run")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "rerun pairs already recorded in the database")

	return cmd
}

func runCampaign(cmd *cobra.Command, opts *CampaignOptions, dir string) error {
	campaign, err := LoadCampaign(dir)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load campaign", err)
	}
	slog.Info("campaign loaded", "name", campaign.Name, "pairs", len(campaign.Pairs))

	var st *store.Store
	if opts.Database != "" {
		st, err = store.Open(opts.Database)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open database", err)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				slog.Error("error closing database", "error", closeErr)
			}
		}()
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "campaign %q: %d instances\n", campaign.Name, len(campaign.Pairs))

	openLeaves := 0
	for _, pair := range campaign.Pairs {
		if st != nil && !opts.Force {
			prev, err := st.LatestRun(cmd.Context(), pair.DegP, pair.DegQ)
			if err == nil {
				fmt.Fprintf(out, "(%d, %d): already recorded as run %s, skipping\n",
					pair.DegP, pair.DegQ, prev.ID)
				openLeaves += prev.LeafCount
				continue
			}
			if !errors.Is(err, store.ErrNotFound) {
				return WrapExitError(ExitCommandError, "failed to read recorded runs", err)
			}
		}

		started := time.Now()
		res, err := solve.Run(cmd.Context(), pair.DegP, pair.DegQ, solve.RunOptions{
			Workers:  campaign.Workers,
			Paranoid: campaign.Paranoid,
		})
		if err != nil {
			return WrapExitError(ExitFailure,
				fmt.Sprintf("verification of (%d, %d) aborted", pair.DegP, pair.DegQ), err)
		}
		finished := time.Now()

		fmt.Fprintf(out, "(%d, %d): %d solved, %d inconsistent, %d open leaves, %d nodes\n",
			pair.DegP, pair.DegQ, res.Solved, res.Inconsistent, len(res.Leaves), res.Nodes)
		openLeaves += len(res.Leaves)

		if st != nil {
			if err := writeRun(cmd.Context(), st, res, campaign.Workers, started, finished); err != nil {
				return err
			}
		}
	}

	if openLeaves > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d cases remain open across the campaign", openLeaves))
	}
	return nil
}
