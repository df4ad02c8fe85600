package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tomciopaluch2000pl/landing-zone/internal/adapters/outbound/tui"
)

func newFixCmd(opts *globalOptions) *cobra.Command {
	var (
		dryRun     bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "fix <dir>",
		Short: "Apply auto-fixes to a submission directory",
		Long:  "Reset a non-empty control file to 0 bytes and add a synthetic header to data files that lack one.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			a, err := newApp(opts.configDir, nil)
			if err != nil {
				return err
			}
			defer a.close()

			plan, err := a.remediate.Fix(cmd.Context(), dir, dryRun)
			if err != nil {
				return fmt.Errorf("fix failed: %w", err)
			}

			if jsonOutput {
				return writeJSON(cmd, plan)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderFixPlan(plan))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show planned fixes without applying them")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the fix plan as JSON")

	return cmd
}
