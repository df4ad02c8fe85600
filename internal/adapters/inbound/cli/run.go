package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomciopaluch2000pl/landing-zone/internal/adapters/outbound/tui"
)

func newRunCmd(opts *globalOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Process every archive in the incoming directory",
		Long: "Unpack each .tar in incoming_dir into workspace_dir, validate it, and move the submission to " +
			"ready_dir or rejected_dir. Passing submissions are handed to the MFT transfer.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts.configDir, nil)
			if err != nil {
				return err
			}
			defer a.close()

			summary, err := a.pipeline().Run(cmd.Context())
			if err != nil {
				return fmt.Errorf("run failed: %w", err)
			}

			if jsonOutput {
				return writeJSON(cmd, summary)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderRunSummary(summary))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the run summary as JSON")

	return cmd
}
