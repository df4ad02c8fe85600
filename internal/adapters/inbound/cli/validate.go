package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tomciopaluch2000pl/landing-zone/internal/adapters/outbound/tui"
)

func newValidateCmd(opts *globalOptions) *cobra.Command {
	var (
		jsonOutput bool
		noFix      bool
	)

	cmd := &cobra.Command{
		Use:   "validate <dir>",
		Short: "Validate an unpacked submission directory",
		Long: "Check a submission directory for required files, control file size, audit manifest " +
			"record counts and schema conformance. Failing submissions get one auto-fix pass unless --no-fix is set. " +
			"Writes feed_analysis.log into the directory and exits 1 when the submission fails.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			var autoFix *bool
			if noFix {
				off := false
				autoFix = &off
			}
			a, err := newApp(opts.configDir, autoFix)
			if err != nil {
				return err
			}
			defer a.close()

			report, err := a.validate.Validate(cmd.Context(), dir)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			if jsonOutput {
				if err := writeJSON(cmd, report); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(report))
			}

			if !report.Passed() {
				return fmt.Errorf("validation failed: %d issue(s)", len(report.Issues))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the report as JSON")
	cmd.Flags().BoolVar(&noFix, "no-fix", false, "Disable auto-remediation for this run")

	return cmd
}

func newCheckDataCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check-data <data-file> <schema-file>",
		Short: "Check one data file against a schema",
		Long:  "Validate the header and every row of a single data file against a schema.txt definition. Nothing is written.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts.configDir, nil)
			if err != nil {
				return err
			}
			defer a.close()

			issues, err := a.validate.ValidateDataFile(args[0], args[1])
			if err != nil {
				return err
			}
			for _, msg := range issues {
				fmt.Fprintln(cmd.OutOrStdout(), "- "+msg)
			}
			if len(issues) > 0 {
				return fmt.Errorf("%d issue(s) in %s", len(issues), filepath.Base(args[0]))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s conforms to schema\n", filepath.Base(args[0]))
			return nil
		},
	}
	return cmd
}

func writeJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
