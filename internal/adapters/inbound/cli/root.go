package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configDir string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "landingzone",
		Short: "Validate feed submissions before they leave the landing zone",
		Long: "landingzone checks unpacked feed submissions for structure, audit manifest and schema conformance, " +
			"applies safe auto-fixes, and routes archives to the ready or rejected directory.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configDir, "config-dir", ".", "Directory holding .landingzone.yaml and .env")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newValidateCmd(opts))
	cmd.AddCommand(newCheckDataCmd(opts))
	cmd.AddCommand(newRunCmd(opts))
	cmd.AddCommand(newFixCmd(opts))
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newMCPCmd(opts))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	err := newRootCmd().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show landingzone version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "landingzone %s (%s)\n", version, commit)
			return nil
		},
	}
}
