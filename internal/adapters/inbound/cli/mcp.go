package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/tomciopaluch2000pl/landing-zone/internal/adapters/inbound/mcp"
)

func newMCPCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the landingzone MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd(opts))
	return cmd
}

func newMCPServeCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start landingzone MCP server (stdio)",
		Long:  "Start the landingzone MCP server using stdio transport. Logs go to stderr and the app log so stdout stays reserved for the protocol.",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts.configDir, nil)
			if err != nil {
				return err
			}
			defer a.close()

			s := mcpadapter.NewLandingZoneMCPServer(version, mcpadapter.Services{
				Validate:  a.validate,
				Remediate: a.remediate,
				Config:    a.cfg,
			})
			return server.ServeStdio(s)
		},
	}
}
