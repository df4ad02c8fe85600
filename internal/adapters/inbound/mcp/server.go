package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/tomciopaluch2000pl/landing-zone/internal/application"
	"github.com/tomciopaluch2000pl/landing-zone/internal/domain"
)

// Services are the application services exposed over MCP.
type Services struct {
	Validate  *application.ValidateService
	Remediate *application.RemediateService
	Config    domain.Config
}

// NewLandingZoneMCPServer creates an MCP server with all landing zone tools
// and resources registered.
func NewLandingZoneMCPServer(version string, svc Services) *server.MCPServer {
	s := server.NewMCPServer(
		"landingzone",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, svc)
	registerResources(s, svc)

	return s
}
