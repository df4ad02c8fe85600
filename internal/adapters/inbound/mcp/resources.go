package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tomciopaluch2000pl/landing-zone/internal/domain"
)

// registerResources registers all landing zone MCP resources on the given server.
func registerResources(s *server.MCPServer, svc Services) {
	// 1. landingzone://config - effective configuration
	s.AddResource(
		mcplib.NewResource(
			"landingzone://config",
			"Configuration",
			mcplib.WithResourceDescription("Effective landing zone configuration after defaults and environment overrides"),
			mcplib.WithMIMEType("application/json"),
		),
		handleConfigResource(svc.Config),
	)

	// 2. landingzone://results/{name} - routed submission result log
	s.AddResourceTemplate(
		mcplib.NewResourceTemplate(
			"landingzone://results/{name}",
			"Submission Result",
			mcplib.WithTemplateDescription("feed_analysis.log of a submission in the ready or rejected directory"),
			mcplib.WithTemplateMIMEType("text/plain"),
		),
		handleResultResource(svc.Config),
	)
}

func handleConfigResource(cfg domain.Config) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling config: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      "landingzone://config",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}

func handleResultResource(cfg domain.Config) server.ResourceTemplateHandlerFunc {
	return func(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		name := templateArg(request.Params.Arguments["name"])
		if name == "" || strings.ContainsAny(name, `/\`) || name == ".." {
			return nil, fmt.Errorf("submission name is required")
		}

		text, err := readResultLog(cfg, name)
		if err != nil {
			return nil, err
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      request.Params.URI,
				MIMEType: "text/plain",
				Text:     text,
			},
		}, nil
	}
}

// readResultLog looks in the ready directory first, then rejected.
func readResultLog(cfg domain.Config, name string) (string, error) {
	for _, dir := range []string{cfg.ReadyDir, cfg.RejectedDir} {
		sub := domain.NewSubmission(filepath.Join(dir, name))
		data, err := os.ReadFile(sub.ResultLogPath())
		if err == nil {
			return string(data), nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
	}
	return "", fmt.Errorf("no result for submission %q", name)
}

// templateArg unwraps a URI template argument, which may arrive as a string
// or a single-element slice.
func templateArg(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case []string:
		if len(t) > 0 {
			return t[0]
		}
	}
	return ""
}
