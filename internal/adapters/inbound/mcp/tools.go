package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// registerTools registers all landing zone MCP tools on the given server.
func registerTools(s *server.MCPServer, svc Services) {
	// 1. landingzone_validate
	s.AddTool(
		mcplib.NewTool("landingzone_validate",
			mcplib.WithDescription("Validate an unpacked submission directory and return the verdict with every issue as JSON. Writes feed_analysis.log into the directory and may apply auto-fixes when enabled."),
			mcplib.WithString("dir",
				mcplib.Required(),
				mcplib.Description("Path to the unpacked submission directory"),
			),
		),
		handleValidate(svc),
	)

	// 2. landingzone_remediate
	s.AddTool(
		mcplib.NewTool("landingzone_remediate",
			mcplib.WithDescription("Reset a non-empty control file and add missing data file headers in a submission directory"),
			mcplib.WithString("dir",
				mcplib.Required(),
				mcplib.Description("Path to the unpacked submission directory"),
			),
			mcplib.WithBoolean("dry_run", mcplib.Description("List fixes without applying them")),
		),
		handleRemediate(svc),
	)

	// 3. landingzone_validate_data_file
	s.AddTool(
		mcplib.NewTool("landingzone_validate_data_file",
			mcplib.WithDescription("Check one data file against a schema.txt column definition"),
			mcplib.WithString("data_file", mcplib.Required(), mcplib.Description("Path to the .data file")),
			mcplib.WithString("schema_file", mcplib.Required(), mcplib.Description("Path to schema.txt")),
		),
		handleValidateDataFile(svc),
	)
}

func handleValidate(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		dir, err := request.RequireString("dir")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		report, err := svc.Validate.Validate(ctx, filepath.Clean(dir))
		if err != nil {
			return errorResult(fmt.Sprintf("validation failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

func handleRemediate(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		dir, err := request.RequireString("dir")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		dryRun := request.GetBool("dry_run", false)

		plan, err := svc.Remediate.Fix(ctx, filepath.Clean(dir), dryRun)
		if err != nil {
			return errorResult(fmt.Sprintf("remediation failed: %v", err)), nil
		}
		return jsonResult(plan)
	}
}

type dataFileResult struct {
	File   string   `json:"file"`
	Valid  bool     `json:"valid"`
	Issues []string `json:"issues"`
}

func handleValidateDataFile(svc Services) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		dataFile, err := request.RequireString("data_file")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		schemaFile, err := request.RequireString("schema_file")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		issues, err := svc.Validate.ValidateDataFile(dataFile, schemaFile)
		if err != nil {
			return errorResult(fmt.Sprintf("data file check failed: %v", err)), nil
		}
		if issues == nil {
			issues = []string{}
		}
		return jsonResult(dataFileResult{File: filepath.Base(dataFile), Valid: len(issues) == 0, Issues: issues})
	}
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
