package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/openkeg/openkeg/internal/adapters/outbound/host"
)

// registerTools registers all openkeg MCP tools on the given server.
func registerTools(s *server.MCPServer, configPath string, logger *zap.Logger) {
	// 1. openkeg_caveats
	s.AddTool(
		mcplib.NewTool("openkeg_caveats",
			mcplib.WithDescription("Returns the post-install caveats for an installed formula as JSON"),
			mcplib.WithString("formula",
				mcplib.Required(),
				mcplib.Description("Path to the formula definition (YAML)"),
			),
		),
		handleCaveats(configPath, logger),
	)

	// 2. openkeg_audit
	s.AddTool(
		mcplib.NewTool("openkeg_audit",
			mcplib.WithDescription("Runs the cellar health checks against an installed formula and returns the findings as JSON"),
			mcplib.WithString("formula",
				mcplib.Required(),
				mcplib.Description("Path to the formula definition (YAML)"),
			),
		),
		handleAudit(configPath, logger),
	)
}

func handleCaveats(configPath string, logger *zap.Logger) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		formulaPath, err := request.RequireString("formula")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		report, err := host.CaveatsService(logger).Caveats(configPath, formulaPath)
		if err != nil {
			return errorResult(fmt.Sprintf("caveats failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

func handleAudit(configPath string, logger *zap.Logger) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		formulaPath, err := request.RequireString("formula")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		report, err := host.AuditService(logger).Audit(configPath, formulaPath)
		if err != nil {
			return errorResult(fmt.Sprintf("audit failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

// jsonResult marshals v as indented JSON text content.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns an error content result.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
