package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/openkeg/openkeg/internal/adapters/outbound/host"
)

// registerResources registers all openkeg MCP resources on the given server.
func registerResources(s *server.MCPServer, configPath string) {
	// openkeg://config - effective host configuration
	s.AddResource(
		mcplib.NewResource(
			"openkeg://config",
			"Host Configuration",
			mcplib.WithResourceDescription("Effective prefix, Cellar, SDK and service directories"),
			mcplib.WithMIMEType("application/json"),
		),
		handleConfigResource(configPath),
	)
}

func handleConfigResource(configPath string) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		cfg, err := host.Config(configPath)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}

		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling config: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      "openkeg://config",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
