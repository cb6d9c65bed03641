package mcp

import (
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// NewOpenKegMCPServer creates a new MCP server with all openkeg tools and
// resources registered. configPath selects the host configuration; empty
// means the default search locations.
func NewOpenKegMCPServer(configPath string, logger *zap.Logger) *server.MCPServer {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := server.NewMCPServer(
		"openkeg",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, configPath, logger)
	registerResources(s, configPath)

	return s
}
