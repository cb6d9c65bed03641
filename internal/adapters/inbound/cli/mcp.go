package cli

import (
	mcpadapter "github.com/openkeg/openkeg/internal/adapters/inbound/mcp"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newMCPCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the openkeg MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd(g))
	return cmd
}

func newMCPServeCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start openkeg MCP server (stdio)",
		Long:  "Start the openkeg MCP server using stdio transport. This lets assistants query caveats and audit results for installed formulae.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := mcpadapter.NewOpenKegMCPServer(g.configPath, g.logger)
			return server.ServeStdio(s)
		},
	}
}
