package mcp_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpadapter "github.com/openkeg/openkeg/internal/adapters/inbound/mcp"
	"github.com/openkeg/openkeg/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewOpenKegMCPServer(t *testing.T) {
	s := mcpadapter.NewOpenKegMCPServer("", nil)
	require.NotNil(t, s)
}

func TestMCPServerHasTools(t *testing.T) {
	s := mcpadapter.NewOpenKegMCPServer("", zap.NewNop())

	tools := s.ListTools()
	require.NotNil(t, tools)

	expectedTools := []string{
		"openkeg_caveats",
		"openkeg_audit",
	}

	for _, name := range expectedTools {
		_, exists := tools[name]
		assert.True(t, exists, "tool %q should be registered", name)
	}

	assert.Len(t, tools, len(expectedTools), "should have exactly %d tools", len(expectedTools))
}

func TestCaveatsTool_ReturnsReport(t *testing.T) {
	root := t.TempDir()
	prefix := filepath.Join(root, "prefix")
	require.NoError(t, os.MkdirAll(filepath.Join(prefix, "Cellar", "foo", "1.0"), 0o755))

	configPath := filepath.Join(root, "openkeg.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("prefix: "+prefix+"\nshell: /bin/bash\n"), 0o644))
	formulaPath := filepath.Join(root, "foo.yaml")
	require.NoError(t, os.WriteFile(formulaPath,
		[]byte("name: foo\nversion: \"1.0\"\ncaveats: Run foo --init first.\n"), 0o644))

	s := mcpadapter.NewOpenKegMCPServer(configPath, zap.NewNop())
	tool := s.ListTools()["openkeg_caveats"]
	require.NotNil(t, tool)

	req := mcplib.CallToolRequest{}
	req.Params.Name = "openkeg_caveats"
	req.Params.Arguments = map[string]any{"formula": formulaPath}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err)
	require.False(t, res.IsError)

	text, ok := res.Content[0].(mcplib.TextContent)
	require.True(t, ok)
	var report domain.CaveatsReport
	require.NoError(t, json.Unmarshal([]byte(text.Text), &report))
	assert.Equal(t, "foo", report.Formula)
	assert.Contains(t, report.Caveats, "Run foo --init first.")
}

func TestAuditTool_MissingFormulaArgument(t *testing.T) {
	s := mcpadapter.NewOpenKegMCPServer("", zap.NewNop())
	tool := s.ListTools()["openkeg_audit"]
	require.NotNil(t, tool)

	res, err := tool.Handler(context.Background(), mcplib.CallToolRequest{})
	require.NoError(t, err)
	assert.True(t, res.IsError)
}
