package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewServer creates an MCP server with the cryptomod tools registered.
// repoDir is the root of the inventory repository to operate on.
func NewServer(repoDir string) *server.MCPServer {
	s := server.NewMCPServer(
		"cryptomod",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	registerTools(s, repoDir)

	return s
}
