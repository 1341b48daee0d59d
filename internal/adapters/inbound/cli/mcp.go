package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/cryptomod/cryptomod/internal/adapters/inbound/mcp"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the cryptomod MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	var repoDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the cryptomod MCP server (stdio)",
		Long:  "Start the cryptomod MCP server using stdio transport, so assistants can validate the inventory, look up certificates, and read snapshot status.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if repoDir == "" {
				repoDir = "."
			}
			s := mcpadapter.NewServer(repoDir)
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&repoDir, "path", "", "Inventory repo path (defaults to current working directory)")

	return cmd
}
