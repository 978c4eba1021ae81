package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	hallmarkmcp "github.com/gorewood/hallmark/internal/mcp"
	"github.com/gorewood/hallmark/internal/session"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run hallmark as a Model Context Protocol (MCP) server over stdio.

This exposes the tag codec and scaffolding operations as MCP tools that
any MCP-capable agent environment can use (Claude Code, Cursor,
Windsurf, Gemini CLI, etc).

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "hallmark": {
        "command": "hallmark",
        "args": ["serve"]
      }
    }
  }

Available tools: encode, decode, feature_new, session_start, session_log, status`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			specsDir := resolveSpecsDir("")
			sessions := session.NewStore(resolveSessionsDir(""), nil)
			server := hallmarkmcp.NewServer(buildVersion(), specsDir, sessions)
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
