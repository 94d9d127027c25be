// ABOUTME: MCP server command implementation for community.
// ABOUTME: Starts the MCP server in stdio mode for AI agent integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/2389-research/community/internal/app"
	mcppkg "github.com/2389-research/community/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server (stdio mode)",
	Long: `Start the Model Context Protocol server for AI agent integration.

The MCP server communicates via stdio, letting an agent log in, read
posts, and write posts and comments on the configured board. Deletes
require an explicit confirm argument on the tool call.`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ctrl := newController(app.WithConfirmer(app.AcceptAll))
	server, err := mcppkg.NewServer(ctrl, mcppkg.WithVersion(version))
	if err != nil {
		return err
	}

	globalLogger.Info("mcp server starting", "api_url", globalConfig.GetAPIURL())
	return server.Serve(ctx)
}
