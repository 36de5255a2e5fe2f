// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Exposes strategic memory tools to LLM agents over stdio
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/claudedirector/claudedirector/internal/mcp"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs claudedirector as an MCP (Model Context Protocol) server, giving
LLM agents like Claude read and write access to strategic memory via stdio.

Logs go to stderr; stdout carries the protocol.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by Claude Desktop)
  claudedirector mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "claudedirector": {
  #       "command": "claudedirector",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	store, cfg, err := openStorage(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cmd, cfg)

	// Fail fast on an unusable database rather than on the first tool call.
	if err := store.Init(); err != nil {
		return storageError("initializing storage", err)
	}

	server := mcpserver.NewMCPServer(
		"ClaudeDirector Strategic Memory",
		versionInfo.Version,
		mcpserver.WithToolCapabilities(false),
	)

	mcp.RegisterTools(server, store, cfg.RecallDays, logger)

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("MCP server starting on stdio", "db", store.Path())

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received, closing storage")
		if err := store.Close(); err != nil {
			logger.Warn("Error closing storage", "err", err)
		}

	case err := <-serverErr:
		_ = store.Close()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
