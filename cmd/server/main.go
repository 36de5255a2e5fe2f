// ABOUTME: Standalone MCP server for strategic memory with stdio transport
// ABOUTME: Loads config, opens storage, and serves the strategic memory tools
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/claudedirector/claudedirector/internal/config"
	"github.com/claudedirector/claudedirector/internal/mcp"
	"github.com/claudedirector/claudedirector/internal/storage/sqlite"
)

func main() {
	// stdout carries the protocol
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "claudedirector-mcp"})

	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file loaded", "err", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", "err", err)
	}
	if level, err := cfg.Level(); err == nil {
		logger.SetLevel(level)
	}

	store := sqlite.NewStorageWithPath(cfg.DBPath)
	store.SetLogger(logger)
	defer func() { _ = store.Close() }()

	if err := store.Init(); err != nil {
		logger.Fatal("failed to initialize storage", "err", err)
	}

	server := mcpserver.NewMCPServer(
		"ClaudeDirector Strategic Memory",
		"0.1.0",
		mcpserver.WithToolCapabilities(false),
	)

	mcp.RegisterTools(server, store, cfg.RecallDays, logger)

	logger.Info("MCP server starting on stdio", "db", cfg.DBPath)
	if err := mcpserver.ServeStdio(server); err != nil {
		logger.Error("server error", "err", err)
		_ = store.Close()
		os.Exit(1)
	}
}
