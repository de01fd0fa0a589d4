package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"projtree/internal/adapters/configfile"
	"projtree/internal/adapters/index"
	mcpadapter "projtree/internal/adapters/mcp"
	"projtree/internal/config"
	"projtree/internal/logging"
)

func main() {
	configFlag := flag.String("config", config.ConfigPath(), "path to the projects config file")
	flag.Parse()

	logger := logging.NewStderr()

	idx := index.NewIndex()
	if err := idx.Open(*configFlag); err != nil {
		logger.Warn().Err(err).Msg("search index unavailable")
	}

	repo := configfile.NewRepository(*configFlag,
		configfile.WithLogger(logger),
		configfile.WithIndex(idx),
	)
	defer repo.Close()

	if err := repo.Load(); err != nil {
		log.Fatalf("projtree-mcp: %v", err)
	}

	mcpServer := server.NewMCPServer(
		"projtree-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check — returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, repo, idx)
	mcpadapter.RegisterWriteTools(mcpServer, repo)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("projtree-mcp: %v", err)
	}
}
