// PulsePal MCP server: exposes the trusted tool operations over stdio so
// agent frameworks can read and write user state directly.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/pulsepal/pulsepal/internal/server/config"
	"github.com/pulsepal/pulsepal/internal/server/mcptools"
	"github.com/pulsepal/pulsepal/internal/server/repositories/repomanager"
	"github.com/pulsepal/pulsepal/internal/server/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()
	cfg := config.LoadConfig()

	db, m, err := repomanager.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}
	defer db.Close()

	tools := services.NewToolService(db, m, services.NewContextService(m))

	// MCP talks on stdout; anything else must go to stderr.
	return server.ServeStdio(mcptools.New(tools))
}
