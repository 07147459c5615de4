package internal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/starford/keyscan/internal/mcpserver"
	"github.com/starford/keyscan/internal/scanner"
	"github.com/starford/keyscan/internal/storage"
)

// ServeMCP runs the MCP server on stdin/stdout until the client disconnects.
func ServeMCP(_ context.Context, version string, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config
	logger := app.newLogger()

	store, err := storage.NewFS(cfg.Scan.Root, storage.WithConfinedLinks())
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	logger.Info("MCP server starting", slog.String("root", cfg.Scan.Root))
	srv := mcpserver.New(scanner.New(store, logger), cfg.Scan.Exclude, version)
	if err := srv.ServeStdio(); err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}
