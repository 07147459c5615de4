// Package internal provides the application entry points: the interactive
// scan, the HTTP server and the MCP server.
package internal

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/starford/keyscan/internal/keywords"
	"github.com/starford/keyscan/internal/models"
	"github.com/starford/keyscan/internal/report"
	"github.com/starford/keyscan/internal/scanner"
	"github.com/starford/keyscan/internal/storage"
)

const searchBanner = "\nSearching repository for text-based files...\n\n"

func newApplication(opts []Option) (*application, error) {
	app := &application{
		in:     os.Stdin,
		out:    os.Stdout,
		logOut: os.Stderr,
	}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if err := app.config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return app, nil
}

// newLogger builds the structured JSON logger. Logs never go to the report
// stream.
func (a *application) newLogger() *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(a.logOut, &slog.HandlerOptions{
		Level: a.config.App.LogLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

// Run performs one keyword scan and writes the report. When no keywords were
// supplied it prompts for them on the configured input.
func Run(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config
	logger := app.newLogger()

	logger.Debug("Configuration loaded",
		slog.String("root", cfg.Scan.Root),
		slog.String("exclude", cfg.Scan.Exclude),
		slog.String("format", cfg.Scan.Format),
		slog.String("log_level", cfg.App.LogLevel.String()))

	store, err := storage.NewFS(cfg.Scan.Root)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	// Human-readable chatter only accompanies the text format so that JSON and
	// YAML output stay parseable.
	text := cfg.Scan.Format == report.FormatText
	chatter := app.out
	if !text {
		chatter = app.logOut
	}

	kws := app.keywords
	if kws == nil {
		kws, err = keywords.Prompt(app.in, chatter)
		if err != nil {
			return err
		}
	}
	if text {
		if _, err := io.WriteString(app.out, searchBanner); err != nil {
			return err
		}
	}

	rep, err := report.New(cfg.Scan.Format, app.out)
	if err != nil {
		return err
	}

	req := models.ScanRequest{Keywords: kws, Exclude: cfg.Scan.Exclude}
	_, scanErr := scanner.New(store, logger).Scan(ctx, req, rep)
	if err := rep.Close(); err != nil && scanErr == nil {
		scanErr = fmt.Errorf("flush report: %w", err)
	}
	if scanErr != nil {
		return fmt.Errorf("scan: %w", scanErr)
	}
	return nil
}
