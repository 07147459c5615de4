package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/keyscan/internal"
	"github.com/starford/keyscan/internal/keywords"
)

const version = "0.1.0"

// selfPath returns the resolved location of the running binary, which every
// scan excludes by default.
func selfPath() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		return resolved
	}
	return exe
}

// buildConfig maps flags and their environment sources onto a Config.
func buildConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	cfg.Scan.Root = cmd.String("root")
	cfg.Scan.Format = cmd.String("format")
	cfg.Scan.Exclude = cmd.String("exclude")
	if cfg.Scan.Exclude == "" {
		cfg.Scan.Exclude = selfPath()
	}

	lvl, err := internal.ParseLogLevel(cmd.String("log-level"))
	if err != nil {
		return nil, err
	}
	cfg.App.LogLevel = lvl
	return cfg, nil
}

func runScan(ctx context.Context, cmd *cli.Command) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	opts := []internal.Option{
		internal.WithConfig(cfg),
	}
	if cmd.IsSet("keywords") {
		opts = append(opts, internal.WithKeywords(keywords.Parse(cmd.String("keywords"))))
	}

	if err := internal.Run(ctx, opts...); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	if !cmd.IsSet("log-level") {
		cfg.App.LogLevel = slog.LevelInfo
	}
	cfg.App.HTTP.Port = int(cmd.Int("port"))
	if token := cmd.String("token"); token != "" {
		cfg.Auth.Mode = internal.AuthModeToken
		cfg.Auth.Token = token
	}

	if err := internal.Serve(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func runMCP(ctx context.Context, cmd *cli.Command) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	if err := internal.ServeMCP(ctx, version, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

// newCommand builds the root command with its serve and mcp subcommands.
func newCommand() *cli.Command {
	return &cli.Command{
		Name:    "keyscan",
		Usage:   "Report every line of every text file under a directory that contains one of a set of keywords",
		Version: version,
		Action:  runScan,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "Directory to scan",
				Value:   "./",
				Sources: cli.EnvVars("KEYSCAN_ROOT"),
			},
			&cli.StringFlag{
				Name:    "keywords",
				Aliases: []string{"k"},
				Usage:   "Comma-separated keywords (prompted on stdin when omitted)",
				Sources: cli.EnvVars("KEYSCAN_KEYWORDS"),
			},
			&cli.StringFlag{
				Name:        "exclude",
				Aliases:     []string{"x"},
				Usage:       "File to leave out of the scan",
				DefaultText: "the keyscan binary",
				Sources:     cli.EnvVars("KEYSCAN_EXCLUDE"),
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, json or yaml",
				Value:   "text",
				Sources: cli.EnvVars("KEYSCAN_FORMAT"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level: debug, info, warn or error",
				Value:   "warn",
				Sources: cli.EnvVars("KEYSCAN_LOG_LEVEL"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Serve keyword scans over HTTP",
				Action: runServe,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "port",
						Aliases: []string{"p"},
						Usage:   "HTTP port",
						Value:   8080,
						Sources: cli.EnvVars("KEYSCAN_PORT"),
					},
					&cli.StringFlag{
						Name:    "token",
						Usage:   "Require this bearer token on /api routes",
						Sources: cli.EnvVars("KEYSCAN_TOKEN"),
					},
				},
			},
			{
				Name:   "mcp",
				Usage:  "Serve keyword scans as MCP tools over stdio",
				Action: runMCP,
			},
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newCommand().Run(ctx, os.Args)
	stop()
	if err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
