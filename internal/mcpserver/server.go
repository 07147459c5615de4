// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes keyword scans as tools over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/keyscan/internal/keywords"
	"github.com/starford/keyscan/internal/models"
	"github.com/starford/keyscan/internal/report"
	"github.com/starford/keyscan/internal/scanner"
)

// Server wraps the MCP server with keyscan tools.
type Server struct {
	mcp     *server.MCPServer
	scanner *scanner.Scanner
	exclude string
}

// New creates a new MCP server with all keyscan tools registered.
func New(sc *scanner.Scanner, exclude, version string) *Server {
	s := &Server{scanner: sc, exclude: exclude}

	s.mcp = server.NewMCPServer(
		"keyscan",
		version,
		server.WithToolCapabilities(false),
	)

	s.mcp.AddTool(mcp.NewTool("search_keywords",
		mcp.WithDescription("Report every line of every text file that contains one of the keywords. "+
			"Matching is exact and case-sensitive; each keyword is reported at most once per line."),
		mcp.WithString("keywords", mcp.Required(), mcp.Description("Comma-separated keywords, e.g. \"TODO, FIXME\"")),
		mcp.WithString("path", mcp.Description("Optional directory to scan, relative to the server root")),
	), s.searchKeywords)

	s.mcp.AddTool(mcp.NewTool("list_text_files",
		mcp.WithDescription("List every file a keyword search would open."),
		mcp.WithString("path", mcp.Description("Optional directory to list, relative to the server root")),
	), s.listTextFiles)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func optionalString(req mcp.CallToolRequest, name string) string {
	if v, err := req.RequireString(name); err == nil {
		return v
	}
	return ""
}

func (s *Server) searchKeywords(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("keywords")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	c := report.NewCollector()
	sum, err := s.scanner.Scan(ctx, models.ScanRequest{
		Root:     optionalString(req, "path"),
		Keywords: keywords.Parse(raw),
		Exclude:  s.exclude,
	}, c)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, err := json.MarshalIndent(c.Result(sum), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listTextFiles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	files, err := s.scanner.EligibleFiles(ctx, optionalString(req, "path"), s.exclude)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(files) == 0 {
		return mcp.NewToolResultText("no text files found"), nil
	}
	return mcp.NewToolResultText(strings.Join(files, "\n")), nil
}
