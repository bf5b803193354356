// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes apidiff capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"
	"strconv"

	"github.com/erraggy/apidiff"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `apidiff MCP server — compares two versions of an API description document and summarizes documents.

Configuration: All defaults are configurable via APIDIFF_MCP_* environment variables set in your MCP client config.

Key settings:
- APIDIFF_MCP_CACHE_ENABLED (default: true) — disable document caching entirely
- APIDIFF_MCP_CACHE_FILE_TTL (default: 15m) — cache TTL for local files
- APIDIFF_MCP_CACHE_CONTENT_TTL (default: 15m) — cache TTL for inline content
- APIDIFF_MCP_LIST_LIMIT (default: 100) — default page size for modified endpoints
- APIDIFF_MCP_DIFF_RESPONSES (default: false) — compare response codes by default
- APIDIFF_MCP_PARAM_IDENTITY (default: name) — parameter identity policy (name or name-in)

Caching: Decoded documents are cached per session. File entries use path+mtime as key (auto-invalidated on change). A background sweeper removes expired entries.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		specCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "apidiff", Version: apidiff.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "diff",
		Description: "Compare two versions of an API description document. Reports added and removed paths, modified endpoints with per-operation change records (summary, parameters, request body, tags, optionally responses), and schema, tag and server deltas. Both base and revision must be provided. Use offset/limit to page through modified endpoints and report=true for a human-readable report.",
	}, handleDiff)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "parse",
		Description: "Decode an API description document (JSON or YAML) and return a structural summary: version, format, path/operation/schema/tag/server counts and the path list. Method entries that are not operation-shaped are listed as rejected.",
	}, handleParse)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ListLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ListLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

func formatCount(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
