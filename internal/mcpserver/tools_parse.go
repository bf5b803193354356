package mcpserver

import (
	"context"

	"github.com/erraggy/apidiff/apidoc"
	"github.com/erraggy/apidiff/internal/maputil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type parseInput struct {
	Spec   specInput `json:"spec"             jsonschema:"The document to parse"`
	Offset int       `json:"offset,omitempty" jsonschema:"Skip the first N paths"`
	Limit  int       `json:"limit,omitempty"  jsonschema:"Maximum paths to return"`
}

type parseRejected struct {
	Path   string `json:"path"`
	Method string `json:"method"`
	Reason string `json:"reason"`
}

type parseOutput struct {
	Version        string          `json:"version,omitempty"`
	Format         string          `json:"format"`
	Size           string          `json:"size"`
	PathCount      int             `json:"path_count"`
	OperationCount int             `json:"operation_count"`
	SchemaCount    int             `json:"schema_count"`
	TagCount       int             `json:"tag_count"`
	ServerCount    int             `json:"server_count"`
	Paths          []string        `json:"paths,omitempty"`
	Tags           []string        `json:"tags,omitempty"`
	Servers        []apidoc.Server `json:"servers,omitempty"`
	Rejected       []parseRejected `json:"rejected,omitempty"`
}

func handleParse(_ context.Context, _ *mcp.CallToolRequest, input parseInput) (*mcp.CallToolResult, parseOutput, error) {
	doc, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), parseOutput{}, nil
	}

	stats := doc.Stats(nil)
	output := parseOutput{
		Version:        doc.Version,
		Format:         string(doc.SourceFormat),
		Size:           apidoc.FormatBytes(doc.SourceSize),
		PathCount:      stats.PathCount,
		OperationCount: stats.OperationCount,
		SchemaCount:    stats.SchemaCount,
		TagCount:       stats.TagCount,
		ServerCount:    stats.ServerCount,
		Tags:           makeSlice[string](len(doc.Tags)),
		Servers:        makeSlice[apidoc.Server](len(doc.Servers)),
	}

	paths := maputil.SortedKeys(doc.Paths)
	output.Paths = paginate(paths, input.Offset, input.Limit)
	output.Tags = append(output.Tags, doc.TagNames()...)
	output.Servers = append(output.Servers, doc.Servers...)

	// Rejected entries are listed for every path, not just the returned page.
	for _, path := range paths {
		entry := doc.Paths[path]
		if entry == nil {
			continue
		}
		for _, method := range maputil.SortedKeys(entry.Rejected) {
			output.Rejected = append(output.Rejected, parseRejected{
				Path:   path,
				Method: method,
				Reason: sanitizeError(entry.Rejected[method]),
			})
		}
	}

	return nil, output, nil
}
