package mcpserver

import (
	"bytes"
	"context"
	"strings"

	"github.com/erraggy/apidiff/differ"
	"github.com/erraggy/apidiff/report"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type diffInput struct {
	Base          specInput `json:"base"                     jsonschema:"The base/original document"`
	Revision      specInput `json:"revision"                 jsonschema:"The revised document to compare against the base"`
	Methods       []string  `json:"methods,omitempty"        jsonschema:"HTTP methods to compare (default get, post, put, delete, patch)"`
	NoSchemas     bool      `json:"no_schemas,omitempty"     jsonschema:"Skip the schema name comparison"`
	NoTags        bool      `json:"no_tags,omitempty"        jsonschema:"Skip the document-level tag comparison"`
	NoServers     bool      `json:"no_servers,omitempty"     jsonschema:"Skip the server list comparison"`
	Responses     *bool     `json:"responses,omitempty"      jsonschema:"Compare declared response codes (default from APIDIFF_MCP_DIFF_RESPONSES)"`
	ParamIdentity string    `json:"param_identity,omitempty" jsonschema:"Parameter identity policy: name or name-in"`
	Report        bool      `json:"report,omitempty"         jsonschema:"Include the plain-text report"`
	Offset        int       `json:"offset,omitempty"         jsonschema:"Skip the first N modified endpoints"`
	Limit         int       `json:"limit,omitempty"          jsonschema:"Maximum modified endpoints to return"`
}

type diffOutput struct {
	HasChanges    bool                    `json:"has_changes"`
	AddedCount    int                     `json:"added_count"`
	RemovedCount  int                     `json:"removed_count"`
	ModifiedCount int                     `json:"modified_count"`
	Unchanged     int                     `json:"unchanged_count"`
	Added         []string                `json:"added,omitempty"`
	Removed       []string                `json:"removed,omitempty"`
	Modified      []differ.EndpointChange `json:"modified,omitempty"`
	Returned      int                     `json:"returned"`
	Schemas       *differ.KeyDelta        `json:"schemas,omitempty"`
	Tags          *differ.KeyDelta        `json:"tags,omitempty"`
	Servers       *differ.ServerDelta     `json:"servers,omitempty"`
	Fingerprint   string                  `json:"fingerprint"`
	Report        string                  `json:"report,omitempty"`
	Summary       string                  `json:"summary"`
}

func handleDiff(_ context.Context, _ *mcp.CallToolRequest, input diffInput) (*mcp.CallToolResult, diffOutput, error) {
	base, err := input.Base.resolve()
	if err != nil {
		return errResult(err), diffOutput{}, nil
	}
	revision, err := input.Revision.resolve()
	if err != nil {
		return errResult(err), diffOutput{}, nil
	}

	identity := cfg.DiffParamIdentity
	if input.ParamIdentity != "" {
		identity, err = differ.ParseParamIdentity(input.ParamIdentity)
		if err != nil {
			return errResult(err), diffOutput{}, nil
		}
	}
	responses := cfg.DiffResponses
	if input.Responses != nil {
		responses = *input.Responses
	}

	opts := []differ.Option{
		differ.WithSourceDocument(base),
		differ.WithTargetDocument(revision),
		differ.WithCompareSchemas(!input.NoSchemas),
		differ.WithCompareTags(!input.NoTags),
		differ.WithCompareServers(!input.NoServers),
		differ.WithCompareResponses(responses),
		differ.WithParamIdentity(identity),
	}
	if len(input.Methods) > 0 {
		opts = append(opts, differ.WithMethods(input.Methods...))
	}

	result, err := differ.DiffWithOptions(opts...)
	if err != nil {
		return errResult(err), diffOutput{}, nil
	}

	fingerprint, err := report.Fingerprint(result)
	if err != nil {
		return errResult(err), diffOutput{}, nil
	}

	output := diffOutput{
		HasChanges:    result.HasChanges(),
		AddedCount:    result.Stats.Added,
		RemovedCount:  result.Stats.Removed,
		ModifiedCount: result.Stats.Modified,
		Unchanged:     result.Stats.Unchanged,
		Added:         result.AddedPaths(),
		Removed:       result.RemovedPaths(),
		Modified:      paginate(result.Modified, input.Offset, input.Limit),
		Schemas:       result.Schemas,
		Tags:          result.Tags,
		Servers:       result.Servers,
		Fingerprint:   fingerprint,
	}
	output.Returned = len(output.Modified)

	if input.Report {
		var buf bytes.Buffer
		if err := report.Text(&buf, result, report.TextOptions{}); err != nil {
			return errResult(err), diffOutput{}, nil
		}
		output.Report = buf.String()
	}

	output.Summary = buildDiffSummary(result)
	return nil, output, nil
}

func buildDiffSummary(result *differ.DiffResult) string {
	if !result.HasChanges() {
		return "No changes detected."
	}

	var parts []string
	if n := result.Stats.Added; n > 0 {
		parts = append(parts, formatCount(n, "path")+" added")
	}
	if n := result.Stats.Removed; n > 0 {
		parts = append(parts, formatCount(n, "path")+" removed")
	}
	if n := result.Stats.Modified; n > 0 {
		parts = append(parts, formatCount(n, "path")+" modified")
	}
	for _, d := range []struct {
		noun  string
		delta *differ.KeyDelta
	}{{"schema", result.Schemas}, {"tag", result.Tags}} {
		if d.delta.IsEmpty() {
			continue
		}
		parts = append(parts, formatCount(len(d.delta.Added)+len(d.delta.Removed), d.noun+" change"))
	}
	if result.Servers != nil && result.Servers.Changed {
		parts = append(parts, "servers changed")
	}
	return strings.Join(parts, ", ") + "."
}
