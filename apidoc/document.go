package apidoc

// HTTP method keys recognized by default.
const (
	MethodGet    = "get"
	MethodPost   = "post"
	MethodPut    = "put"
	MethodDelete = "delete"
	MethodPatch  = "patch"
)

// DefaultMethods returns the method keys compared when the caller does not
// configure its own set. A fresh slice is returned on every call.
func DefaultMethods() []string {
	return []string{MethodGet, MethodPost, MethodPut, MethodDelete, MethodPatch}
}

// SourceFormat represents the serialization a document was decoded from.
type SourceFormat string

const (
	// SourceFormatYAML indicates the document was YAML
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates the document was JSON
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatUnknown indicates the format could not be determined
	SourceFormatUnknown SourceFormat = "unknown"
)

// Document is one version of an API description: its endpoints plus the
// document-level schema, tag and server collections.
//
// A Document is treated as read-only by every consumer in this module.
type Document struct {
	// Version is the "openapi" or "swagger" version string, if any
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
	// Paths maps exact path templates (e.g. "/cart/{cartItemId}") to entries
	Paths map[string]*PathEntry `json:"paths" yaml:"paths"`
	// Schemas maps schema names to their opaque definitions
	Schemas map[string]any `json:"schemas,omitempty" yaml:"schemas,omitempty"`
	// Tags lists the document-level tags in source order
	Tags []Tag `json:"tags,omitempty" yaml:"tags,omitempty"`
	// Servers lists the servers in source order
	Servers []Server `json:"servers,omitempty" yaml:"servers,omitempty"`

	// SourcePath is the file the document was read from, if any
	SourcePath string `json:"-" yaml:"-"`
	// SourceFormat is the serialization the document was decoded from
	SourceFormat SourceFormat `json:"-" yaml:"-"`
	// SourceSize is the size of the serialized input in bytes
	SourceSize int64 `json:"-" yaml:"-"`
}

// PathEntry holds the operations defined for a single path template.
type PathEntry struct {
	// Operations maps lowercase method keys to their operation
	Operations map[string]*Operation `json:"operations" yaml:"operations"`
	// Rejected holds method keys whose value was present but not
	// operation-shaped. The differ reports them as invalid method entries
	// when the method is one it compares, and ignores them otherwise.
	Rejected map[string]error `json:"-" yaml:"-"`
}

// Operation is one HTTP method's definition within a path.
type Operation struct {
	Summary     string `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	OperationID string `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	// Tags in source order; only membership is compared
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	// Parameters in source order
	Parameters []Parameter `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	// HasRequestBody is true when a requestBody key is present at all
	HasRequestBody bool `json:"hasRequestBody,omitempty" yaml:"hasRequestBody,omitempty"`
	// ResponseCodes are the declared response keys, sorted
	ResponseCodes []string `json:"responseCodes,omitempty" yaml:"responseCodes,omitempty"`
	// Security is kept opaque and never compared
	Security any `json:"security,omitempty" yaml:"security,omitempty"`
}

// Parameter describes a single operation parameter.
type Parameter struct {
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	In          string `json:"in,omitempty" yaml:"in,omitempty"` // "query", "path", "header", "cookie"
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool   `json:"required,omitempty" yaml:"required,omitempty"`
	// Schema is opaque and compared by deep structural equality
	Schema any `json:"schema,omitempty" yaml:"schema,omitempty"`
	// Ref is the $ref of a parameter defined by reference
	Ref string `json:"$ref,omitempty" yaml:"$ref,omitempty"`
}

// Tag is a document-level tag. Only the name takes part in comparisons.
type Tag struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Server is a document-level server entry.
type Server struct {
	URL         string `json:"url" yaml:"url"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Operation returns the operation for method, or nil when the entry does
// not define it.
func (p *PathEntry) Operation(method string) *Operation {
	if p == nil {
		return nil
	}
	return p.Operations[method]
}

// TagNames returns the tag names in source order.
func (d *Document) TagNames() []string {
	names := make([]string, 0, len(d.Tags))
	for _, t := range d.Tags {
		names = append(names, t.Name)
	}
	return names
}

// DocumentStats contains statistical information about a document
type DocumentStats struct {
	PathCount      int `json:"pathCount"`      // Number of paths defined
	OperationCount int `json:"operationCount"` // Operations across all paths, restricted to the counted methods
	SchemaCount    int `json:"schemaCount"`    // Number of schemas
	TagCount       int `json:"tagCount"`       // Number of document-level tags
	ServerCount    int `json:"serverCount"`    // Number of servers
}

// Stats counts the document's contents. Only operations whose method is in
// methods are counted; a nil methods slice counts every operation.
func (d *Document) Stats(methods []string) DocumentStats {
	stats := DocumentStats{
		PathCount:   len(d.Paths),
		SchemaCount: len(d.Schemas),
		TagCount:    len(d.Tags),
		ServerCount: len(d.Servers),
	}
	var allowed map[string]bool
	if methods != nil {
		allowed = make(map[string]bool, len(methods))
		for _, m := range methods {
			allowed[m] = true
		}
	}
	for _, entry := range d.Paths {
		if entry == nil {
			continue
		}
		for method, op := range entry.Operations {
			if op == nil {
				continue
			}
			if allowed == nil || allowed[method] {
				stats.OperationCount++
			}
		}
	}
	return stats
}
