package differ

import "github.com/erraggy/apidiff/apidoc"

// DiffResult is the outcome of comparing two documents. It is fully built
// before it is returned and shares no mutable state with either input.
type DiffResult struct {
	// OldVersion and NewVersion are the documents' version strings
	OldVersion string `json:"oldVersion,omitempty" yaml:"oldVersion,omitempty"`
	NewVersion string `json:"newVersion,omitempty" yaml:"newVersion,omitempty"`

	// PathsAdded lists paths only in the new document, sorted by path
	PathsAdded []PathSummary `json:"pathsAdded" yaml:"pathsAdded"`
	// PathsRemoved lists paths only in the old document, sorted by path
	PathsRemoved []PathSummary `json:"pathsRemoved" yaml:"pathsRemoved"`
	// Modified lists common paths with at least one change, sorted by path
	Modified []EndpointChange `json:"modified" yaml:"modified"`

	// Schemas is the schema-name delta; nil when schema comparison is disabled
	Schemas *KeyDelta `json:"schemas,omitempty" yaml:"schemas,omitempty"`
	// Tags is the document tag-name delta; nil when tag comparison is disabled
	Tags *KeyDelta `json:"tags,omitempty" yaml:"tags,omitempty"`
	// Servers is the before/after server list; nil when server comparison is disabled
	Servers *ServerDelta `json:"servers,omitempty" yaml:"servers,omitempty"`

	Stats Stats `json:"stats" yaml:"stats"`
}

// PathSummary describes a path that exists in only one version.
type PathSummary struct {
	Path       string             `json:"path" yaml:"path"`
	Operations []OperationSummary `json:"operations" yaml:"operations"`
}

// OperationSummary describes one operation of an added or removed path.
type OperationSummary struct {
	Method  string   `json:"method" yaml:"method"`
	Summary string   `json:"summary,omitempty" yaml:"summary,omitempty"`
	Tags    []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// KeyDelta holds the names added and removed in a keyed collection.
type KeyDelta struct {
	Added   []string `json:"added" yaml:"added"`
	Removed []string `json:"removed" yaml:"removed"`
}

// IsEmpty reports whether nothing was added or removed. A nil delta is empty.
func (k *KeyDelta) IsEmpty() bool {
	return k == nil || (len(k.Added) == 0 && len(k.Removed) == 0)
}

// ServerDelta is the literal before/after pair of server lists. Changed is
// true when the lists differ in any way, including order.
type ServerDelta struct {
	Changed bool            `json:"changed" yaml:"changed"`
	Old     []apidoc.Server `json:"old" yaml:"old"`
	New     []apidoc.Server `json:"new" yaml:"new"`
}

// Stats holds the counts of a comparison. Unchanged is the number of common
// paths minus Modified.
type Stats struct {
	OldPaths      int `json:"oldPaths" yaml:"oldPaths"`
	NewPaths      int `json:"newPaths" yaml:"newPaths"`
	Added         int `json:"added" yaml:"added"`
	Removed       int `json:"removed" yaml:"removed"`
	Modified      int `json:"modified" yaml:"modified"`
	Unchanged     int `json:"unchanged" yaml:"unchanged"`
	OldOperations int `json:"oldOperations" yaml:"oldOperations"`
	NewOperations int `json:"newOperations" yaml:"newOperations"`
	OldSchemas    int `json:"oldSchemas" yaml:"oldSchemas"`
	NewSchemas    int `json:"newSchemas" yaml:"newSchemas"`
	OldTags       int `json:"oldTags" yaml:"oldTags"`
	NewTags       int `json:"newTags" yaml:"newTags"`
}

// AddedPaths returns the added path templates in order.
func (r *DiffResult) AddedPaths() []string {
	return summaryPaths(r.PathsAdded)
}

// RemovedPaths returns the removed path templates in order.
func (r *DiffResult) RemovedPaths() []string {
	return summaryPaths(r.PathsRemoved)
}

// ModifiedPaths returns the modified path templates in order.
func (r *DiffResult) ModifiedPaths() []string {
	paths := make([]string, 0, len(r.Modified))
	for _, m := range r.Modified {
		paths = append(paths, m.Path)
	}
	return paths
}

// Endpoint returns the change for path, or nil when the path is not
// among the modified ones.
func (r *DiffResult) Endpoint(path string) *EndpointChange {
	for i := range r.Modified {
		if r.Modified[i].Path == path {
			return &r.Modified[i]
		}
	}
	return nil
}

// HasChanges reports whether any difference was found.
func (r *DiffResult) HasChanges() bool {
	if len(r.PathsAdded) > 0 || len(r.PathsRemoved) > 0 || len(r.Modified) > 0 {
		return true
	}
	if !r.Schemas.IsEmpty() || !r.Tags.IsEmpty() {
		return true
	}
	return r.Servers != nil && r.Servers.Changed
}

func summaryPaths(s []PathSummary) []string {
	paths := make([]string, 0, len(s))
	for _, p := range s {
		paths = append(paths, p.Path)
	}
	return paths
}
