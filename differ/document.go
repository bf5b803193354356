package differ

import (
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/erraggy/apidiff/apidoc"
	"github.com/erraggy/apidiff/apierrors"
	"github.com/erraggy/apidiff/internal/maputil"
)

// Diff compares two documents. On any error the result is nil; a partial
// comparison is never returned.
func (d *Differ) Diff(oldDoc, newDoc *apidoc.Document) (*DiffResult, error) {
	if err := checkDocument(oldDoc, apierrors.DocumentOld); err != nil {
		return nil, err
	}
	if err := checkDocument(newDoc, apierrors.DocumentNew); err != nil {
		return nil, err
	}

	log := d.logger()
	paths := maputil.DiffKeys(oldDoc.Paths, newDoc.Paths)
	log.Debug("comparing documents",
		"oldPaths", len(oldDoc.Paths),
		"newPaths", len(newDoc.Paths),
		"common", len(paths.Common),
		"workers", d.workers())

	allowed := d.methodSet()
	added, err := summarizePaths(newDoc, apierrors.DocumentNew, paths.Added, allowed)
	if err != nil {
		return nil, err
	}
	removed, err := summarizePaths(oldDoc, apierrors.DocumentOld, paths.Removed, allowed)
	if err != nil {
		return nil, err
	}
	modified, err := d.diffCommonPaths(oldDoc, newDoc, paths.Common)
	if err != nil {
		return nil, err
	}

	methods := d.methodList()
	oldStats := oldDoc.Stats(methods)
	newStats := newDoc.Stats(methods)
	result := &DiffResult{
		OldVersion:   oldDoc.Version,
		NewVersion:   newDoc.Version,
		PathsAdded:   added,
		PathsRemoved: removed,
		Modified:     modified,
		Stats: Stats{
			OldPaths:      oldStats.PathCount,
			NewPaths:      newStats.PathCount,
			Added:         len(added),
			Removed:       len(removed),
			Modified:      len(modified),
			Unchanged:     len(paths.Common) - len(modified),
			OldOperations: oldStats.OperationCount,
			NewOperations: newStats.OperationCount,
			OldSchemas:    oldStats.SchemaCount,
			NewSchemas:    newStats.SchemaCount,
			OldTags:       oldStats.TagCount,
			NewTags:       newStats.TagCount,
		},
	}

	if d.CompareSchemas {
		keys := maputil.DiffKeys(oldDoc.Schemas, newDoc.Schemas)
		result.Schemas = &KeyDelta{Added: keys.Added, Removed: keys.Removed}
	}
	if d.CompareTags {
		keys := DiffKeys(oldDoc.TagNames(), newDoc.TagNames())
		result.Tags = &KeyDelta{Added: keys.Added, Removed: keys.Removed}
	}
	if d.CompareServers {
		result.Servers = &ServerDelta{
			Changed: !slices.Equal(oldDoc.Servers, newDoc.Servers),
			Old:     append([]apidoc.Server{}, oldDoc.Servers...),
			New:     append([]apidoc.Server{}, newDoc.Servers...),
		}
	}

	log.Debug("comparison complete",
		"added", result.Stats.Added,
		"removed", result.Stats.Removed,
		"modified", result.Stats.Modified,
		"unchanged", result.Stats.Unchanged)
	return result, nil
}

// diffCommonPaths runs DiffEndpoint for each common path on a bounded pool.
// Each path owns one result slot and one error slot; the first error in
// path order wins so failures do not depend on scheduling.
func (d *Differ) diffCommonPaths(oldDoc, newDoc *apidoc.Document, common []string) ([]EndpointChange, error) {
	changes := make([]EndpointChange, len(common))
	errs := make([]error, len(common))

	var g errgroup.Group
	g.SetLimit(d.workers())
	for i, path := range common {
		g.Go(func() error {
			changes[i], errs[i] = d.DiffEndpoint(path, oldDoc.Paths[path], newDoc.Paths[path])
			return nil
		})
	}
	_ = g.Wait()

	modified := make([]EndpointChange, 0, len(common))
	for i := range common {
		if errs[i] != nil {
			return nil, errs[i]
		}
		if !changes[i].IsEmpty() {
			modified = append(modified, changes[i])
		}
	}
	return modified, nil
}

// summarizePaths lists the considered operations of paths that exist in
// only one document. The entries are checked the same way DiffEndpoint
// checks common paths.
func summarizePaths(doc *apidoc.Document, side string, paths []string, allowed map[string]struct{}) ([]PathSummary, error) {
	out := make([]PathSummary, 0, len(paths))
	for _, path := range paths {
		ops, err := consideredOperations(path, side, doc.Paths[path], allowed)
		if err != nil {
			return nil, err
		}
		summary := PathSummary{Path: path, Operations: make([]OperationSummary, 0, len(ops))}
		for _, method := range maputil.SortedKeys(ops) {
			op := ops[method]
			summary.Operations = append(summary.Operations, OperationSummary{
				Method:  method,
				Summary: op.Summary,
				Tags:    slices.Clone(op.Tags),
			})
		}
		out = append(out, summary)
	}
	return out, nil
}

func checkDocument(doc *apidoc.Document, side string) error {
	if doc == nil {
		return &apierrors.DocumentError{Document: side, Message: "document is missing"}
	}
	return nil
}
