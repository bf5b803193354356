package differ

import (
	"github.com/erraggy/apidiff/apidoc"
	"github.com/erraggy/apidiff/apierrors"
	"github.com/erraggy/apidiff/internal/maputil"
)

// EndpointChange is the comparison of one path present in both versions.
// Operations holds only methods present on both sides that changed.
type EndpointChange struct {
	Path           string            `json:"path" yaml:"path"`
	MethodsAdded   []string          `json:"methodsAdded" yaml:"methodsAdded"`
	MethodsRemoved []string          `json:"methodsRemoved" yaml:"methodsRemoved"`
	Operations     []OperationChange `json:"operations" yaml:"operations"`
}

// IsEmpty reports whether the path is unchanged.
func (c EndpointChange) IsEmpty() bool {
	return len(c.MethodsAdded) == 0 && len(c.MethodsRemoved) == 0 && len(c.Operations) == 0
}

// Operation returns the change for method, or nil if it did not change.
func (c EndpointChange) Operation(method string) *OperationChange {
	for i := range c.Operations {
		if c.Operations[i].Method == method {
			return &c.Operations[i]
		}
	}
	return nil
}

// DiffEndpoint compares the entries of one path across versions. Only the
// configured methods are considered. A considered method whose value is not
// an operation fails with an [apierrors.MethodEntryError], and a nil entry
// fails with an [apierrors.DocumentError].
func (d *Differ) DiffEndpoint(path string, oldEntry, newEntry *apidoc.PathEntry) (EndpointChange, error) {
	allowed := d.methodSet()
	oldOps, err := consideredOperations(path, apierrors.DocumentOld, oldEntry, allowed)
	if err != nil {
		return EndpointChange{}, err
	}
	newOps, err := consideredOperations(path, apierrors.DocumentNew, newEntry, allowed)
	if err != nil {
		return EndpointChange{}, err
	}

	methods := maputil.DiffKeys(oldOps, newOps)
	change := EndpointChange{
		Path:           path,
		MethodsAdded:   methods.Added,
		MethodsRemoved: methods.Removed,
		Operations:     []OperationChange{},
	}
	for _, method := range methods.Common {
		if oc := d.DiffOperation(method, oldOps[method], newOps[method]); !oc.IsEmpty() {
			change.Operations = append(change.Operations, oc)
		}
	}
	return change, nil
}

// consideredOperations returns the operations of entry whose method is in
// allowed, failing on rejected or nil entries for those methods.
func consideredOperations(path, side string, entry *apidoc.PathEntry, allowed map[string]struct{}) (map[string]*apidoc.Operation, error) {
	if entry == nil {
		return nil, &apierrors.DocumentError{
			Document: side,
			Path:     path,
			Message:  "path entry is missing",
		}
	}
	for _, method := range maputil.SortedKeys(entry.Rejected) {
		if _, ok := allowed[method]; ok {
			return nil, apierrors.WithDocument(entry.Rejected[method], side)
		}
	}
	ops := make(map[string]*apidoc.Operation, len(entry.Operations))
	for _, method := range maputil.SortedKeys(entry.Operations) {
		if _, ok := allowed[method]; !ok {
			continue
		}
		op := entry.Operations[method]
		if op == nil {
			return nil, &apierrors.MethodEntryError{
				Document: side,
				Path:     path,
				Method:   method,
				Message:  "operation is missing",
			}
		}
		ops[method] = op
	}
	return ops, nil
}
