package differ

import (
	"slices"

	"github.com/erraggy/apidiff/apidoc"
	"github.com/erraggy/apidiff/internal/maputil"
)

// ChangeKind identifies one kind of field-level change to an operation.
type ChangeKind string

// Change kinds, in the order records are emitted.
const (
	KindSummaryChanged     ChangeKind = "summary-changed"
	KindParameterAdded     ChangeKind = "parameter-added"
	KindParameterRemoved   ChangeKind = "parameter-removed"
	KindParameterChanged   ChangeKind = "parameter-changed"
	KindRequestBodyAdded   ChangeKind = "request-body-added"
	KindRequestBodyRemoved ChangeKind = "request-body-removed"
	KindTagAdded           ChangeKind = "tag-added"
	KindTagRemoved         ChangeKind = "tag-removed"
	KindResponseAdded      ChangeKind = "response-added"
	KindResponseRemoved    ChangeKind = "response-removed"
)

// ChangeRecord is one field-level change. Detail names the parameter, tag
// or response code involved; Old and New carry the summary text for
// KindSummaryChanged; Fields lists the differing parameter fields for
// KindParameterChanged.
type ChangeRecord struct {
	Kind   ChangeKind `json:"kind" yaml:"kind"`
	Detail string     `json:"detail,omitempty" yaml:"detail,omitempty"`
	Old    string     `json:"old,omitempty" yaml:"old,omitempty"`
	New    string     `json:"new,omitempty" yaml:"new,omitempty"`
	Fields []string   `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// OperationKind tells whether an operation was added, removed or modified.
type OperationKind string

const (
	// OperationAdded marks a method present only in the new version
	OperationAdded OperationKind = "added"
	// OperationRemoved marks a method present only in the old version
	OperationRemoved OperationKind = "removed"
	// OperationModified marks a method present in both versions
	OperationModified OperationKind = "modified"
)

// OperationChange is the comparison of one method of one path.
type OperationChange struct {
	Method  string         `json:"method" yaml:"method"`
	Kind    OperationKind  `json:"kind" yaml:"kind"`
	Records []ChangeRecord `json:"records" yaml:"records"`
}

// IsEmpty reports whether the operation exists in both versions unchanged.
func (c OperationChange) IsEmpty() bool {
	return c.Kind == OperationModified && len(c.Records) == 0
}

// Count returns the number of records of the given kind.
func (c OperationChange) Count(kind ChangeKind) int {
	n := 0
	for _, r := range c.Records {
		if r.Kind == kind {
			n++
		}
	}
	return n
}

// DiffOperation compares one method's operation across versions. When
// either side is nil the operation is reported as added or removed without
// field-level records.
func (d *Differ) DiffOperation(method string, oldOp, newOp *apidoc.Operation) OperationChange {
	change := OperationChange{Method: method, Kind: OperationModified, Records: []ChangeRecord{}}
	switch {
	case oldOp == nil && newOp != nil:
		change.Kind = OperationAdded
		return change
	case oldOp != nil && newOp == nil:
		change.Kind = OperationRemoved
		return change
	case oldOp == nil:
		return change
	}

	if oldOp.Summary != newOp.Summary {
		change.Records = append(change.Records, ChangeRecord{
			Kind: KindSummaryChanged,
			Old:  oldOp.Summary,
			New:  newOp.Summary,
		})
	}

	identity := d.paramIdentity()
	params := DiffParameters(
		ParameterMap(oldOp.Parameters, identity),
		ParameterMap(newOp.Parameters, identity),
	)
	change.Records = appendDetails(change.Records, KindParameterAdded, params.Added)
	change.Records = appendDetails(change.Records, KindParameterRemoved, params.Removed)
	for _, pc := range params.Changed {
		change.Records = append(change.Records, ChangeRecord{
			Kind:   KindParameterChanged,
			Detail: pc.Name,
			Fields: pc.Fields,
		})
	}

	switch {
	case !oldOp.HasRequestBody && newOp.HasRequestBody:
		change.Records = append(change.Records, ChangeRecord{Kind: KindRequestBodyAdded})
	case oldOp.HasRequestBody && !newOp.HasRequestBody:
		change.Records = append(change.Records, ChangeRecord{Kind: KindRequestBodyRemoved})
	}

	tags := maputil.DiffKeys(maputil.Set(oldOp.Tags), maputil.Set(newOp.Tags))
	change.Records = appendDetails(change.Records, KindTagAdded, tags.Added)
	change.Records = appendDetails(change.Records, KindTagRemoved, tags.Removed)

	if d.CompareResponses {
		codes := maputil.DiffKeys(maputil.Set(oldOp.ResponseCodes), maputil.Set(newOp.ResponseCodes))
		change.Records = appendDetails(change.Records, KindResponseAdded, codes.Added)
		change.Records = appendDetails(change.Records, KindResponseRemoved, codes.Removed)
	}

	return change
}

// appendDetails appends one record of kind per detail. details must already
// be sorted.
func appendDetails(records []ChangeRecord, kind ChangeKind, details []string) []ChangeRecord {
	records = slices.Grow(records, len(details))
	for _, detail := range details {
		records = append(records, ChangeRecord{Kind: kind, Detail: detail})
	}
	return records
}
