package differ

import "github.com/erraggy/apidiff/internal/maputil"

// KeySetDiff is the decomposition of two key sets into keys only in the new
// set, keys only in the old set, and keys in both. Every slice is sorted in
// byte order and never nil.
type KeySetDiff struct {
	Added   []string `json:"added" yaml:"added"`
	Removed []string `json:"removed" yaml:"removed"`
	Common  []string `json:"common" yaml:"common"`
}

// DiffKeys decomposes two key collections. Duplicate keys collapse, and the
// output order never depends on the order of the inputs.
func DiffKeys(oldKeys, newKeys []string) KeySetDiff {
	d := maputil.DiffKeys(maputil.Set(oldKeys), maputil.Set(newKeys))
	return KeySetDiff{Added: d.Added, Removed: d.Removed, Common: d.Common}
}
