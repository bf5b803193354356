// Package maputil provides helpers for keyed collections whose iteration
// order must never reach a report.
package maputil

import (
	"cmp"
	"slices"
)

// SortedKeys returns the keys of m in ascending order.
// A nil or empty map yields an empty, non-nil slice.
func SortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// KeyDiff is the decomposition of two key sets into the keys only in the
// new set, only in the old set, and in both. Each slice is sorted ascending
// and never nil.
type KeyDiff[K cmp.Ordered] struct {
	Added   []K
	Removed []K
	Common  []K
}

// DiffKeys decomposes the key sets of oldMap and newMap.
func DiffKeys[K cmp.Ordered, V, W any](oldMap map[K]V, newMap map[K]W) KeyDiff[K] {
	d := KeyDiff[K]{
		Added:   []K{},
		Removed: []K{},
		Common:  []K{},
	}
	for k := range oldMap {
		if _, ok := newMap[k]; ok {
			d.Common = append(d.Common, k)
		} else {
			d.Removed = append(d.Removed, k)
		}
	}
	for k := range newMap {
		if _, ok := oldMap[k]; !ok {
			d.Added = append(d.Added, k)
		}
	}
	slices.Sort(d.Added)
	slices.Sort(d.Removed)
	slices.Sort(d.Common)
	return d
}

// Set builds a membership set from items, collapsing duplicates.
func Set[K comparable](items []K) map[K]struct{} {
	s := make(map[K]struct{}, len(items))
	for _, item := range items {
		s[item] = struct{}{}
	}
	return s
}
