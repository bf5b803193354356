package maputil

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortedKeys(t *testing.T) {
	tests := []struct {
		name     string
		input    map[string]bool
		expected []string
	}{
		{
			name:     "sorted keys",
			input:    map[string]bool{"zebra": true, "apple": true, "mango": true},
			expected: []string{"apple", "mango", "zebra"},
		},
		{
			name:     "single key",
			input:    map[string]bool{"only": true},
			expected: []string{"only"},
		},
		{
			name:     "empty map",
			input:    map[string]bool{},
			expected: []string{},
		},
		{
			name:     "nil map",
			input:    nil,
			expected: []string{},
		},
		{
			name:     "byte order puts upper case first",
			input:    map[string]bool{"b": true, "B": true, "a": true},
			expected: []string{"B", "a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SortedKeys(tt.input)
			assert.Equal(t, tt.expected, got, "SortedKeys(%v)", tt.input)
		})
	}
}

func TestSortedKeys_PointerValues(t *testing.T) {
	type item struct{ name string }
	input := map[string]*item{"z": {name: "z"}, "a": {name: "a"}}
	got := SortedKeys(input)
	expected := []string{"a", "z"}
	assert.Equal(t, expected, got, "SortedKeys(pointer map)")
}

func TestDiffKeys(t *testing.T) {
	tests := []struct {
		name    string
		old     map[string]int
		new     map[string]int
		added   []string
		removed []string
		common  []string
	}{
		{
			name:    "both empty",
			added:   []string{},
			removed: []string{},
			common:  []string{},
		},
		{
			name:    "all added",
			new:     map[string]int{"/b": 1, "/a": 1},
			added:   []string{"/a", "/b"},
			removed: []string{},
			common:  []string{},
		},
		{
			name:    "all removed",
			old:     map[string]int{"/b": 1, "/a": 1},
			added:   []string{},
			removed: []string{"/a", "/b"},
			common:  []string{},
		},
		{
			name:    "mixed",
			old:     map[string]int{"/cart": 1, "/orders": 1, "/wallet": 1},
			new:     map[string]int{"/orders": 2, "/wallet": 2, "/checkout": 2},
			added:   []string{"/checkout"},
			removed: []string{"/cart"},
			common:  []string{"/orders", "/wallet"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := DiffKeys(tt.old, tt.new)
			assert.Equal(t, tt.added, d.Added)
			assert.Equal(t, tt.removed, d.Removed)
			assert.Equal(t, tt.common, d.Common)
		})
	}
}

func TestDiffKeys_Symmetry(t *testing.T) {
	a := map[string]bool{"x": true, "y": true}
	b := map[string]bool{"y": true, "z": true}

	ab := DiffKeys(a, b)
	ba := DiffKeys(b, a)

	assert.Equal(t, ab.Added, ba.Removed)
	assert.Equal(t, ab.Removed, ba.Added)
	assert.Equal(t, ab.Common, ba.Common)
}

func TestDiffKeys_InsertionOrderIrrelevant(t *testing.T) {
	keys := []string{"/e", "/a", "/d", "/c", "/b", "/f", "/g"}
	want := DiffKeys(map[string]int{"/a": 1, "/c": 1}, setOf(keys))

	for i := 0; i < 20; i++ {
		shuffled := append([]string(nil), keys...)
		rand.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		got := DiffKeys(map[string]int{"/c": 1, "/a": 1}, setOf(shuffled))
		assert.Equal(t, want, got)
	}
}

func TestSet(t *testing.T) {
	s := Set([]string{"a", "b", "a"})
	assert.Len(t, s, 2)
	assert.Contains(t, s, "a")
	assert.Contains(t, s, "b")
}

func setOf(keys []string) map[string]int {
	m := make(map[string]int, len(keys))
	for i, k := range keys {
		m[k] = i
	}
	return m
}
