package equalutil_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/erraggy/apidiff/internal/equalutil"
	"github.com/stretchr/testify/assert"
)

type opaque struct{ v int }

func TestDeepEqual(t *testing.T) {
	tests := []struct {
		name string
		a    any
		b    any
		want bool
	}{
		{name: "both nil", a: nil, b: nil, want: true},
		{name: "nil vs empty map", a: nil, b: map[string]any{}, want: false},
		{
			name: "identical nested schema",
			a:    map[string]any{"type": "string", "enum": []any{"a", "b"}},
			b:    map[string]any{"enum": []any{"a", "b"}, "type": "string"},
			want: true,
		},
		{
			name: "enum order is significant",
			a:    map[string]any{"enum": []any{"a", "b"}},
			b:    map[string]any{"enum": []any{"b", "a"}},
			want: false,
		},
		{
			name: "nested value differs",
			a:    map[string]any{"items": map[string]any{"type": "integer"}},
			b:    map[string]any{"items": map[string]any{"type": "number"}},
			want: false,
		},
		{
			name: "extra key",
			a:    map[string]any{"type": "integer"},
			b:    map[string]any{"type": "integer", "format": "int64"},
			want: false,
		},
		{
			name: "yaml int equals json float",
			a:    map[string]any{"maximum": 10},
			b:    map[string]any{"maximum": 10.0},
			want: true,
		},
		{
			name: "different numbers",
			a:    map[string]any{"minimum": 1},
			b:    map[string]any{"minimum": 2.5},
			want: false,
		},
		{
			name: "json number equals yaml int",
			a:    map[string]any{"maximum": json.Number("10")},
			b:    map[string]any{"maximum": 10},
			want: true,
		},
		{name: "json number forms", a: json.Number("1e2"), b: json.Number("100.0"), want: true},
		{
			name: "integers beyond float precision",
			a:    map[string]any{"maximum": json.Number("9007199254740993")},
			b:    map[string]any{"maximum": json.Number("9007199254740992")},
			want: false,
		},
		{name: "uint64 max vs float", a: uint64(math.MaxUint64), b: json.Number("18446744073709551616"), want: false},
		{name: "both NaN", a: math.NaN(), b: math.NaN(), want: true},
		{name: "infinity vs number", a: math.Inf(1), b: json.Number("1"), want: false},
		{name: "same infinity", a: math.Inf(-1), b: math.Inf(-1), want: true},
		{name: "number vs string", a: 1, b: "1", want: false},
		{name: "json number vs string", a: json.Number("1"), b: "1", want: false},
		{name: "unexported fields equal", a: opaque{v: 1}, b: opaque{v: 1}, want: true},
		{name: "unexported fields differ", a: opaque{v: 1}, b: opaque{v: 2}, want: false},
		{name: "scalars", a: "x", b: "x", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, equalutil.DeepEqual(tt.a, tt.b))
			assert.Equal(t, tt.want, equalutil.DeepEqual(tt.b, tt.a), "DeepEqual must be symmetric")
		})
	}
}
