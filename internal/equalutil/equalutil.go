// Package equalutil provides equality helpers for the opaque values carried
// by API description documents (schemas, security requirements, examples).
package equalutil

import (
	"encoding/json"
	"math"
	"math/big"
	"reflect"

	"github.com/google/go-cmp/cmp"
)

// numbersEqual treats every numeric representation decoded from JSON or YAML
// as the same number, so 1 (int from YAML) equals json.Number("1.0").
// Finite values compare exactly as rationals; integers beyond 2^53 keep
// every digit.
var numbersEqual = cmp.FilterValues(
	func(x, y any) bool {
		return isNumber(x) && isNumber(y)
	},
	cmp.Comparer(func(x, y any) bool {
		fx, xInf := nonFinite(x)
		fy, yInf := nonFinite(y)
		if xInf || yInf {
			if math.IsNaN(fx) && math.IsNaN(fy) {
				return true
			}
			return xInf && yInf && fx == fy
		}
		rx, xok := toRat(x)
		ry, yok := toRat(y)
		if !xok || !yok {
			return false
		}
		return rx.Cmp(ry) == 0
	}),
)

// exportAll lets hand-built documents carry Go structs with unexported
// fields; they are compared field by field instead of panicking.
var exportAll = cmp.Exporter(func(reflect.Type) bool { return true })

// DeepEqual reports whether a and b are structurally identical: every nested
// key/value pair matches recursively and array elements match in order.
// A nil map is not equal to an empty map, matching the distinction between
// an absent value and an empty object in the source document.
func DeepEqual(a, b any) bool {
	return cmp.Equal(a, b, numbersEqual, exportAll)
}

func isNumber(v any) bool {
	switch v.(type) {
	case json.Number, float64, float32,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return true
	default:
		return false
	}
}

// nonFinite returns v as a float64 when it is a NaN or infinity.
func nonFinite(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return f, true
	}
	return 0, false
}

func toRat(v any) (*big.Rat, bool) {
	r := new(big.Rat)
	switch n := v.(type) {
	case json.Number:
		return r.SetString(string(n))
	case float64:
		return r.SetFloat64(n), true
	case float32:
		return r.SetFloat64(float64(n)), true
	case int:
		return r.SetInt64(int64(n)), true
	case int8:
		return r.SetInt64(int64(n)), true
	case int16:
		return r.SetInt64(int64(n)), true
	case int32:
		return r.SetInt64(int64(n)), true
	case int64:
		return r.SetInt64(n), true
	case uint:
		return r.SetUint64(uint64(n)), true
	case uint8:
		return r.SetUint64(uint64(n)), true
	case uint16:
		return r.SetUint64(uint64(n)), true
	case uint32:
		return r.SetUint64(uint64(n)), true
	case uint64:
		return r.SetUint64(n), true
	default:
		return nil, false
	}
}
