package differ

import (
	"fmt"
	"strings"

	"github.com/erraggy/apidiff/apidoc"
	"github.com/erraggy/apidiff/apierrors"
	"github.com/erraggy/apidiff/internal/equalutil"
	"github.com/erraggy/apidiff/internal/maputil"
)

// ParamIdentity selects how parameters of one operation are matched across
// versions.
type ParamIdentity string

const (
	// ParamIdentityName matches parameters by name alone. A query "id" and a
	// path "id" collide, and the later one in source order wins.
	ParamIdentityName ParamIdentity = "name"
	// ParamIdentityNameIn matches parameters by name and location, so the
	// same name in two locations is two independent parameters.
	ParamIdentityNameIn ParamIdentity = "name-in"
)

// ParseParamIdentity converts a string to a ParamIdentity.
func ParseParamIdentity(s string) (ParamIdentity, error) {
	switch ParamIdentity(s) {
	case "", ParamIdentityName:
		return ParamIdentityName, nil
	case ParamIdentityNameIn:
		return ParamIdentityNameIn, nil
	default:
		return "", &apierrors.ConfigError{
			Option:  "param-identity",
			Value:   s,
			Message: fmt.Sprintf("must be %q or %q", ParamIdentityName, ParamIdentityNameIn),
		}
	}
}

// Parameter fields compared by DiffParameters, in reporting order.
const (
	FieldIn          = "in"
	FieldRequired    = "required"
	FieldDescription = "description"
	FieldSchema      = "schema"
)

// ParamChange names a parameter present in both versions and the fields
// that differ between them.
type ParamChange struct {
	Name   string   `json:"name" yaml:"name"`
	Fields []string `json:"fields" yaml:"fields"`
}

// ParamChangeSet is the result of comparing the parameters of one operation.
// Added and Removed hold parameter names, rendered "name:in" under
// ParamIdentityNameIn; all three follow key order.
type ParamChangeSet struct {
	Added   []string      `json:"added" yaml:"added"`
	Removed []string      `json:"removed" yaml:"removed"`
	Changed []ParamChange `json:"changed" yaml:"changed"`
}

// IsEmpty reports whether no parameter was added, removed or changed.
func (s ParamChangeSet) IsEmpty() bool {
	return len(s.Added) == 0 && len(s.Removed) == 0 && len(s.Changed) == 0
}

// ParameterMap keys params by identity. A parameter without a name is keyed
// by its $ref. When two parameters share a key, the later one wins.
func ParameterMap(params []apidoc.Parameter, identity ParamIdentity) map[string]apidoc.Parameter {
	m := make(map[string]apidoc.Parameter, len(params))
	for _, p := range params {
		m[paramKey(p, identity)] = p
	}
	return m
}

// paramKeySep joins name and location under ParamIdentityNameIn. NUL cannot
// occur in either field, so distinct (name, in) pairs never share a key.
const paramKeySep = "\x00"

func paramKey(p apidoc.Parameter, identity ParamIdentity) string {
	name := p.Name
	if name == "" {
		name = p.Ref
	}
	if identity == ParamIdentityNameIn {
		return name + paramKeySep + p.In
	}
	return name
}

// paramDisplayName renders a parameter key as "name:in" for reports.
func paramDisplayName(key string) string {
	return strings.Replace(key, paramKeySep, ":", 1)
}

func displayNames(keys []string) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = paramDisplayName(k)
	}
	return out
}

// DiffParameters compares two keyed parameter collections. A parameter
// present on one side only is reported as added or removed and never also
// as changed.
func DiffParameters(oldParams, newParams map[string]apidoc.Parameter) ParamChangeSet {
	keys := maputil.DiffKeys(oldParams, newParams)
	set := ParamChangeSet{
		Added:   displayNames(keys.Added),
		Removed: displayNames(keys.Removed),
		Changed: []ParamChange{},
	}
	for _, name := range keys.Common {
		if fields := changedParamFields(oldParams[name], newParams[name]); len(fields) > 0 {
			set.Changed = append(set.Changed, ParamChange{Name: paramDisplayName(name), Fields: fields})
		}
	}
	return set
}

func changedParamFields(a, b apidoc.Parameter) []string {
	var fields []string
	if a.In != b.In {
		fields = append(fields, FieldIn)
	}
	if a.Required != b.Required {
		fields = append(fields, FieldRequired)
	}
	if a.Description != b.Description {
		fields = append(fields, FieldDescription)
	}
	if !equalutil.DeepEqual(a.Schema, b.Schema) {
		fields = append(fields, FieldSchema)
	}
	return fields
}
