package apidoc

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/erraggy/apidiff/apierrors"
	"github.com/erraggy/apidiff/internal/maputil"
)

// pathItemFields are path-level keys that never name an operation.
var pathItemFields = map[string]bool{
	"$ref":        true,
	"summary":     true,
	"description": true,
	"servers":     true,
	"parameters":  true,
}

// Decode builds a Document from a raw tree as produced by json.Unmarshal or
// yaml.Unmarshal into an `any`.
//
// Shape problems at document or path level return an [apierrors.DocumentError].
// Method values that are not operation-shaped do not fail decoding; they are
// recorded in [PathEntry.Rejected] so that only a comparison that actually
// considers the method fails.
func Decode(raw any) (*Document, error) {
	root, ok := normalize(raw).(map[string]any)
	if !ok {
		return nil, &apierrors.DocumentError{
			Message: "expected a mapping at the document root, got " + kindOf(raw),
		}
	}

	doc := &Document{
		Paths: make(map[string]*PathEntry),
	}
	if v, ok := root["openapi"].(string); ok {
		doc.Version = v
	} else if v, ok := root["swagger"].(string); ok {
		doc.Version = v
	}

	if err := decodePaths(root["paths"], doc); err != nil {
		return nil, err
	}
	if err := decodeSchemas(root, doc); err != nil {
		return nil, err
	}
	if err := decodeTags(root["tags"], doc); err != nil {
		return nil, err
	}
	if err := decodeServers(root["servers"], doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func decodePaths(v any, doc *Document) error {
	if v == nil {
		return nil
	}
	paths, ok := v.(map[string]any)
	if !ok {
		return &apierrors.DocumentError{
			Field:   "paths",
			Message: "expected a mapping, got " + kindOf(v),
		}
	}
	for _, path := range maputil.SortedKeys(paths) {
		item := paths[path]
		m, ok := item.(map[string]any)
		if !ok {
			return &apierrors.DocumentError{
				Path:    path,
				Message: "path entry must be a mapping, got " + kindOf(item),
			}
		}
		doc.Paths[path] = decodePathEntry(path, m)
	}
	return nil
}

func decodePathEntry(path string, m map[string]any) *PathEntry {
	entry := &PathEntry{Operations: make(map[string]*Operation)}
	for key, v := range m {
		if pathItemFields[key] || strings.HasPrefix(key, "x-") {
			continue
		}
		op, err := decodeOperation(path, key, v)
		if err != nil {
			if entry.Rejected == nil {
				entry.Rejected = make(map[string]error)
			}
			entry.Rejected[key] = err
			continue
		}
		entry.Operations[key] = op
	}
	return entry
}

func decodeOperation(path, method string, v any) (*Operation, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, &apierrors.MethodEntryError{
			Path:    path,
			Method:  method,
			Message: "expected an operation mapping, got " + kindOf(v),
		}
	}
	fieldErr := func(field, msg string) error {
		return &apierrors.MethodEntryError{Path: path, Method: method, Field: field, Message: msg}
	}

	op := &Operation{Security: m["security"]}
	var err error
	if op.Summary, err = optString(m, "summary"); err != nil {
		return nil, fieldErr("summary", err.Error())
	}
	if op.Description, err = optString(m, "description"); err != nil {
		return nil, fieldErr("description", err.Error())
	}
	if op.OperationID, err = optString(m, "operationId"); err != nil {
		return nil, fieldErr("operationId", err.Error())
	}

	if raw, ok := m["tags"]; ok && raw != nil {
		list, ok := raw.([]any)
		if !ok {
			return nil, fieldErr("tags", "expected a list, got "+kindOf(raw))
		}
		for i, t := range list {
			s, ok := t.(string)
			if !ok {
				return nil, fieldErr(fmt.Sprintf("tags[%d]", i), "expected a string, got "+kindOf(t))
			}
			op.Tags = append(op.Tags, s)
		}
	}

	if raw, ok := m["parameters"]; ok && raw != nil {
		list, ok := raw.([]any)
		if !ok {
			return nil, fieldErr("parameters", "expected a list, got "+kindOf(raw))
		}
		for i, p := range list {
			field := fmt.Sprintf("parameters[%d]", i)
			pm, ok := p.(map[string]any)
			if !ok {
				return nil, fieldErr(field, "expected a mapping, got "+kindOf(p))
			}
			param, err := decodeParameter(pm)
			if err != nil {
				return nil, fieldErr(field, err.Error())
			}
			op.Parameters = append(op.Parameters, param)
		}
	}

	_, op.HasRequestBody = m["requestBody"]

	if raw, ok := m["responses"]; ok && raw != nil {
		responses, ok := raw.(map[string]any)
		if !ok {
			return nil, fieldErr("responses", "expected a mapping, got "+kindOf(raw))
		}
		op.ResponseCodes = maputil.SortedKeys(responses)
	}

	return op, nil
}

func decodeParameter(m map[string]any) (Parameter, error) {
	var p Parameter
	var err error
	if p.Name, err = optString(m, "name"); err != nil {
		return p, fmt.Errorf("name: %w", err)
	}
	if p.In, err = optString(m, "in"); err != nil {
		return p, fmt.Errorf("in: %w", err)
	}
	if p.Description, err = optString(m, "description"); err != nil {
		return p, fmt.Errorf("description: %w", err)
	}
	if p.Ref, err = optString(m, "$ref"); err != nil {
		return p, fmt.Errorf("$ref: %w", err)
	}
	if raw, ok := m["required"]; ok && raw != nil {
		b, ok := raw.(bool)
		if !ok {
			return p, fmt.Errorf("required: expected a boolean, got %s", kindOf(raw))
		}
		p.Required = b
	}
	p.Schema = m["schema"]
	return p, nil
}

func decodeSchemas(root map[string]any, doc *Document) error {
	if raw, ok := root["components"]; ok && raw != nil {
		components, ok := raw.(map[string]any)
		if !ok {
			return &apierrors.DocumentError{Field: "components", Message: "expected a mapping, got " + kindOf(raw)}
		}
		if raw, ok := components["schemas"]; ok && raw != nil {
			schemas, ok := raw.(map[string]any)
			if !ok {
				return &apierrors.DocumentError{Field: "components.schemas", Message: "expected a mapping, got " + kindOf(raw)}
			}
			doc.Schemas = schemas
			return nil
		}
	}
	// Swagger 2.0 keeps schemas under definitions.
	if raw, ok := root["definitions"]; ok && raw != nil {
		defs, ok := raw.(map[string]any)
		if !ok {
			return &apierrors.DocumentError{Field: "definitions", Message: "expected a mapping, got " + kindOf(raw)}
		}
		doc.Schemas = defs
	}
	return nil
}

func decodeTags(v any, doc *Document) error {
	if v == nil {
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		return &apierrors.DocumentError{Field: "tags", Message: "expected a list, got " + kindOf(v)}
	}
	for i, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			return &apierrors.DocumentError{Field: fmt.Sprintf("tags[%d]", i), Message: "expected a mapping, got " + kindOf(item)}
		}
		name, _ := m["name"].(string)
		desc, _ := m["description"].(string)
		doc.Tags = append(doc.Tags, Tag{Name: name, Description: desc})
	}
	return nil
}

func decodeServers(v any, doc *Document) error {
	if v == nil {
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		return &apierrors.DocumentError{Field: "servers", Message: "expected a list, got " + kindOf(v)}
	}
	for i, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			return &apierrors.DocumentError{Field: fmt.Sprintf("servers[%d]", i), Message: "expected a mapping, got " + kindOf(item)}
		}
		url, _ := m["url"].(string)
		desc, _ := m["description"].(string)
		doc.Servers = append(doc.Servers, Server{URL: url, Description: desc})
	}
	return nil
}

// optString returns m[key] as a string; an absent or null value is "".
func optString(m map[string]any, key string) (string, error) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("expected a string, got %s", kindOf(raw))
	}
	return s, nil
}

// normalize rewrites a decoded tree so JSON and YAML inputs share one
// representation: mappings become map[string]any and every finite number a
// json.Number holding its exact decimal text. Non-finite YAML floats (.nan,
// .inf) stay float64 since they have no JSON spelling.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalize(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalize(val)
		}
		return out
	case int:
		return json.Number(strconv.FormatInt(int64(t), 10))
	case int64:
		return json.Number(strconv.FormatInt(t, 10))
	case int32:
		return json.Number(strconv.FormatInt(int64(t), 10))
	case uint:
		return json.Number(strconv.FormatUint(uint64(t), 10))
	case uint64:
		return json.Number(strconv.FormatUint(t, 10))
	case uint32:
		return json.Number(strconv.FormatUint(uint64(t), 10))
	case float32:
		return normalizeFloat(float64(t), 32)
	case float64:
		return normalizeFloat(t, 64)
	default:
		return v
	}
}

func normalizeFloat(f float64, bitSize int) any {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return f
	}
	return json.Number(strconv.FormatFloat(f, 'g', -1, bitSize))
}

// kindOf names the JSON kind of a decoded value for error messages.
func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any, map[any]any:
		return "mapping"
	case []any:
		return "list"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, float64, float32, int, int64, int32, uint, uint64, uint32:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}

