// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/apidiff/apidoc"
)

// NewDocument creates a document holding the given paths, with empty
// schema, tag and server collections.
func NewDocument(paths map[string]*apidoc.PathEntry) *apidoc.Document {
	if paths == nil {
		paths = make(map[string]*apidoc.PathEntry)
	}
	return &apidoc.Document{
		Version: "3.0.3",
		Paths:   paths,
		Schemas: make(map[string]any),
	}
}

// NewPathEntry creates a path entry from method/operation pairs.
func NewPathEntry(ops map[string]*apidoc.Operation) *apidoc.PathEntry {
	if ops == nil {
		ops = make(map[string]*apidoc.Operation)
	}
	return &apidoc.PathEntry{Operations: ops}
}

// NewDetailedDocument creates a document with two paths, a schema, tags and
// a server, resembling a small shop API.
func NewDetailedDocument() *apidoc.Document {
	doc := NewDocument(map[string]*apidoc.PathEntry{
		"/cart": NewPathEntry(map[string]*apidoc.Operation{
			"get": {Summary: "Get cart", Tags: []string{"Cart"}},
		}),
		"/orders": NewPathEntry(map[string]*apidoc.Operation{
			"get": {
				Summary: "List orders",
				Tags:    []string{"Orders"},
				Parameters: []apidoc.Parameter{
					{Name: "page", In: "query", Schema: map[string]any{"type": "integer", "minimum": 1.0}},
				},
				ResponseCodes: []string{"200"},
			},
			"post": {Summary: "Create order", Tags: []string{"Orders"}, HasRequestBody: true},
		}),
	})
	doc.Schemas["CartDTO"] = map[string]any{"type": "object"}
	doc.Tags = []apidoc.Tag{{Name: "Cart"}, {Name: "Orders"}}
	doc.Servers = []apidoc.Server{{URL: "http://localhost:8080", Description: "Local"}}
	return doc
}

// NewRawDocument creates an undecoded document tree with the given paths,
// as json.Unmarshal would produce it.
func NewRawDocument(paths map[string]any) map[string]any {
	return map[string]any{
		"openapi": "3.0.3",
		"info":    map[string]any{"title": "Test API", "version": "1.0.0"},
		"paths":   paths,
	}
}

// WriteTempYAML marshals a document to YAML and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempYAML(t *testing.T, doc any) string {
	t.Helper()

	data, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatalf("Failed to marshal document to YAML: %v", err)
	}

	tmpFile := filepath.Join(t.TempDir(), "test.yaml")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to write temporary YAML file: %v", err)
	}

	return tmpFile
}

// WriteTempJSON marshals a document to JSON and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempJSON(t *testing.T, doc any) string {
	t.Helper()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal document to JSON: %v", err)
	}

	tmpFile := filepath.Join(t.TempDir(), "test.json")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to write temporary JSON file: %v", err)
	}

	return tmpFile
}
