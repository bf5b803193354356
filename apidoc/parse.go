package apidoc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/erraggy/apidiff/apierrors"
	"go.yaml.in/yaml/v4"
)

// FormatBytes formats a byte count into a human-readable string using binary units (KiB, MiB, etc.)
func FormatBytes(size int64) string {
	if size < 0 {
		return fmt.Sprintf("%d B", size)
	}

	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}

	div, exp := int64(unit), 0
	for n := size / unit; n >= unit && exp < 5; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}

// Parse decodes a JSON or YAML document. The format is detected from the
// content: input starting with '{' or '[' is JSON, anything else YAML.
func Parse(data []byte) (*Document, error) {
	return parseBytes(data, "", detectFormatFromContent(data))
}

// ParseFile reads and decodes the document at path. The format is taken
// from the file extension, falling back to content detection.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path) //nolint:gosec // reading user-supplied document paths is the purpose
	if err != nil {
		return nil, &apierrors.ParseError{Path: path, Message: "reading file", Cause: err}
	}
	format := detectFormatFromPath(path)
	if format == SourceFormatUnknown {
		format = detectFormatFromContent(data)
	}
	doc, err := parseBytes(data, path, format)
	if err != nil {
		return nil, err
	}
	doc.SourcePath = path
	return doc, nil
}

var utf8BOM = []byte("\xef\xbb\xbf")

func parseBytes(data []byte, path string, format SourceFormat) (*Document, error) {
	size := int64(len(data))
	// A UTF-8 BOM is common in exported Swagger files.
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &apierrors.ParseError{Path: path, Message: "document is empty"}
	}

	var raw any
	switch format {
	case SourceFormatJSON:
		if err := decodeJSON(data, &raw); err != nil {
			return nil, &apierrors.ParseError{Path: path, Format: string(format), Message: "decoding JSON", Cause: err}
		}
	default:
		format = SourceFormatYAML
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, &apierrors.ParseError{Path: path, Format: string(format), Message: "decoding YAML", Cause: err}
		}
	}

	doc, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	doc.SourceFormat = format
	doc.SourceSize = size
	return doc, nil
}

// decodeJSON decodes a single JSON value, keeping numbers as json.Number so
// integers beyond 2^53 survive intact.
func decodeJSON(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after top-level value")
	}
	return nil
}

// detectFormatFromPath detects the source format from a file path
func detectFormatFromPath(path string) SourceFormat {
	switch filepath.Ext(path) {
	case ".json":
		return SourceFormatJSON
	case ".yaml", ".yml":
		return SourceFormatYAML
	default:
		return SourceFormatUnknown
	}
}

// detectFormatFromContent attempts to detect the format from the content bytes
// JSON typically starts with '{' or '[', while YAML does not
func detectFormatFromContent(data []byte) SourceFormat {
	trimmed := bytes.TrimLeft(bytes.TrimPrefix(data, utf8BOM), " \t\n\r")

	if len(trimmed) == 0 {
		return SourceFormatUnknown
	}

	if trimmed[0] == '{' || trimmed[0] == '[' {
		return SourceFormatJSON
	}

	return SourceFormatYAML
}
