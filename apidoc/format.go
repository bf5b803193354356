package apidoc

import (
	"bytes"
	"encoding/json"

	"github.com/erraggy/apidiff/apierrors"
	"github.com/iancoleman/orderedmap"
)

// FormatJSON re-indents a JSON object with two spaces per level. Key order
// is kept as written and non-ASCII text and HTML characters are left
// unescaped, so the output diffs cleanly against the input.
func FormatJSON(data []byte) ([]byte, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	o := orderedmap.New()
	o.SetEscapeHTML(false)
	if err := json.Unmarshal(data, o); err != nil {
		return nil, &apierrors.ParseError{Format: string(SourceFormatJSON), Message: "decoding JSON object", Cause: err}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(o); err != nil {
		return nil, &apierrors.ParseError{Format: string(SourceFormatJSON), Message: "encoding JSON", Cause: err}
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
