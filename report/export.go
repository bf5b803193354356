package report

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"

	"github.com/zeebo/xxh3"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/apidiff/apierrors"
	"github.com/erraggy/apidiff/differ"
)

// Output format names accepted by Write.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ValidateFormat checks that format is one of the supported output formats.
func ValidateFormat(format string) error {
	switch format {
	case FormatText, FormatJSON, FormatYAML:
		return nil
	default:
		return &apierrors.ConfigError{
			Option:  "format",
			Value:   format,
			Message: fmt.Sprintf("must be %s, %s, or %s", FormatText, FormatJSON, FormatYAML),
		}
	}
}

// Write renders result to w in the given format.
func Write(w io.Writer, result *differ.DiffResult, format string, opts TextOptions) error {
	switch format {
	case FormatText:
		return Text(w, result, opts)
	case FormatJSON:
		return JSON(w, result)
	case FormatYAML:
		return YAML(w, result)
	default:
		return ValidateFormat(format)
	}
}

// JSON writes result as indented JSON followed by a newline.
func JSON(w io.Writer, result *differ.DiffResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling to JSON: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing JSON: %w", err)
	}
	return nil
}

// YAML writes result as YAML.
func YAML(w io.Writer, result *differ.DiffResult) error {
	data, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshaling to YAML: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing YAML: %w", err)
	}
	return nil
}

// Fingerprint returns the hex xxh3-128 digest of result's compact JSON
// encoding. Equal results always share a fingerprint, so it can be used to
// tell whether two comparison runs found the same differences.
func Fingerprint(result *differ.DiffResult) (string, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("marshaling to JSON: %w", err)
	}
	h := xxh3.New()
	_, _ = h.Write(data)
	sum := h.Sum128().Bytes()
	return hex.EncodeToString(sum[:]), nil
}
