// Package commands provides CLI command handlers for apidiff.
package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/erraggy/apidiff/internal/cliutil"
	"github.com/erraggy/apidiff/internal/fileutil"
)

// ErrDifferencesFound is returned by the diff command when --fail-on-diff
// is set and the documents differ. The report has already been written;
// callers should exit non-zero without printing another message.
var ErrDifferencesFound = errors.New("differences found")

// Stdout and Stderr are the command output streams. Tests replace them.
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// ValidateOutputPath checks if the output path is safe to write to
func ValidateOutputPath(outputPath string, inputPaths []string) error {
	absOutputPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}

	for _, inputPath := range inputPaths {
		absInputPath, err := filepath.Abs(inputPath)
		if err != nil {
			return fmt.Errorf("invalid input path %s: %w", inputPath, err)
		}

		if absOutputPath == absInputPath {
			return fmt.Errorf("output file %s would overwrite input file %s", outputPath, inputPath)
		}
	}

	// Check if output file already exists and warn (but don't error)
	if _, err := os.Stat(outputPath); err == nil {
		cliutil.Writef(Stderr, "Warning: output file %s already exists and will be overwritten\n", outputPath)
	}

	return nil
}

// RejectSymlinkOutput checks if the output path is a symlink and returns an error if so.
// This prevents symlink attacks where a symlink could redirect output to an unintended location.
func RejectSymlinkOutput(cleanedPath string) error {
	return fileutil.RejectSymlink(cleanedPath)
}

// writeOutput writes data to outputPath, or to Stdout when outputPath is
// empty. Files are created owner read/write only.
func writeOutput(outputPath string, inputPaths []string, data []byte) error {
	if outputPath == "" {
		_, err := Stdout.Write(data)
		return err
	}
	cleaned := filepath.Clean(outputPath)
	if err := ValidateOutputPath(cleaned, inputPaths); err != nil {
		return err
	}
	return fileutil.WriteOwnerOnly(cleaned, data)
}

// splitList splits a comma-separated flag value, dropping blank items.
func splitList(s string) []string {
	var out []string
	for item := range strings.SplitSeq(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
