// Package fileutil writes report and document files with safe defaults.
package fileutil

import (
	"fmt"
	"os"
)

// OwnerReadWrite is the file permission mode for report and document output
// containing potentially sensitive API data (owner read/write only).
const OwnerReadWrite os.FileMode = 0o600

// RejectSymlink returns an error if path is a symlink. A path that does
// not exist yet is accepted.
func RejectSymlink(path string) error {
	info, err := os.Lstat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("fileutil: checking output path: %w", err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("fileutil: refusing to write to symlink: %s", path)
	}
	return nil
}

// WriteOwnerOnly writes data to path with [OwnerReadWrite] permissions,
// refusing to follow a symlink at path.
func WriteOwnerOnly(path string, data []byte) error {
	if err := RejectSymlink(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, OwnerReadWrite); err != nil {
		return fmt.Errorf("fileutil: writing %s: %w", path, err)
	}
	return nil
}
