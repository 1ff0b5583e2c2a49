// =============================================================================
// Hold Grid Converter - File Manager Utility
// =============================================================================
//
// File-handling helpers for the converter:
//   - Atomic output writes (temp file + rename, so a failed run never
//     leaves a half-written .scad file in place of a good one)
//   - Input archival after successful conversion
//   - Error log generation
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// EnsureDir creates a directory (and parents) if it does not exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// WriteFileAtomic writes data to path by way of a uniquely named temp file
// in the same directory, renamed into place once fully written. The unique
// suffix keeps concurrent invocations targeting the same output from
// trampling each other's temp files.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := EnsureDir(dir); err != nil {
		return err
	}

	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.New().String()))
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to move output into place: %w", err)
	}

	return nil
}

// ArchiveFile moves a processed input file into the archive directory,
// prefixing the name with a timestamp so repeated conversions of
// identically named exports do not collide.
func ArchiveFile(path, archiveDir string) (string, error) {
	if err := EnsureDir(archiveDir); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s_%s", time.Now().Format("20060102_150405"), filepath.Base(path))
	dest := filepath.Join(archiveDir, name)

	if err := os.Rename(path, dest); err != nil {
		return "", fmt.Errorf("failed to archive %s: %w", path, err)
	}

	return dest, nil
}

// WriteErrorLog writes a run's error lines to a uniquely named log file in
// the given directory and returns the log path.
func WriteErrorLog(dir string, lines []string) (string, error) {
	if err := EnsureDir(dir); err != nil {
		return "", err
	}

	name := fmt.Sprintf("errors_%s_%s.log", time.Now().Format("20060102_150405"), uuid.New().String()[:8])
	path := filepath.Join(dir, name)

	content := strings.Join(lines, "\n")
	if len(lines) > 0 {
		content += "\n"
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write error log: %w", err)
	}

	return path, nil
}
