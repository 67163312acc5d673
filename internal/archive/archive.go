package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ArchiveExports moves the export output directory into a timestamped
// sibling archive/ directory and returns the archived path. The next
// export run recreates a fresh exports directory.
func ArchiveExports(exportsDir string) (string, error) {
	if _, err := os.Stat(exportsDir); os.IsNotExist(err) {
		return "", fmt.Errorf("exports directory does not exist: %s", exportsDir)
	}

	archiveDir := filepath.Join(filepath.Dir(exportsDir), "archive")
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	archivePath := filepath.Join(archiveDir, "exports-"+time.Now().Format("20060102-150405"))
	if _, err := os.Stat(archivePath); err == nil {
		// A second archive run within the same second gets a
		// microsecond suffix instead of clobbering the first.
		archivePath = filepath.Join(archiveDir, "exports-"+time.Now().Format("20060102-150405.000000"))
	}

	if err := os.Rename(exportsDir, archivePath); err != nil {
		return "", fmt.Errorf("failed to archive exports directory: %w", err)
	}
	return archivePath, nil
}
