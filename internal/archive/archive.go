package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// timestampFormat names archived directories
const timestampFormat = "20060102-150405"

// ArchiveResults moves the results directory into a sibling "archive"
// directory under a timestamped name and returns the new path. The next run
// starts with an empty results directory.
func ArchiveResults(resultsDir string) (string, error) {
	info, err := os.Stat(resultsDir)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("results directory does not exist: %s", resultsDir)
	}
	if err != nil {
		return "", fmt.Errorf("failed to stat results directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("not a directory: %s", resultsDir)
	}

	resultsDir = filepath.Clean(resultsDir)
	archiveDir := filepath.Join(filepath.Dir(resultsDir), "archive")
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	archivePath := uniquePath(archiveDir, filepath.Base(resultsDir), time.Now())
	if err := os.Rename(resultsDir, archivePath); err != nil {
		return "", fmt.Errorf("failed to archive results directory: %w", err)
	}
	return archivePath, nil
}

// uniquePath returns archiveDir/<base>-<timestamp>, numbered when an
// archive of the same second already exists
func uniquePath(archiveDir, base string, now time.Time) string {
	name := fmt.Sprintf("%s-%s", base, now.Format(timestampFormat))
	path := filepath.Join(archiveDir, name)
	for i := 2; ; i++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path
		}
		path = filepath.Join(archiveDir, fmt.Sprintf("%s-%d", name, i))
	}
}
