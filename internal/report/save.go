package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultDir holds saved analyses, relative to the working directory.
const DefaultDir = "analysis"

const (
	filePrefix = "claude_analysis_"
	timeLayout = "20060102_150405"
)

// Path returns the file an analysis taken at now is saved to. ext includes
// the leading dot.
func Path(dir string, now time.Time, ext string) string {
	if dir == "" {
		dir = DefaultDir
	}
	return filepath.Join(dir, filePrefix+now.Format(timeLayout)+ext)
}

// Save writes text to <dir>/claude_analysis_<YYYYMMDD_HHMMSS>.txt, creating
// dir when needed, and returns the path.
func Save(text, dir string, now time.Time) (string, error) {
	return SaveBytes([]byte(text), dir, now, ".txt")
}

// SaveBytes is Save for an arbitrary rendering and extension.
func SaveBytes(data []byte, dir string, now time.Time, ext string) (string, error) {
	path := Path(dir, now, ext)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing analysis: %w", err)
	}
	return path, nil
}
