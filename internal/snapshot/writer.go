// Package snapshot delivers finished estimation results to their sinks: a
// JSON file for static dashboards, an HTTP endpoint, and a WebSocket stream.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/draw-odds/internal/models"
)

// FileWriter persists the latest estimation result as indented JSON. Writes
// go through a temp file in the target directory followed by a rename, so a
// concurrent reader never sees a torn snapshot.
type FileWriter struct {
	path   string
	logger *logrus.Logger
}

// NewFileWriter creates a file writer for the given snapshot path
func NewFileWriter(path string, logger *logrus.Logger) *FileWriter {
	if logger == nil {
		logger = logrus.New()
	}
	return &FileWriter{path: path, logger: logger}
}

// Write replaces the snapshot file with the given result
func (w *FileWriter) Write(result *models.EstimationResult) error {
	if w.path == "" {
		return fmt.Errorf("snapshot file path is required")
	}

	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	// Stage in the same directory so the rename stays on one filesystem
	tmp, err := os.CreateTemp(dir, ".snapshot-*.json")
	if err != nil {
		return fmt.Errorf("failed to create snapshot temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write snapshot temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close snapshot temp file: %w", err)
	}

	if err := os.Rename(tmpName, w.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace snapshot file: %w", err)
	}

	w.logger.WithFields(logrus.Fields{
		"path":   w.path,
		"run_id": result.RunID,
	}).Debug("Snapshot file written")

	return nil
}

// Path returns the configured snapshot location
func (w *FileWriter) Path() string {
	return w.path
}
