package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// OutputManager handles output file organization for analysis runs.
type OutputManager struct {
	BaseOutputDir string
}

// NewOutputManager creates a new output manager rooted at baseOutputDir.
func NewOutputManager(baseOutputDir string) *OutputManager {
	return &OutputManager{BaseOutputDir: baseOutputDir}
}

// CreateRunOutputDir creates (if needed) and returns the per-run directory.
func (om *OutputManager) CreateRunOutputDir(runID string) (string, error) {
	runDir := filepath.Join(om.BaseOutputDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create run output directory: %w", err)
	}
	return runDir, nil
}

// OutputFilePath returns the full path for a named output file of a run.
// Path separators in fileName are stripped.
func (om *OutputManager) OutputFilePath(runID, fileName string) (string, error) {
	runDir, err := om.CreateRunOutputDir(runID)
	if err != nil {
		return "", err
	}
	return filepath.Join(runDir, filepath.Base(fileName)), nil
}
