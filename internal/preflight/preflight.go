package preflight

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"heifconv/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the checks for a run over inputDir. The input directory only
// needs to be listable; the output directory is created inside it once files
// are found. The history directory is only checked when history is enabled.
func RunAll(cfg *config.Config, inputDir string) []Result {
	results := []Result{CheckDirectoryReadable("Input directory", inputDir)}
	if cfg == nil {
		return results
	}
	results = append(results, CheckDirectoryAccess("State directory", cfg.Paths.StateDir))
	if cfg.History.Enabled {
		historyDir := filepath.Dir(cfg.History.Path)
		if historyDir != filepath.Clean(cfg.Paths.StateDir) {
			results = append(results, CheckDirectoryAccess("History directory", historyDir))
		}
	}
	return results
}

// Err folds failed results into one error, or nil when every check passed.
func Err(results []Result) error {
	var failed []string
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, fmt.Sprintf("%s: %s", r.Name, r.Detail))
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return errors.New("preflight failed: " + strings.Join(failed, "; "))
}
