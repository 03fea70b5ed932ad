package preflight

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"menubg/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
	// Optional results never fail a run.
	Optional bool
}

// RunAll executes the path checks every install or restore needs.
func RunAll(_ context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}
	return []Result{
		CheckDirectoryExists("Game directory", cfg.Paths.GameDir),
		CheckDirectoryExists("Movies directory", cfg.MoviesDir()),
		CheckWritableDirectory("Backup directory", cfg.Paths.BackupDir),
	}
}

// Failed returns the required results that did not pass, joined into one error.
func Failed(results []Result) error {
	var failures []string
	for _, r := range results {
		if !r.Passed && !r.Optional {
			failures = append(failures, fmt.Sprintf("%s: %s", r.Name, r.Detail))
		}
	}
	if len(failures) == 0 {
		return nil
	}
	return errors.New("preflight failed: " + strings.Join(failures, "; "))
}
