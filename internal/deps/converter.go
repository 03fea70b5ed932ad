package deps

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrConverterNotFound is returned when no converter executable is found.
var ErrConverterNotFound = errors.New("converter executable not found")

// ConverterSearch describes where to look for the external converter.
type ConverterSearch struct {
	// Primary is the configured converter directory, or the executable itself.
	Primary string
	// Extra directories are scanned after Primary.
	Extra []string
	// Executables are tried in order inside every directory.
	Executables []string
	// WorkDir is scanned last; empty means the process working directory.
	WorkDir string
}

// FindConverter returns the first converter executable found. Primary may
// name the executable directly; otherwise every directory is scanned for the
// configured executable names in order.
func FindConverter(search ConverterSearch) (string, error) {
	primary := strings.TrimSpace(search.Primary)
	if primary != "" {
		if info, err := os.Stat(primary); err == nil && !info.IsDir() {
			return primary, nil
		}
	}

	dirs := make([]string, 0, len(search.Extra)+2)
	if primary != "" {
		dirs = append(dirs, primary)
	}
	dirs = append(dirs, search.Extra...)
	workDir := search.WorkDir
	if workDir == "" {
		if wd, err := os.Getwd(); err == nil {
			workDir = wd
		}
	}
	if workDir != "" {
		dirs = append(dirs, workDir)
	}

	for _, dir := range dirs {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			continue
		}
		for _, name := range search.Executables {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}
	}
	return "", fmt.Errorf("%w: looked for %s in %s", ErrConverterNotFound,
		strings.Join(search.Executables, ", "), strings.Join(dirs, ", "))
}

// CheckConverter reports converter availability in the same shape as CheckBinaries.
func CheckConverter(search ConverterSearch) Status {
	status := Status{
		Name:        "RAD Video Tools",
		Description: "Required to produce the BK2 container",
	}
	path, err := FindConverter(search)
	if err != nil {
		status.Command = strings.Join(search.Executables, "/")
		status.Detail = "not found; use install-file with a pre-converted BK2"
		return status
	}
	status.Command = path
	status.Available = true
	return status
}
