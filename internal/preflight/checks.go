package preflight

import (
	"context"
	"fmt"
	"os"

	"menubg/internal/config"
	"menubg/internal/deps"
)

// CheckDirectoryExists verifies that path is an existing directory.
func CheckDirectoryExists(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	return Result{Name: name, Passed: true, Detail: path}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	if r := CheckDirectoryExists(name, path); !r.Passed {
		return r
	}
	if err := checkAccess(path); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckWritableDirectory creates path when missing and then checks access.
func CheckWritableDirectory(name, path string) Result {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: create: %v)", path, err)}
	}
	return CheckDirectoryAccess(name, path)
}

// CheckSystemDeps reports the converter and the media tools the border
// transform uses. None of them is needed by install-file or restore, so all
// are reported as optional.
func CheckSystemDeps(_ context.Context, cfg *config.Config) []deps.Status {
	statuses := []deps.Status{deps.CheckConverter(ConverterSearch(cfg))}
	statuses = append(statuses, deps.CheckBinaries([]deps.Requirement{
		{
			Name:        "FFmpeg",
			Command:     cfg.FFmpegBinary(),
			Description: "Required for the border transform",
			Optional:    true,
		},
		{
			Name:        "FFprobe",
			Command:     cfg.FFprobeBinary(),
			Description: "Required for media inspection",
			Optional:    true,
		},
	})...)
	statuses[0].Optional = true
	return statuses
}

// ConverterSearch builds the converter lookup from configuration.
func ConverterSearch(cfg *config.Config) deps.ConverterSearch {
	return deps.ConverterSearch{
		Primary:     cfg.Paths.ConverterDir,
		Extra:       cfg.Converter.SearchDirs,
		Executables: cfg.Converter.Executables,
	}
}
