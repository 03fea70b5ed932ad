package asset

import (
	"fmt"
	"os"

	"menubg/internal/config"
	"menubg/internal/fileutil"
)

// Layout resolves every path the install and restore operations touch.
type Layout struct {
	GameDir       string
	MoviesDir     string
	LivePath      string
	BackupDir     string
	BackupPath    string
	ConvertedPath string
}

// LayoutFromConfig derives the layout from a loaded configuration.
func LayoutFromConfig(cfg *config.Config) Layout {
	return Layout{
		GameDir:       cfg.Paths.GameDir,
		MoviesDir:     cfg.MoviesDir(),
		LivePath:      cfg.LivePath(),
		BackupDir:     cfg.Paths.BackupDir,
		BackupPath:    cfg.BackupPath(),
		ConvertedPath: cfg.ConvertedPath(),
	}
}

// Prepare verifies the game and movies directories exist and creates the
// backup directory.
func (l Layout) Prepare() error {
	if !fileutil.DirExists(l.GameDir) {
		return fmt.Errorf("%w: game directory %s", ErrMissingPath, l.GameDir)
	}
	if !fileutil.DirExists(l.MoviesDir) {
		return fmt.Errorf("%w: movies directory %s (is the game directory correct?)", ErrMissingPath, l.MoviesDir)
	}
	if err := os.MkdirAll(l.BackupDir, 0o755); err != nil {
		return fmt.Errorf("create backup directory %s: %w", l.BackupDir, err)
	}
	return nil
}
