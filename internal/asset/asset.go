package asset

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"menubg/internal/fileutil"
)

// Backup copies originalPath to backupPath when the original exists and no
// backup is present yet. It reports whether a copy was made. An existing
// backup is never overwritten, so only the first original is ever kept.
func Backup(originalPath, backupPath string) (bool, error) {
	hasOriginal, err := fileutil.Exists(originalPath)
	if err != nil {
		return false, fmt.Errorf("check original %s: %w", originalPath, err)
	}
	if !hasOriginal {
		return false, nil
	}
	hasBackup, err := fileutil.Exists(backupPath)
	if err != nil {
		return false, fmt.Errorf("check backup %s: %w", backupPath, err)
	}
	if hasBackup {
		return false, nil
	}
	if err := fileutil.CopyFileVerified(originalPath, backupPath); err != nil {
		return false, fmt.Errorf("backup %s: %w", originalPath, err)
	}
	return true, nil
}

// InstallConverted overwrites destinationPath with a copy of sourceFile.
func InstallConverted(sourceFile, destinationPath string) error {
	info, err := os.Stat(sourceFile)
	if err != nil {
		return fmt.Errorf("install %s: %w", sourceFile, err)
	}
	if info.IsDir() {
		return fmt.Errorf("install %s: %w", sourceFile, &fs.PathError{Op: "install", Path: sourceFile, Err: errors.New("is a directory")})
	}
	if err := fileutil.CopyFileVerified(sourceFile, destinationPath); err != nil {
		return fmt.Errorf("install to %s: %w", destinationPath, err)
	}
	return nil
}

// Restore copies the backup back over the live asset. Without a backup it
// returns ErrNoBackup and leaves originalPath untouched.
func Restore(backupPath, originalPath string) error {
	hasBackup, err := fileutil.Exists(backupPath)
	if err != nil {
		return fmt.Errorf("check backup %s: %w", backupPath, err)
	}
	if !hasBackup {
		return fmt.Errorf("%w: %s not found", ErrNoBackup, backupPath)
	}
	if err := fileutil.CopyFileVerified(backupPath, originalPath); err != nil {
		return fmt.Errorf("restore %s: %w", originalPath, err)
	}
	return nil
}
