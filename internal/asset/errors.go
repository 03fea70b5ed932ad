package asset

import "errors"

var (
	// ErrMissingPath marks a required file or directory that does not exist.
	ErrMissingPath = errors.New("missing path")
	// ErrNoBackup is returned by Restore when no backup was ever taken.
	ErrNoBackup = errors.New("no backup")
)
