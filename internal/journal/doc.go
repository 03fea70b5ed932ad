// Package journal keeps an append-only SQLite history of the file operations
// menubg performs: backups, installs, restores, and border transforms.
//
// The journal is informational. The backup file itself stays the only signal
// that a backup exists; journal rows add checksums and timestamps for the
// history command and for troubleshooting.
package journal
