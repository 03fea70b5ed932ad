// Package asset owns the live menu background file and its one-time backup.
//
// The package-level functions implement the raw file contracts: Backup never
// overwrites an existing backup, InstallConverted always overwrites the live
// asset, and Restore refuses to run without a backup. Service layers layout
// resolution, logging, and journal records on top of them for the CLI and the
// workflow state machine.
package asset
