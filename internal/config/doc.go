// Package config loads, normalizes, and validates menubg configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads and writes TOML files, and honours MENUBG_* environment
// overrides for the installation paths. The Config type centralizes the game
// installation root, the external converter root, the backup location, and
// the border transform knobs so every command receives the same resolved
// layout.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths and clear validation errors. The loaded value is passed to
// each operation explicitly; nothing here is global.
package config
