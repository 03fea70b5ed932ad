// Package logging assembles structured slog loggers and formatting helpers used
// across menubg.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so background jobs tag their log
// lines with a job identifier. The package also provides a no-op logger for
// tests and wiring code that cannot fail.
package logging
