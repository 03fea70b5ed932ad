// Package main hosts the menubg CLI entrypoint and command graph.
//
// The Cobra command tree loads configuration once, opens the history journal,
// and hands the real work to the internal packages: the convert workflow and
// its prompts, the one-shot install, backup and restore commands, and the
// border transform. Long operations run on the single background worker while
// this package owns the terminal.
package main
