package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"menubg/internal/asset"
)

func TestInstallFileThenRestore(t *testing.T) {
	env := setupCLITestEnv(t)
	converted := filepath.Join(env.baseDir, "custom.bk2")
	writeFile(t, converted, "BIK2 custom menu")

	out, _, err := runCLI(t, []string{"install-file", converted}, env.configPath)
	if err != nil {
		t.Fatalf("install-file: %v", err)
	}
	requireContains(t, out, "original saved to")
	if got := readFile(t, env.livePath); got != "BIK2 custom menu" {
		t.Fatalf("live asset = %q", got)
	}
	if got := readFile(t, filepath.Join(env.backupDir, "EVE_Title_original.bk2")); got != originalBytes {
		t.Fatalf("backup = %q", got)
	}

	// A second install keeps the first backup.
	writeFile(t, converted, "BIK2 second menu")
	out, _, err = runCLI(t, []string{"install-file", converted}, env.configPath)
	if err != nil {
		t.Fatalf("second install-file: %v", err)
	}
	requireContains(t, out, "already present")
	if got := readFile(t, filepath.Join(env.backupDir, "EVE_Title_original.bk2")); got != originalBytes {
		t.Fatalf("backup overwritten: %q", got)
	}

	out, _, err = runCLI(t, []string{"restore"}, env.configPath)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	requireContains(t, out, "Restored")
	if got := readFile(t, env.livePath); got != originalBytes {
		t.Fatalf("live asset after restore = %q", got)
	}

	out, _, err = runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "restore")
	requireContains(t, out, "install")
	requireContains(t, out, "backup")
}

func TestRestoreWithoutBackup(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"restore"}, env.configPath)
	if !errors.Is(err, asset.ErrNoBackup) {
		t.Fatalf("expected ErrNoBackup, got %v", err)
	}
	if got := readFile(t, env.livePath); got != originalBytes {
		t.Fatalf("live asset changed: %q", got)
	}
}

func TestBackupCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, []string{"backup"}, env.configPath)
	if err != nil {
		t.Fatalf("backup: %v", err)
	}
	requireContains(t, out, "original saved to")

	out, _, err = runCLI(t, []string{"backup"}, env.configPath)
	if err != nil {
		t.Fatalf("second backup: %v", err)
	}
	requireContains(t, out, "already present")
}

func TestInstallFileMissingSource(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"install-file", filepath.Join(env.baseDir, "missing.bk2")}, env.configPath)
	if !errors.Is(err, asset.ErrMissingPath) {
		t.Fatalf("expected ErrMissingPath, got %v", err)
	}
}

func TestInstallFileRequiresMoviesDir(t *testing.T) {
	env := setupCLITestEnv(t)
	converted := filepath.Join(env.baseDir, "custom.bk2")
	writeFile(t, converted, "x")
	if err := os.RemoveAll(filepath.Join(env.gameDir, "SB")); err != nil {
		t.Fatal(err)
	}
	_, _, err := runCLI(t, []string{"install-file", converted}, env.configPath)
	if err == nil {
		t.Fatal("expected preflight failure")
	}
	requireContains(t, err.Error(), "Movies directory")
}

func TestStatusCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	env.stubConverter(t)
	out, _, err := runCLI(t, []string{"status"}, env.configPath)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "Live asset")
	requireContains(t, out, "RAD Video Tools")
	requireContains(t, out, env.livePath)
}
