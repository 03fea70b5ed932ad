package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

type cliTestEnv struct {
	baseDir      string
	configPath   string
	gameDir      string
	moviesDir    string
	livePath     string
	converterDir string
	backupDir    string
	logDir       string
}

const originalBytes = "BIK2 original menu"

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	for _, key := range []string{"MENUBG_GAME_DIR", "MENUBG_CONVERTER_DIR", "MENUBG_BACKUP_DIR", "MENUBG_LOG_DIR", "MENUBG_LOG_LEVEL", "MENUBG_LOG_FORMAT"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	env := &cliTestEnv{
		baseDir:      base,
		gameDir:      filepath.Join(base, "game"),
		converterDir: filepath.Join(base, "rad"),
		backupDir:    filepath.Join(base, "backups"),
		logDir:       filepath.Join(base, "logs"),
	}
	env.moviesDir = filepath.Join(env.gameDir, "SB", "Content", "Movies")
	env.livePath = filepath.Join(env.moviesDir, "EVE_Title.bk2")
	for _, dir := range []string{env.moviesDir, env.converterDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
	writeFile(t, env.livePath, originalBytes)

	env.configPath = filepath.Join(homeDir, ".config", "menubg", "config.toml")
	if err := os.MkdirAll(filepath.Dir(env.configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	content := fmt.Sprintf("[paths]\ngame_dir = %q\nconverter_dir = %q\nbackup_dir = %q\nlog_dir = %q\n",
		env.gameDir, env.converterDir, env.backupDir, env.logDir)
	writeFile(t, env.configPath, content)
	return env
}

// stubConverter installs a radvideo64.exe that exits immediately.
func (e *cliTestEnv) stubConverter(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub converter is a shell script")
	}
	path := filepath.Join(e.converterDir, "radvideo64.exe")
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub converter: %v", err)
	}
	return path
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(""))
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
