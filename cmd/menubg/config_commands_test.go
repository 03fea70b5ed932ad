package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected init to refuse overwriting without --overwrite")
	}
}

func TestConfigSetAndShow(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "set", "border.default_percent", "12.5"}, env.configPath)
	if err != nil {
		t.Fatalf("config set: %v", err)
	}
	requireContains(t, out, "Saved border.default_percent")

	out, _, err = runCLI(t, []string{"config", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "default_percent = 12.5")
	requireContains(t, out, env.gameDir)

	if _, _, err := runCLI(t, []string{"config", "set", "border.default_percent", "80"}, env.configPath); err == nil {
		t.Fatal("expected out-of-range percent to be rejected")
	}
	if _, _, err := runCLI(t, []string{"config", "set", "nope", "1"}, env.configPath); err == nil {
		t.Fatal("expected unknown key to be rejected")
	}
}

func TestConfigSetDoesNotPersistEnvOverrides(t *testing.T) {
	env := setupCLITestEnv(t)
	t.Setenv("MENUBG_LOG_LEVEL", "debug")

	if _, _, err := runCLI(t, []string{"config", "set", "border.default_percent", "8"}, env.configPath); err != nil {
		t.Fatalf("config set: %v", err)
	}
	saved := readFile(t, env.configPath)
	requireContains(t, saved, "default_percent = 8")
	if strings.Contains(saved, "debug") {
		t.Fatalf("environment log level written to config file:\n%s", saved)
	}
}
