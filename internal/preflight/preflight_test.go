package preflight

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"menubg/internal/config"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckWritableDirectoryCreates(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "backups", "nested")
	result := CheckWritableDirectory("Backup directory", dir)
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Fatalf("directory not created: %v", err)
	}
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	root := t.TempDir()
	cfg.Paths.GameDir = filepath.Join(root, "game")
	cfg.Paths.BackupDir = filepath.Join(root, "backups")
	cfg.Paths.ConverterDir = filepath.Join(root, "rad")
	return &cfg
}

func TestRunAllReportsMissingMoviesDir(t *testing.T) {
	cfg := testConfig(t)
	if err := os.MkdirAll(cfg.Paths.GameDir, 0o755); err != nil {
		t.Fatal(err)
	}

	results := RunAll(context.Background(), cfg)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if !results[0].Passed || results[1].Passed || !results[2].Passed {
		t.Fatalf("unexpected results: %+v", results)
	}
	err := Failed(results)
	if err == nil || !strings.Contains(err.Error(), "Movies directory") {
		t.Fatalf("Failed = %v", err)
	}
}

func TestRunAllPasses(t *testing.T) {
	cfg := testConfig(t)
	if err := os.MkdirAll(cfg.MoviesDir(), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := Failed(RunAll(context.Background(), cfg)); err != nil {
		t.Fatalf("Failed = %v", err)
	}
}

func TestCheckSystemDepsFindsConverter(t *testing.T) {
	cfg := testConfig(t)
	if err := os.MkdirAll(cfg.Paths.ConverterDir, 0o755); err != nil {
		t.Fatal(err)
	}
	exe := filepath.Join(cfg.Paths.ConverterDir, "radvideo64.exe")
	if err := os.WriteFile(exe, []byte("MZ"), 0o755); err != nil {
		t.Fatal(err)
	}
	cfg.Border.FFmpegBinary = "definitely-not-installed-ffmpeg"

	statuses := CheckSystemDeps(context.Background(), cfg)
	if len(statuses) != 3 {
		t.Fatalf("expected 3 statuses, got %d", len(statuses))
	}
	if !statuses[0].Available || statuses[0].Command != exe {
		t.Fatalf("converter status = %+v", statuses[0])
	}
	if statuses[1].Available {
		t.Fatalf("ffmpeg should be missing: %+v", statuses[1])
	}
	for _, s := range statuses {
		if !s.Optional {
			t.Fatalf("%s should be optional", s.Name)
		}
	}
}
