package converter

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"menubg/internal/logging"
)

func fakeExecutable(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "radvideo64.exe")
	if err := os.WriteFile(path, []byte("MZ"), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLaunchDirect(t *testing.T) {
	var calls []*exec.Cmd
	launcher := &Exec{logger: logging.NewNop(), start: func(cmd *exec.Cmd) error {
		calls = append(calls, cmd)
		return nil
	}}
	path := fakeExecutable(t)

	proc, err := launcher.Launch(path)
	if err != nil {
		t.Fatalf("Launch: %v", err)
	}
	if proc.Strategy != StrategyDirect || proc.Path != path {
		t.Fatalf("unexpected process %+v", proc)
	}
	if len(calls) != 1 || calls[0].Path != path || len(calls[0].Args) != 1 {
		t.Fatalf("expected one argument-less direct start, got %+v", calls)
	}
	if calls[0].Dir != filepath.Dir(path) {
		t.Fatalf("expected working dir %q, got %q", filepath.Dir(path), calls[0].Dir)
	}
}

func TestLaunchFallsBackToShell(t *testing.T) {
	attempts := 0
	launcher := &Exec{logger: logging.NewNop(), start: func(cmd *exec.Cmd) error {
		attempts++
		if attempts == 1 {
			return errors.New("exec format error")
		}
		return nil
	}}

	proc, err := launcher.Launch(fakeExecutable(t))
	if err != nil {
		t.Fatalf("Launch: %v", err)
	}
	if proc.Strategy != StrategyShell {
		t.Fatalf("expected shell strategy, got %s", proc.Strategy)
	}
	if attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", attempts)
	}
}

func TestLaunchGivesUpAfterShell(t *testing.T) {
	attempts := 0
	launcher := &Exec{logger: logging.NewNop(), start: func(cmd *exec.Cmd) error {
		attempts++
		return errors.New("denied")
	}}

	_, err := launcher.Launch(fakeExecutable(t))
	if !errors.Is(err, ErrLaunch) {
		t.Fatalf("expected ErrLaunch, got %v", err)
	}
	if attempts != 2 {
		t.Fatalf("expected exactly one fallback, got %d attempts", attempts)
	}
}

func TestLaunchMissingExecutable(t *testing.T) {
	launcher := &Exec{logger: logging.NewNop(), start: func(cmd *exec.Cmd) error {
		t.Fatal("start must not be called")
		return nil
	}}
	if _, err := launcher.Launch(filepath.Join(t.TempDir(), "missing.exe")); !errors.Is(err, ErrLaunch) {
		t.Fatalf("expected ErrLaunch, got %v", err)
	}
	if _, err := launcher.Launch("  "); !errors.Is(err, ErrLaunch) {
		t.Fatalf("expected ErrLaunch for empty path, got %v", err)
	}
}
