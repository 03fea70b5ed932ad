package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/goleak"

	"menubg/internal/logging"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestReportsCreatedFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "EVE_Title.bk2")

	w, err := Start(context.Background(), target, 50*time.Millisecond, logging.NewNop())
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "other.bk2"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write other: %v", err)
	}
	if err := os.WriteFile(target, []byte("BIK2 payload"), 0o644); err != nil {
		t.Fatalf("write target: %v", err)
	}

	select {
	case found := <-w.Found():
		if found.Path != target || found.SizeBytes != int64(len("BIK2 payload")) {
			t.Fatalf("found = %+v", found)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for file")
	}
}

func TestReportsExistingFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "EVE_Title.bk2")
	if err := os.WriteFile(target, []byte("data"), 0o644); err != nil {
		t.Fatalf("write target: %v", err)
	}

	w, err := Start(context.Background(), target, 10*time.Millisecond, logging.NewNop())
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Close()

	select {
	case <-w.Found():
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for existing file")
	}
}

func TestCloseWithoutFile(t *testing.T) {
	dir := t.TempDir()
	w, err := Start(context.Background(), filepath.Join(dir, "EVE_Title.bk2"), 10*time.Millisecond, logging.NewNop())
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestStartMissingDirectory(t *testing.T) {
	if _, err := Start(context.Background(), filepath.Join(t.TempDir(), "missing", "x.bk2"), 0, logging.NewNop()); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
