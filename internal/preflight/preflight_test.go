package preflight

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"heifconv/internal/config"
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
	if !strings.Contains(result.Detail, "does not exist") {
		t.Fatalf("unexpected detail %q", result.Detail)
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

func TestRunAll(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.StateDir = t.TempDir()
	cfg.History.Path = filepath.Join(t.TempDir(), "db", "history.db")
	if err := os.MkdirAll(filepath.Dir(cfg.History.Path), 0o755); err != nil {
		t.Fatal(err)
	}

	results := RunAll(&cfg, t.TempDir())
	if len(results) != 3 {
		t.Fatalf("expected 3 checks, got %d", len(results))
	}
	if err := Err(results); err != nil {
		t.Fatalf("expected all checks to pass: %v", err)
	}

	cfg.History.Enabled = false
	if got := len(RunAll(&cfg, t.TempDir())); got != 2 {
		t.Fatalf("expected 2 checks without history, got %d", got)
	}
}

func TestErrListsFailures(t *testing.T) {
	results := RunAll(nil, filepath.Join(t.TempDir(), "missing"))
	err := Err(results)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "Input directory") {
		t.Fatalf("error should name the failing check: %v", err)
	}
}

func TestCheckDirectoryReadable_ReadOnlyDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "ro")
	if err := os.Mkdir(dir, 0o555); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	if result := CheckDirectoryReadable("input", dir); !result.Passed {
		t.Fatalf("read-only dir should pass the read check: %s", result.Detail)
	}
	if err := Err(RunAll(nil, dir)); err != nil {
		t.Fatalf("read-only input dir should pass preflight: %v", err)
	}
}

func TestCheckDirectoryReadable_Missing(t *testing.T) {
	if result := CheckDirectoryReadable("input", filepath.Join(t.TempDir(), "nope")); result.Passed {
		t.Fatal("expected failure for missing dir")
	}
}
