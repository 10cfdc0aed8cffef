package converter

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRemoveOutputDeletesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.jpg")
	if err := os.WriteFile(path, []byte("partial"), 0o644); err != nil {
		t.Fatal(err)
	}
	var logs bytes.Buffer
	removeOutput(slog.New(slog.NewTextHandler(&logs, nil)), path)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected output removed, stat err=%v", err)
	}
	if logs.Len() != 0 {
		t.Fatalf("unexpected log output: %s", logs.String())
	}
}

func TestRemoveOutputMissingFileIsQuiet(t *testing.T) {
	var logs bytes.Buffer
	removeOutput(slog.New(slog.NewTextHandler(&logs, nil)), filepath.Join(t.TempDir(), "gone.jpg"))
	if logs.Len() != 0 {
		t.Fatalf("unexpected log output: %s", logs.String())
	}
}

func TestRemoveOutputWarnsWhenRemovalFails(t *testing.T) {
	// A non-empty directory cannot be removed with os.Remove.
	path := filepath.Join(t.TempDir(), "a.jpg")
	if err := os.MkdirAll(filepath.Join(path, "child"), 0o755); err != nil {
		t.Fatal(err)
	}
	var logs bytes.Buffer
	removeOutput(slog.New(slog.NewTextHandler(&logs, nil)), path)
	out := logs.String()
	for _, want := range []string{"level=WARN", "failed output not removed", "event_type=output_cleanup_failed", path} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in logs:\n%s", want, out)
		}
	}
}
