package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestConvertedBlock(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)
	r.Converted("a.heic", "a.jpg", 98.7654)

	want := "Converted a.heic -> a.jpg\n" +
		"Quality preserved: 98.77%\n" +
		"Quality loss: 1.23%\n" +
		strings.Repeat("-", 50) + "\n"
	if buf.String() != want {
		t.Fatalf("unexpected block:\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestLosslessBlockReportsZeroLoss(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Converted("a.heic", "a.png", 100)
	if !strings.Contains(buf.String(), "Quality preserved: 100.00%\nQuality loss: 0.00%\n") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestFailedLine(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Failed("bad.heic", errors.New("decode: unexpected EOF"))
	if got := buf.String(); got != "Error converting bad.heic: decode: unexpected EOF\n" {
		t.Fatalf("unexpected line: %q", got)
	}
}

func TestHeaderLines(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)
	r.Header("/photos", "png")
	r.NoFiles()
	r.Found(2)
	want := "Converting HEIF images in /photos to png\n" +
		"No HEIF/HEIC files found in the directory.\n" +
		"Found 2 HEIF/HEIC files to convert...\n"
	if buf.String() != want {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestSummaryTable(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Summary([]Row{
		{Source: "a.heic", Output: "a.png", OutputBytes: 2048, Preserved: 100},
		{Source: "b.heic", Err: errors.New("boom")},
	})
	out := buf.String()
	for _, want := range []string{"File", "Output", "Size", "Status", "a.heic", "a.png", "2.0 kB", "100.00%", "ok", "b.heic", "failed", "1 converted, 1 failed"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in summary:\n%s", want, out)
		}
	}
}

func TestSummaryEmptyRunPrintsNothing(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Summary(nil)
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestBufferIsNeverColorized(t *testing.T) {
	var buf bytes.Buffer
	if shouldColorize(&buf) {
		t.Fatal("buffers are not terminals")
	}
}

func TestTableKeepsHeaderCase(t *testing.T) {
	out := Table([]string{"File", "Preserved"}, [][]string{{"a.heic", "99.00%"}}, []Alignment{AlignLeft, AlignRight})
	if !strings.Contains(out, "File") || !strings.Contains(out, "Preserved") {
		t.Fatalf("headers not rendered as given:\n%s", out)
	}
	if strings.Contains(out, "FILE") || strings.Contains(out, "PRESERVED") {
		t.Fatalf("headers were upper-cased:\n%s", out)
	}
}

func TestTablePadsShortRows(t *testing.T) {
	out := Table([]string{"A", "B", "C"}, [][]string{{"only"}, {"x", "y", "z", "extra"}}, nil)
	if !strings.Contains(out, "only") || strings.Contains(out, "extra") {
		t.Fatalf("unexpected table:\n%s", out)
	}
	if Table(nil, [][]string{{"x"}}, nil) != "" {
		t.Fatal("expected empty output without headers")
	}
}
