// Package report writes the user-facing conversion report.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

const separatorWidth = 50

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
)

// Reporter prints conversion progress line by line.
type Reporter struct {
	w        io.Writer
	colorize bool
}

// New returns a Reporter writing to w. Colour is used only when w is a terminal.
func New(w io.Writer) *Reporter {
	return &Reporter{w: w, colorize: shouldColorize(w)}
}

// Header announces the directory and format of a run.
func (r *Reporter) Header(dir, token string) {
	fmt.Fprintf(r.w, "Converting HEIF images in %s to %s\n", dir, token)
}

// NoFiles reports an input directory without HEIF files.
func (r *Reporter) NoFiles() {
	fmt.Fprintln(r.w, "No HEIF/HEIC files found in the directory.")
}

// Found announces how many files the run will convert.
func (r *Reporter) Found(n int) {
	fmt.Fprintf(r.w, "Found %d HEIF/HEIC files to convert...\n", n)
}

// Converted prints the report block of one successful conversion.
func (r *Reporter) Converted(source, output string, preserved float64) {
	fmt.Fprintln(r.w, r.paint(ansiGreen, fmt.Sprintf("Converted %s -> %s", source, output)))
	fmt.Fprintf(r.w, "Quality preserved: %.2f%%\n", preserved)
	fmt.Fprintf(r.w, "Quality loss: %.2f%%\n", 100-preserved)
	fmt.Fprintln(r.w, strings.Repeat("-", separatorWidth))
}

// Failed prints the error line of one failed conversion.
func (r *Reporter) Failed(source string, err error) {
	fmt.Fprintln(r.w, r.paint(ansiRed, fmt.Sprintf("Error converting %s: %v", source, err)))
}

func (r *Reporter) paint(color, line string) string {
	if !r.colorize {
		return line
	}
	return color + line + ansiReset
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
