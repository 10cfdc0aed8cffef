// Package discovery finds the HEIF/HEIC images a conversion run operates on.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var heifExtensions = map[string]struct{}{
	".heic": {},
	".heif": {},
}

// Source is one discovered input image.
type Source struct {
	Name string // base name as listed
	Path string // absolute path
}

// Stem returns the file name without its extension. A name that is only an
// extension (".heic") is its own stem.
func (s Source) Stem() string {
	stem := strings.TrimSuffix(s.Name, filepath.Ext(s.Name))
	if stem == "" {
		return s.Name
	}
	return stem
}

// IsHEIF reports whether name carries a HEIF/HEIC extension, ignoring case.
func IsHEIF(name string) bool {
	_, ok := heifExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// Find lists the direct children of dir that are HEIF/HEIC files. Subdirectories
// are never traversed. Results follow directory listing order, which os.ReadDir
// sorts by file name.
func Find(dir string) ([]Source, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve input directory %q: %w", dir, err)
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("list input directory: %w", err)
	}

	var sources []Source
	for _, entry := range entries {
		if entry.IsDir() || !IsHEIF(entry.Name()) {
			continue
		}
		sources = append(sources, Source{
			Name: entry.Name(),
			Path: filepath.Join(abs, entry.Name()),
		})
	}
	return sources, nil
}
