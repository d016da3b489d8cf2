// Package output writes rendered itineraries to disk under names derived
// from the source URL, e.g. https://example.com/porto/ → example_com_porto.md.
package output

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Writer writes rendered output into one directory.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting outputDir, creating it when needed.
// An empty outputDir means the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &Writer{OutputDir: outputDir}, nil
}

// Write stores data as <name><ext> and returns the path. The file is
// replaced atomically, so a reader never sees a half-written PDF.
func (w *Writer) Write(rawURL string, data []byte, ext string) (string, error) {
	path := filepath.Join(w.OutputDir, FileName(rawURL)+ext)

	tmp, err := os.CreateTemp(w.OutputDir, ".itinerary-*")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// FileName flattens a URL into host and path segments joined by "_".
// Anything that is not an ASCII letter or digit becomes a separator.
func FileName(rawURL string) string {
	source := rawURL
	if parsed, err := url.Parse(rawURL); err == nil && parsed.Host != "" {
		source = parsed.Host + "/" + parsed.Path
	}

	words := strings.FieldsFunc(source, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9')
	})
	if len(words) == 0 {
		return "itinerary"
	}
	return strings.Join(words, "_")
}
