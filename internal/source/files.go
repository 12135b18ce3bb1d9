// Package source enumerates the places records come from: .rce text files
// and vCard collections, local or remote.
package source

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tartampluch/go-reminder/internal/config"
)

// Line is a sanitized record line and where it was read.
type Line struct {
	Path   string
	Number int
	Text   string
}

// LineError locates a record error in its source file.
type LineError struct {
	Path string
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Find returns the regular files directly inside dir whose extension is one
// of exts, in lexical order.
func Find(dir string, exts ...string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrDataDir, err)
	}
	var paths []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		for _, want := range exts {
			if strings.EqualFold(ext, want) {
				paths = append(paths, filepath.Join(dir, entry.Name()))
				break
			}
		}
	}
	return paths, nil
}

// Sanitize drops everything from the first comment marker on. It reports
// false when nothing is left. The remaining text is not trimmed.
func Sanitize(raw string) (string, bool) {
	text, _, _ := strings.Cut(raw, config.CommentMarker)
	return text, text != ""
}

// ReadLines returns the sanitized, non-empty lines of the file at path.
func ReadLines(path string) ([]Line, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrReadFile, err)
	}
	defer func() { _ = f.Close() }()

	var lines []Line
	scanner := bufio.NewScanner(f)
	for n := 1; scanner.Scan(); n++ {
		text, ok := Sanitize(scanner.Text())
		if !ok {
			continue
		}
		lines = append(lines, Line{Path: path, Number: n, Text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrReadFile, err)
	}
	return lines, nil
}
