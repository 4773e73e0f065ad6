// Package generator turns table metadata and endpoint descriptors into
// generated source text. Every generator is a pure function to a string;
// the Writer is the only part that touches the filesystem, and it only
// rewrites a file when the content actually changed, so a run with an
// unchanged model is a true no-op.
package generator

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Writer performs diff-gated file writes and records what happened for the
// CLI report.
type Writer struct {
	// Out receives the Created/Updated lines. Defaults to os.Stdout.
	Out io.Writer

	created int
	updated int
}

func (w *Writer) out() io.Writer {
	if w.Out != nil {
		return w.Out
	}
	return os.Stdout
}

// Write writes content to path unless the file already holds exactly these
// bytes. Unchanged files are silently skipped.
func (w *Writer) Write(path, content string) error {
	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		if bytes.Equal(existing, []byte(content)) {
			return nil
		}
		if err := writeFile(path, content); err != nil {
			return err
		}
		w.updated++
		fmt.Fprintf(w.out(), "Updated: %s\n", path)
		return nil
	case os.IsNotExist(err):
		if err := writeFile(path, content); err != nil {
			return err
		}
		w.created++
		fmt.Fprintf(w.out(), "Created: %s\n", path)
		return nil
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}
}

// WriteOnce writes content only when path does not exist yet. Handler stubs
// go through here so developer-authored logic is never overwritten.
func (w *Writer) WriteOnce(path, content string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := writeFile(path, content); err != nil {
		return err
	}
	w.created++
	fmt.Fprintf(w.out(), "Created: %s\n", path)
	return nil
}

// Created returns how many files this run created.
func (w *Writer) Created() int { return w.created }

// Updated returns how many files this run rewrote.
func (w *Writer) Updated() int { return w.updated }

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create dir for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
