package generator

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriterCreateThenSkip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "schema.sql")

	var buf bytes.Buffer
	w := &Writer{Out: &buf}
	if err := w.Write(path, "CREATE TABLE tags (id TEXT);\n"); err != nil {
		t.Fatal(err)
	}
	if w.Created() != 1 {
		t.Fatalf("created = %d, want 1", w.Created())
	}
	if !strings.Contains(buf.String(), "Created: "+path) {
		t.Errorf("report = %q, want Created line", buf.String())
	}

	// Second run with identical content is a no-op.
	buf.Reset()
	w2 := &Writer{Out: &buf}
	if err := w2.Write(path, "CREATE TABLE tags (id TEXT);\n"); err != nil {
		t.Fatal(err)
	}
	if w2.Created() != 0 || w2.Updated() != 0 {
		t.Errorf("rerun created=%d updated=%d, want 0/0", w2.Created(), w2.Updated())
	}
	if buf.Len() != 0 {
		t.Errorf("rerun should report nothing, got %q", buf.String())
	}
}

func TestWriterUpdateOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.sql")
	if err := os.WriteFile(path, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	w := &Writer{Out: &buf}
	if err := w.Write(path, "new"); err != nil {
		t.Fatal(err)
	}
	if w.Updated() != 1 {
		t.Fatalf("updated = %d, want 1", w.Updated())
	}
	data, _ := os.ReadFile(path)
	if string(data) != "new" {
		t.Errorf("content = %q, want new", data)
	}
}

func TestWriteOncePreservesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "handler.go")
	if err := os.WriteFile(path, []byte("hand-written"), 0644); err != nil {
		t.Fatal(err)
	}

	w := &Writer{Out: &bytes.Buffer{}}
	if err := w.WriteOnce(path, "stub"); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "hand-written" {
		t.Error("WriteOnce must never overwrite an existing file")
	}
}
