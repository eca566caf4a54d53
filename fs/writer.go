// Package fs writes converted pages to the local filesystem.
package fs

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/fwojciec/docmirror"
)

// Ensure Writer implements docmirror.PageWriter at compile time.
var _ docmirror.PageWriter = (*Writer)(nil)

// Writer writes pages as files under a root directory.
type Writer struct {
	root string
}

// NewWriter creates a new Writer that writes to the given root directory.
func NewWriter(root string) *Writer {
	return &Writer{root: root}
}

// Root returns the directory pages are written under.
func (w *Writer) Root() string {
	return w.root
}

// WritePage writes markdown to the slash-separated relative path p,
// creating parent directories as needed. An existing file is overwritten.
func (w *Writer) WritePage(ctx context.Context, p string, markdown string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rel, err := cleanRelative(p)
	if err != nil {
		return err
	}
	fullPath := filepath.Join(w.root, filepath.FromSlash(rel))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return docmirror.Errorf(docmirror.EFILESYSTEM, "create directory for %s: %v", rel, err)
	}
	if err := os.WriteFile(fullPath, []byte(markdown), 0644); err != nil {
		return docmirror.Errorf(docmirror.EFILESYSTEM, "write %s: %v", rel, err)
	}
	return nil
}

// cleanRelative rejects paths that would land outside the root.
func cleanRelative(p string) (string, error) {
	if p == "" || path.IsAbs(p) || filepath.IsAbs(p) {
		return "", docmirror.Errorf(docmirror.EINVALID, "output path must be relative: %q", p)
	}
	clean := path.Clean(p)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", docmirror.Errorf(docmirror.EINVALID, "output path escapes root: %q", p)
	}
	return clean, nil
}
