package fs_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/docmirror"
	"github.com/fwojciec/docmirror/fs"
	"github.com/fwojciec/docmirror/goquery"
	"github.com/fwojciec/docmirror/htmltomarkdown"
	"github.com/fwojciec/docmirror/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTree creates files (slash paths relative to root) with the given content.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}
}

func TestOutputDir(t *testing.T) {
	t.Parallel()

	assert.Equal(t, filepath.Join("/tmp", "site_md"), fs.OutputDir("/tmp/site"))
	assert.Equal(t, filepath.Join("/tmp", "site_md"), fs.OutputDir("/tmp/site/"))
}

func TestDirectoryConverter_ConvertDirectory(t *testing.T) {
	t.Parallel()

	t.Run("converts HTML files into sibling directory", func(t *testing.T) {
		t.Parallel()

		base := t.TempDir()
		src := filepath.Join(base, "site")
		writeTree(t, src, map[string]string{
			"index.html": `<html><head><title>Home</title></head><body>
				<nav>menu</nav><h1>Welcome</h1><p>Hello <strong>world</strong>.</p>
				<footer>copyright</footer></body></html>`,
			"guide/setup.HTM": `<html><body><p>No heading here.</p></body></html>`,
			"img/logo.png":    "png",
			"notes":           "plain",
		})

		c := &fs.DirectoryConverter{
			Extractor: goquery.NewBodyExtractor(),
			Converter: htmltomarkdown.NewConverter(),
		}

		var files []fs.LocalFile
		result, err := c.ConvertDirectory(context.Background(), src, func(f fs.LocalFile) {
			files = append(files, f)
		})

		require.NoError(t, err)
		assert.Equal(t, 4, result.Scanned)
		assert.Equal(t, 2, result.HTML)
		assert.Equal(t, 2, result.Converted)
		assert.Equal(t, 0, result.Errors)
		assert.Equal(t, []string{"site/img/logo.png", "site/notes"}, result.NonHTML)
		assert.Equal(t, filepath.Join(base, "site_md"), result.OutputDir)

		require.Len(t, files, 2)
		assert.Equal(t, "guide/setup.HTM", files[0].Source)
		assert.Equal(t, "guide/setup.md", files[0].Output)

		home, err := os.ReadFile(filepath.Join(base, "site_md", "index.md"))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(home), "# Welcome\n"), string(home))
		assert.Contains(t, string(home), "Hello **world**.")
		assert.NotContains(t, string(home), "menu")
		assert.NotContains(t, string(home), "copyright")

		setup, err := os.ReadFile(filepath.Join(base, "site_md", "guide", "setup.md"))
		require.NoError(t, err)
		assert.Equal(t, "# Unnamed Page\n\nNo heading here.\n", string(setup))
	})

	t.Run("skips existing markdown files", func(t *testing.T) {
		t.Parallel()

		base := t.TempDir()
		src := filepath.Join(base, "docs")
		writeTree(t, src, map[string]string{
			"a.html": `<h1>A</h1>`,
			"b.html": `<h1>B</h1>`,
		})
		writeTree(t, filepath.Join(base, "docs_md"), map[string]string{"a.md": "kept"})

		c := &fs.DirectoryConverter{
			Extractor:    goquery.NewBodyExtractor(),
			Converter:    htmltomarkdown.NewConverter(),
			SkipExisting: true,
		}

		result, err := c.ConvertDirectory(context.Background(), src, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Skipped)
		assert.Equal(t, 1, result.Converted)
		kept, err := os.ReadFile(filepath.Join(base, "docs_md", "a.md"))
		require.NoError(t, err)
		assert.Equal(t, "kept", string(kept))
	})

	t.Run("dry run writes nothing", func(t *testing.T) {
		t.Parallel()

		base := t.TempDir()
		src := filepath.Join(base, "docs")
		writeTree(t, src, map[string]string{"a.html": `<h1>A</h1>`})

		c := &fs.DirectoryConverter{
			Extractor: &mock.Extractor{},
			Converter: &mock.Converter{},
			DryRun:    true,
		}

		var files []fs.LocalFile
		result, err := c.ConvertDirectory(context.Background(), src, func(f fs.LocalFile) {
			files = append(files, f)
		})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Converted)
		require.Len(t, files, 1)
		assert.True(t, files[0].DryRun)
		_, err = os.Stat(filepath.Join(base, "docs_md"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("counts conversion errors and continues", func(t *testing.T) {
		t.Parallel()

		base := t.TempDir()
		src := filepath.Join(base, "docs")
		writeTree(t, src, map[string]string{
			"bad.html":  `bad`,
			"good.html": `good`,
		})

		c := &fs.DirectoryConverter{
			Extractor: &mock.Extractor{
				ExtractFn: func(html string) (*docmirror.ExtractResult, error) {
					return &docmirror.ExtractResult{Title: "T", ContentHTML: html}, nil
				},
			},
			Converter: &mock.Converter{
				ConvertFn: func(html string) (string, error) {
					if html == "bad" {
						return "", docmirror.Errorf(docmirror.ECONVERT, "boom")
					}
					return html, nil
				},
			},
		}

		var failed []fs.LocalFile
		result, err := c.ConvertDirectory(context.Background(), src, func(f fs.LocalFile) {
			if f.Status == docmirror.PageFailed {
				failed = append(failed, f)
			}
		})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Errors)
		assert.Equal(t, 1, result.Converted)
		require.Len(t, failed, 1)
		assert.Equal(t, "bad.html", failed[0].Source)
		assert.Equal(t, docmirror.ECONVERT, docmirror.ErrorCode(failed[0].Err))
	})

	t.Run("returns not found for missing directory", func(t *testing.T) {
		t.Parallel()

		c := &fs.DirectoryConverter{}

		_, err := c.ConvertDirectory(context.Background(), filepath.Join(t.TempDir(), "missing"), nil)

		assert.Equal(t, docmirror.ENOTFOUND, docmirror.ErrorCode(err))
	})

	t.Run("rejects a file", func(t *testing.T) {
		t.Parallel()

		p := filepath.Join(t.TempDir(), "page.html")
		require.NoError(t, os.WriteFile(p, []byte("x"), 0644))
		c := &fs.DirectoryConverter{}

		_, err := c.ConvertDirectory(context.Background(), p, nil)

		assert.Equal(t, docmirror.EINVALID, docmirror.ErrorCode(err))
	})

	t.Run("stops when the context is canceled", func(t *testing.T) {
		t.Parallel()

		src := filepath.Join(t.TempDir(), "docs")
		writeTree(t, src, map[string]string{"a.html": "a"})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		c := &fs.DirectoryConverter{DryRun: true}
		_, err := c.ConvertDirectory(ctx, src, nil)

		assert.True(t, errors.Is(err, context.Canceled))
	})
}

func TestLocalResult_NonHTMLByExtension(t *testing.T) {
	t.Parallel()

	r := &fs.LocalResult{NonHTML: []string{"d/a.PNG", "d/b.png", "d/README", "d/c.css"}}

	groups, keys := r.NonHTMLByExtension()

	assert.Equal(t, []string{"(no extension)", ".css", ".png"}, keys)
	assert.Equal(t, []string{"d/a.PNG", "d/b.png"}, groups[".png"])
	assert.Equal(t, []string{"d/README"}, groups[fs.NoExtension])
}
