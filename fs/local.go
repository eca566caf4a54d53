package fs

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fwojciec/docmirror"
)

// OutputSuffix is appended to a source directory's name to form the
// sibling directory that receives its Markdown files.
const OutputSuffix = "_md"

// NoExtension groups non-HTML files that have no extension.
const NoExtension = "(no extension)"

// OutputDir returns the Markdown directory for source directory dir.
func OutputDir(dir string) string {
	dir = filepath.Clean(dir)
	return filepath.Join(filepath.Dir(dir), filepath.Base(dir)+OutputSuffix)
}

// LocalFile reports the conversion of one HTML file.
type LocalFile struct {
	// Source and Output are paths relative to the source and output
	// directories, in slash form.
	Source string
	Output string

	Title  string
	Status docmirror.PageStatus
	Reason string
	Err    error
	DryRun bool
}

// LocalResult summarizes a directory conversion.
type LocalResult struct {
	SourceDir string
	OutputDir string
	Scanned   int
	HTML      int
	Converted int
	Skipped   int
	Errors    int

	// NonHTML lists the remaining files, relative to the parent of the
	// source directory, in walk order.
	NonHTML []string
}

// NonHTMLByExtension groups NonHTML by lowercased extension.
// It returns the groups and their sorted keys.
func (r *LocalResult) NonHTMLByExtension() (map[string][]string, []string) {
	groups := make(map[string][]string)
	for _, f := range r.NonHTML {
		ext := strings.ToLower(filepath.Ext(f))
		if ext == "" {
			ext = NoExtension
		}
		groups[ext] = append(groups[ext], f)
	}
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return groups, keys
}

// DirectoryConverter converts every HTML file below a directory into a
// Markdown file under the sibling directory returned by OutputDir,
// keeping the relative layout.
type DirectoryConverter struct {
	Extractor docmirror.Extractor
	Converter docmirror.Converter

	// SkipExisting leaves HTML files alone when their Markdown file exists.
	SkipExisting bool

	// DryRun counts what would be converted without writing anything.
	DryRun bool
}

// ConvertDirectory walks dir in lexical order. Per-file failures are
// counted and reported through progress; only an unreadable dir is
// returned as an error.
func (c *DirectoryConverter) ConvertDirectory(ctx context.Context, dir string, progress func(LocalFile)) (*LocalResult, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, docmirror.Errorf(docmirror.EINVALID, "invalid directory: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, docmirror.Errorf(docmirror.ENOTFOUND, "directory not found: %s", dir)
		}
		return nil, docmirror.Errorf(docmirror.EFILESYSTEM, "stat %s: %v", dir, err)
	}
	if !info.IsDir() {
		return nil, docmirror.Errorf(docmirror.EINVALID, "not a directory: %s", dir)
	}

	result := &LocalResult{SourceDir: dir, OutputDir: OutputDir(dir)}
	writer := NewWriter(result.OutputDir)
	parent := filepath.Dir(dir)

	err = filepath.WalkDir(dir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		result.Scanned++
		if !isHTMLFile(p) {
			rel, _ := filepath.Rel(parent, p)
			result.NonHTML = append(result.NonHTML, filepath.ToSlash(rel))
			return nil
		}
		result.HTML++

		file := c.convertFile(ctx, writer, dir, p)
		switch file.Status {
		case docmirror.PageSaved:
			result.Converted++
		case docmirror.PageSkipped:
			result.Skipped++
		case docmirror.PageFailed:
			result.Errors++
		}
		if progress != nil {
			progress(file)
		}
		return nil
	})
	if err != nil {
		return result, err
	}

	return result, nil
}

func (c *DirectoryConverter) convertFile(ctx context.Context, writer *Writer, dir, p string) LocalFile {
	rel, _ := filepath.Rel(dir, p)
	out := strings.TrimSuffix(rel, filepath.Ext(rel)) + ".md"
	file := LocalFile{
		Source: filepath.ToSlash(rel),
		Output: filepath.ToSlash(out),
		DryRun: c.DryRun,
	}

	if c.SkipExisting {
		if _, err := os.Stat(filepath.Join(writer.Root(), out)); err == nil {
			file.Status = docmirror.PageSkipped
			file.Reason = "already exists"
			return file
		}
	}
	if c.DryRun {
		file.Status = docmirror.PageSaved
		return file
	}

	raw, err := os.ReadFile(p)
	if err != nil {
		file.Status = docmirror.PageFailed
		file.Err = docmirror.Errorf(docmirror.EFILESYSTEM, "read %s: %v", file.Source, err)
		return file
	}

	extracted, err := c.Extractor.Extract(string(raw))
	if err != nil {
		file.Status = docmirror.PageFailed
		file.Err = err
		return file
	}
	file.Title = docmirror.NormalizeTitle(extracted.Title)

	markdown, err := c.Converter.Convert(extracted.ContentHTML)
	if err != nil {
		file.Status = docmirror.PageFailed
		file.Err = err
		return file
	}

	if err := writer.WritePage(ctx, file.Output, docmirror.FormatMarkdown(file.Title, markdown)); err != nil {
		file.Status = docmirror.PageFailed
		file.Err = err
		return file
	}
	file.Status = docmirror.PageSaved
	return file
}

func isHTMLFile(p string) bool {
	ext := strings.ToLower(filepath.Ext(p))
	return ext == ".html" || ext == ".htm"
}
