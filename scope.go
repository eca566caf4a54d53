package docmirror

import (
	"net/url"
	"strings"
)

// Scope bounds a crawl to the directory of its entry URL.
// It is computed once per run by NormalizeScope and never modified.
type Scope struct {
	// IncludePrefix is the canonical URL that every in-scope URL starts with.
	IncludePrefix string

	// BasePath is the URL path directory that output paths are relative to.
	// It always begins and ends with "/".
	BasePath string
}

// NormalizeScope derives the crawl scope from an entry URL.
//
// A bare domain is scoped to "/". A path whose last segment is file-like
// (e.g. /docs/index.html) is scoped to its directory (/docs/). Any other
// path is treated as a directory (/docs/guide becomes /docs/guide/).
// Query and fragment are dropped. Any input, however degenerate,
// yields a Scope.
func NormalizeScope(entryURL string) Scope {
	u, err := url.Parse(strings.TrimSpace(entryURL))
	if err != nil {
		u = &url.URL{Path: stripQueryAndFragment(entryURL)}
	}

	base := scopeDir(rootedPath(u.Path))

	prefix := *u
	prefix.Path = base
	prefix.RawPath = ""
	prefix.RawQuery = ""
	prefix.ForceQuery = false
	prefix.Fragment = ""
	prefix.RawFragment = ""

	return Scope{
		IncludePrefix: prefix.String(),
		BasePath:      base,
	}
}

// Contains reports whether a canonical URL lies within the scope.
func (s Scope) Contains(canonical string) bool {
	return strings.HasPrefix(canonical, s.IncludePrefix)
}

// MapPath returns the slash-separated output path for u, relative to the
// scope's base path. Clean URLs map to <path>/index.md and documents with an
// HTML-like extension map to <dir>/<stem>.md.
//
// Segments are taken from the escaped path, so an encoded "/" or space
// stays inside its segment. The bool result is false when u's path is not
// under BasePath. The path is then derived from the full URL path instead.
func (s Scope) MapPath(u *url.URL) (string, bool) {
	p := rootedPath(u.EscapedPath())
	base := (&url.URL{Path: s.BasePath}).EscapedPath()

	rel, inBase := strings.CutPrefix(p, base)
	if !inBase {
		rel = strings.TrimLeft(p, "/")
	}

	var segments []string
	for _, seg := range strings.Split(rel, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	if len(segments) == 0 {
		return "index.md", inBase
	}

	stem := "index"
	dirs := segments
	if last := ClassifySegment(segments[len(segments)-1]); last.Kind == SegmentDocument {
		stem = last.Stem
		dirs = segments[:len(segments)-1]
	}

	parts := make([]string, 0, len(dirs)+1)
	for _, dir := range dirs {
		parts = append(parts, SanitizeComponent(dir))
	}
	parts = append(parts, SanitizeComponent(stem)+".md")

	return strings.Join(parts, "/"), inBase
}

// Canonical parses rawURL and returns its canonical form.
func Canonical(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", Errorf(EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	return CanonicalURL(u), nil
}

// CanonicalURL reduces u to scheme, host and path. URLs that differ only by
// query or fragment share a canonical form. An empty path on a URL with a
// host becomes "/".
func CanonicalURL(u *url.URL) string {
	c := *u
	c.RawQuery = ""
	c.ForceQuery = false
	c.Fragment = ""
	c.RawFragment = ""
	if c.Host != "" && c.Path == "" {
		c.Path = "/"
		c.RawPath = ""
	}
	return c.String()
}

// SegmentKind classifies the shape of a URL path segment.
type SegmentKind int

const (
	// SegmentDirectory has no extension: a folder or a clean-URL page.
	SegmentDirectory SegmentKind = iota
	// SegmentDocument ends in an HTML-like extension.
	SegmentDocument
	// SegmentFile has some other extension.
	SegmentFile
)

// documentExtensions are the extensions mapped to <stem>.md.
var documentExtensions = []string{".html", ".htm", ".xhtml", ".php", ".asp", ".aspx"}

// Segment is a classified URL path segment.
type Segment struct {
	Kind SegmentKind
	Name string

	// Stem is Name without its extension. Set only for SegmentDocument.
	Stem string
}

// IsFileLike reports whether the segment names a file rather than a directory.
func (s Segment) IsFileLike() bool {
	return s.Kind != SegmentDirectory
}

// ClassifySegment classifies a single URL path segment. Both NormalizeScope
// and MapPath decide file-vs-directory through this function.
func ClassifySegment(name string) Segment {
	if !strings.Contains(name, ".") {
		return Segment{Kind: SegmentDirectory, Name: name}
	}
	lower := strings.ToLower(name)
	for _, ext := range documentExtensions {
		if strings.HasSuffix(lower, ext) {
			return Segment{
				Kind: SegmentDocument,
				Name: name,
				Stem: name[:strings.LastIndex(name, ".")],
			}
		}
	}
	return Segment{Kind: SegmentFile, Name: name}
}

const (
	maxComponentLen      = 100
	placeholderComponent = "unnamed_component"
)

var hostileChars = strings.NewReplacer(
	`\`, "_", "/", "_", "*", "_", "?", "_", ":", "_",
	`"`, "_", "<", "_", ">", "_", "|", "_", " ", "_",
)

// SanitizeComponent makes a single path component safe to use as a file or
// directory name. Path-hostile characters and spaces become "_", dot-only
// names are neutralised, empty results get a placeholder, and the result is
// truncated to 100 characters.
func SanitizeComponent(name string) string {
	name = strings.TrimSpace(hostileChars.Replace(name))
	if name != "" && strings.Trim(name, ".") == "" {
		name = strings.Repeat("_", len(name))
	}
	if name == "" {
		return placeholderComponent
	}
	if r := []rune(name); len(r) > maxComponentLen {
		name = string(r[:maxComponentLen])
	}
	return name
}

// scopeDir returns the directory a crawl rooted at p is confined to.
func scopeDir(p string) string {
	trimmed := strings.TrimRight(p, "/")
	if trimmed == "" {
		return "/"
	}
	idx := strings.LastIndex(trimmed, "/")
	if ClassifySegment(trimmed[idx+1:]).IsFileLike() {
		return trimmed[:idx+1]
	}
	return trimmed + "/"
}

// rootedPath returns p with a leading slash; empty becomes "/".
func rootedPath(p string) string {
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

func stripQueryAndFragment(raw string) string {
	if i := strings.IndexAny(raw, "?#"); i >= 0 {
		return raw[:i]
	}
	return raw
}
