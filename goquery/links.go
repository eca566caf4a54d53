package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docmirror"
)

// Ensure LinkExtractor implements docmirror.LinkExtractor at compile time.
var _ docmirror.LinkExtractor = (*LinkExtractor)(nil)

// ignoredExtensions are non-document targets never followed.
var ignoredExtensions = []string{
	".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp", ".ico",
	".pdf", ".zip", ".tar.gz", ".tgz", ".rar", ".7z",
	".css", ".js", ".json", ".xml", ".txt",
	".doc", ".docx", ".xls", ".xlsx", ".ppt", ".pptx",
	".mp4", ".webm", ".ogg", ".mp3", ".wav", ".avi", ".mov",
	".woff", ".woff2", ".ttf", ".otf", ".eot",
}

// LinkExtractor lists every anchor on a page as canonical URLs.
type LinkExtractor struct{}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// ExtractLinks returns the canonical form of every followable anchor href
// in html, resolved against baseURL. Scope filtering is left to the caller.
func (x *LinkExtractor) ExtractLinks(html string, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, docmirror.Errorf(docmirror.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, docmirror.Errorf(docmirror.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]bool)
	var links []string

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href := strings.TrimSpace(sel.AttrOr("href", ""))
		if href == "" || strings.HasPrefix(href, "#") || isNonHTTPLink(href) {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := base.ResolveReference(ref)
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return
		}
		if hasIgnoredExtension(resolved.Path) {
			return
		}

		canonical := docmirror.CanonicalURL(resolved)
		if seen[canonical] {
			return
		}
		seen[canonical] = true
		links = append(links, canonical)
	})

	return links, nil
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(href)
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}

// hasIgnoredExtension reports whether the last path segment ends in a
// blacklisted extension.
func hasIgnoredExtension(p string) bool {
	last := strings.ToLower(p[strings.LastIndex(p, "/")+1:])
	for _, ext := range ignoredExtensions {
		if strings.HasSuffix(last, ext) {
			return true
		}
	}
	return false
}
