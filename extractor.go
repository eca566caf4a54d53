package docmirror

import (
	"regexp"
	"strings"
)

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title, already normalized with NormalizeTitle.
	Title string

	// ContentHTML is the main content region as markup, with navigation,
	// headers, footers and other page chrome removed.
	ContentHTML string
}

// Extractor isolates the main content of an HTML page.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}

// LinkExtractor lists the outbound document links of an HTML page.
type LinkExtractor interface {
	// ExtractLinks returns every anchor target on the page resolved against
	// baseURL and canonicalized, in document order without duplicates.
	// Non-document targets (javascript:, mailto:, fragment-only anchors and
	// blacklisted file extensions) are dropped. Unparseable hrefs are
	// skipped silently.
	ExtractLinks(html string, baseURL string) ([]string, error)
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// The input should be clean HTML (e.g., from an Extractor).
	Convert(html string) (string, error)
}

// DefaultTitle is used when a page has neither an h1 nor a title element.
const DefaultTitle = "Unnamed Page"

const maxTitleLen = 255

var whitespaceRe = regexp.MustCompile(`\s+`)

// NormalizeTitle collapses internal whitespace and caps the title length.
// An empty title becomes DefaultTitle.
func NormalizeTitle(title string) string {
	title = strings.TrimSpace(whitespaceRe.ReplaceAllString(title, " "))
	if title == "" {
		return DefaultTitle
	}
	if r := []rune(title); len(r) > maxTitleLen {
		title = string(r[:maxTitleLen])
	}
	return title
}

// FormatMarkdown prepares converted Markdown for writing. Unless the body
// already begins with a level-1 heading, "# title" is prepended. The result
// ends with exactly one newline.
func FormatMarkdown(title, markdown string) string {
	markdown = strings.TrimSpace(markdown)

	var b strings.Builder
	if !strings.HasPrefix(markdown, "# ") {
		b.WriteString("# ")
		b.WriteString(title)
		b.WriteString("\n\n")
	}
	b.WriteString(markdown)
	b.WriteString("\n")
	return b.String()
}
