// Package goquery implements content and link extraction over
// github.com/PuerkitoBio/goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docmirror"
)

// Ensure Extractor implements docmirror.Extractor at compile time.
var _ docmirror.Extractor = (*Extractor)(nil)

// DefaultContentSelectors locate the main content region, in order of
// preference. The first selector matching an element wins.
var DefaultContentSelectors = []string{
	"main",
	"article",
	`div[role="main"]`,
	"div.main-content",
	"div.content",
	"div.page-content",
	"div.DocSearch-content",
}

// DefaultChromeSelectors match presentation scaffolding removed from the
// content region before conversion.
var DefaultChromeSelectors = []string{
	"nav",
	"header",
	"footer",
	"aside",
	".sidebar",
	".toc",
	".edit-page-link",
	"div.theme-doc-markdown header",
	".navbar",
	"div[class*='breadcrumb']",
	"div[class*='pagination']",
	"button[aria-label='collapse']",
}

// BasicChromeSelectors is the reduced chrome list used for local files.
var BasicChromeSelectors = []string{"nav", "header", "footer", "aside"}

// Extractor selects the main content region of a page with CSS selectors
// and strips page chrome from it.
type Extractor struct {
	contentSelectors []string
	chromeSelectors  []string
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithContentSelectors replaces the content region candidates.
// With no candidates the document body is always used.
func WithContentSelectors(selectors ...string) Option {
	return func(e *Extractor) {
		e.contentSelectors = selectors
	}
}

// WithChromeSelectors replaces the list of elements removed from the
// content region.
func WithChromeSelectors(selectors ...string) Option {
	return func(e *Extractor) {
		e.chromeSelectors = selectors
	}
}

// NewExtractor creates an Extractor using DefaultContentSelectors and
// DefaultChromeSelectors unless overridden.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		contentSelectors: DefaultContentSelectors,
		chromeSelectors:  DefaultChromeSelectors,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewBodyExtractor creates an Extractor that always converts the whole
// body, minus BasicChromeSelectors.
func NewBodyExtractor() *Extractor {
	return NewExtractor(
		WithContentSelectors(),
		WithChromeSelectors(BasicChromeSelectors...),
	)
}

// Extract parses html, isolates the content region and derives the title.
// The title is read after chrome removal, so an h1 inside a removed header
// does not count.
func (e *Extractor) Extract(html string) (*docmirror.ExtractResult, error) {
	if strings.TrimSpace(html) == "" {
		return &docmirror.ExtractResult{Title: docmirror.DefaultTitle}, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, docmirror.Errorf(docmirror.ECONVERT, "failed to parse HTML: %v", err)
	}

	region := e.selectRegion(doc)
	for _, selector := range e.chromeSelectors {
		region.Find(selector).Remove()
	}

	content, err := goquery.OuterHtml(region)
	if err != nil {
		return nil, docmirror.Errorf(docmirror.ECONVERT, "failed to render content: %v", err)
	}

	return &docmirror.ExtractResult{
		Title:       pageTitle(doc),
		ContentHTML: content,
	}, nil
}

// selectRegion returns the first non-empty content candidate, falling back
// to the body and then to the whole document.
func (e *Extractor) selectRegion(doc *goquery.Document) *goquery.Selection {
	for _, selector := range e.contentSelectors {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			return sel
		}
	}
	if body := doc.Find("body").First(); body.Length() > 0 {
		return body
	}
	return doc.Selection
}

// pageTitle returns the first h1, else the title element, else the
// placeholder title.
func pageTitle(doc *goquery.Document) string {
	for _, selector := range []string{"h1", "title"} {
		if text := strings.TrimSpace(doc.Find(selector).First().Text()); text != "" {
			return docmirror.NormalizeTitle(text)
		}
	}
	return docmirror.DefaultTitle
}
