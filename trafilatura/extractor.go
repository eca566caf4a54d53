// Package trafilatura implements docmirror.Extractor with
// github.com/markusmobius/go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/docmirror"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements docmirror.Extractor at compile time.
var _ docmirror.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct {
	opts trafilatura.Options
}

// NewExtractor creates a new Extractor. Tables and links are kept so the
// Markdown converter can render them.
func NewExtractor() *Extractor {
	return &Extractor{
		opts: trafilatura.Options{
			EnableFallback: true,
			IncludeLinks:   true,
			IncludeImages:  true,
		},
	}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*docmirror.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return &docmirror.ExtractResult{Title: docmirror.DefaultTitle}, nil
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), e.opts)
	if err != nil {
		return nil, docmirror.Errorf(docmirror.ECONVERT, "trafilatura: %v", err)
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, docmirror.Errorf(docmirror.ECONVERT, "render content: %v", err)
		}
	}

	return &docmirror.ExtractResult{
		Title:       docmirror.NormalizeTitle(result.Metadata.Title),
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
