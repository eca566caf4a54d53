// Package readability implements docmirror.Extractor with the Mozilla
// Readability algorithm from github.com/go-shiori/go-readability.
package readability

import (
	"strings"

	"github.com/fwojciec/docmirror"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements docmirror.Extractor at compile time.
var _ docmirror.Extractor = (*Extractor)(nil)

// Extractor scores the page's blocks and keeps the main article. It suits
// sites whose markup matches none of the selector extractor's candidates.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*docmirror.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return &docmirror.ExtractResult{Title: docmirror.DefaultTitle}, nil
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, docmirror.Errorf(docmirror.ECONVERT, "readability: %v", err)
	}

	return &docmirror.ExtractResult{
		Title:       docmirror.NormalizeTitle(article.Title),
		ContentHTML: article.Content,
	}, nil
}
