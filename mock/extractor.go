package mock

import "github.com/fwojciec/docmirror"

var _ docmirror.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of docmirror.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*docmirror.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*docmirror.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ docmirror.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of docmirror.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html string, baseURL string) ([]string, error)
}

func (e *LinkExtractor) ExtractLinks(html string, baseURL string) ([]string, error) {
	return e.ExtractLinksFn(html, baseURL)
}
