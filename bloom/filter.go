// Package bloom provides the crawler's visited-URL set backed by a Bloom filter.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Default sizing for a documentation site crawl.
const (
	DefaultExpectedItems = 10000
	DefaultFPRate        = 0.01
)

// Filter wraps a Bloom filter for URL deduplication.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected items
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add adds a URL to the filter.
func (f *Filter) Add(url string) {
	f.f.AddString(url)
}

// Test returns true if the URL might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(url string) bool {
	return f.f.TestString(url)
}

// EstimatedCount returns the approximate number of items in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}

// Set is an exact set of canonical URLs. The Bloom filter answers most
// negative lookups; the map resolves its false positives so membership is
// never wrong. Set is not safe for concurrent use.
type Set struct {
	filter *Filter
	items  map[string]struct{}
}

// NewSet returns an empty Set sized for n expected URLs.
func NewSet(n uint, fpRate float64) *Set {
	return &Set{
		filter: NewFilter(n, fpRate),
		items:  make(map[string]struct{}, n),
	}
}

// Has reports whether url is in the set.
func (s *Set) Has(url string) bool {
	if !s.filter.Test(url) {
		return false
	}
	_, ok := s.items[url]
	return ok
}

// Insert adds url and reports whether it was absent before the call.
func (s *Set) Insert(url string) bool {
	if s.Has(url) {
		return false
	}
	s.filter.Add(url)
	s.items[url] = struct{}{}
	return true
}

// Len returns the exact number of URLs in the set.
func (s *Set) Len() int {
	return len(s.items)
}
