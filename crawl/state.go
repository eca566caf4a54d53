package crawl

import (
	"sync"

	"github.com/fwojciec/docmirror/bloom"
)

// State is the mutable state of one crawl: the visited set and the FIFO
// frontier with its membership set. It is owned by a single Crawl call
// and shared with the pages that call processes. All methods are safe
// for concurrent use.
type State struct {
	mu      sync.Mutex
	visited *bloom.Set
	queue   []string
	queued  map[string]struct{}
}

// NewState returns an empty crawl state.
func NewState() *State {
	return &State{
		visited: bloom.NewSet(bloom.DefaultExpectedItems, bloom.DefaultFPRate),
		queued:  make(map[string]struct{}),
	}
}

// MarkVisited adds url to the visited set. It returns false if url was
// already visited; check and insert happen atomically.
func (s *State) MarkVisited(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visited.Insert(url)
}

// Visited reports whether url has been fetched or attempted.
func (s *State) Visited(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visited.Has(url)
}

// VisitedCount returns the number of visited URLs.
func (s *State) VisitedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visited.Len()
}

// Enqueue appends url to the frontier unless it is already visited or
// already queued. It reports whether url was added.
func (s *State) Enqueue(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.visited.Has(url) {
		return false
	}
	if _, ok := s.queued[url]; ok {
		return false
	}
	s.queued[url] = struct{}{}
	s.queue = append(s.queue, url)
	return true
}

// DequeueN removes and returns up to n URLs from the front of the frontier.
func (s *State) DequeueN(n int) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	n = min(n, len(s.queue))
	batch := make([]string, n)
	copy(batch, s.queue[:n])
	s.queue = s.queue[n:]
	for _, u := range batch {
		delete(s.queued, u)
	}
	return batch
}

// Len returns the number of URLs waiting in the frontier.
func (s *State) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}
