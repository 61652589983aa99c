package engine

import (
	"sync"

	"github.com/umputun/booruscope/pkg/domain"
)

// Session is the per-user browsing state: history for back navigation,
// posts delivered in this session and fetched candidates not shown yet.
// It lives only in memory and is safe for concurrent use.
type Session struct {
	mu        sync.Mutex
	filters   domain.Filters
	history   []domain.Post // shown posts, the last one is current
	forward   []domain.Post // posts stepped back from, the last one is next
	queue     []domain.Post // fetched candidates waiting to be shown
	delivered map[int64]struct{}
	page      int // page the queue was fetched from
}

// NewSession makes session with the given filters
func NewSession(filters domain.Filters) *Session {
	return &Session{filters: filters, delivered: map[int64]struct{}{}}
}

// Filters returns active filters
func (s *Session) Filters() domain.Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// Current returns the post shown last, false if nothing was shown
func (s *Session) Current() (domain.Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.history) == 0 {
		return domain.Post{}, false
	}
	return s.history[len(s.history)-1], true
}

// HistoryLen returns number of posts in back history, including the current one
func (s *Session) HistoryLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history)
}

// Pending returns number of queued candidates
func (s *Session) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Delivered checks if the post was shown in this session
func (s *Session) Delivered(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.delivered[id]
	return ok
}

// reset clears everything except filters
func (s *Session) reset() {
	s.history = nil
	s.forward = nil
	s.queue = nil
	s.delivered = map[int64]struct{}{}
	s.page = 0
}

// push appends post to history and marks it delivered
func (s *Session) push(p domain.Post) {
	s.history = append(s.history, p)
	s.delivered[p.ID] = struct{}{}
}

// popQueue removes and returns the first queued candidate
func (s *Session) popQueue() (domain.Post, bool) {
	if len(s.queue) == 0 {
		return domain.Post{}, false
	}
	p := s.queue[0]
	s.queue = s.queue[1:]
	return p, true
}

// back drops the current post to the forward stack and returns the prior one
func (s *Session) back() (domain.Post, bool) {
	if len(s.history) < 2 {
		return domain.Post{}, false
	}
	cur := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	s.forward = append(s.forward, cur)
	return s.history[len(s.history)-1], true
}

// popForward returns post stepped back from, to show it again
func (s *Session) popForward() (domain.Post, bool) {
	if len(s.forward) == 0 {
		return domain.Post{}, false
	}
	p := s.forward[len(s.forward)-1]
	s.forward = s.forward[:len(s.forward)-1]
	return p, true
}

// deliveredIDs returns a copy of delivered set for the fetch loop
func (s *Session) deliveredIDs() map[int64]struct{} {
	res := make(map[int64]struct{}, len(s.delivered))
	for id := range s.delivered {
		res[id] = struct{}{}
	}
	return res
}
