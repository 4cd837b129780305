// Package typeahead implements the "last request wins" discipline for
// autocomplete searches: every invocation takes a monotonically increasing
// token, and a response is applied only while its token is still the
// latest one issued. Out-of-order replies never overwrite newer results.
package typeahead

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Guard hands out sequence tokens and tells whether a token is stale.
type Guard struct {
	latest atomic.Uint64
}

// Next issues a new token, making all previously issued tokens stale.
func (g *Guard) Next() uint64 {
	return g.latest.Add(1)
}

// Current returns the latest issued token.
func (g *Guard) Current() uint64 {
	return g.latest.Load()
}

// Stale reports whether the token no longer matches the latest issued one.
func (g *Guard) Stale(token uint64) bool {
	return token != g.latest.Load()
}

// SearchFunc performs the actual lookup for a query.
type SearchFunc[T any] func(ctx context.Context, query string) ([]T, error)

// DeliverFunc receives results for the query that produced them. It is
// never called with results of a superseded search.
type DeliverFunc[T any] func(query string, results []T)

// Searcher debounces queries and discards stale responses. One Searcher
// serves one input control; it is safe for concurrent use.
type Searcher[T any] struct {
	search   SearchFunc[T]
	deliver  DeliverFunc[T]
	debounce time.Duration

	guard Guard
	mu    sync.Mutex
	timer *time.Timer
}

// NewSearcher creates a Searcher. A zero debounce dispatches immediately.
func NewSearcher[T any](search SearchFunc[T], deliver DeliverFunc[T], debounce time.Duration) *Searcher[T] {
	return &Searcher[T]{
		search:   search,
		deliver:  deliver,
		debounce: debounce,
	}
}

// Search schedules a lookup for query. Earlier pending or in-flight
// searches are superseded: their results, if they ever arrive, are dropped.
func (s *Searcher[T]) Search(ctx context.Context, query string) {
	token := s.guard.Next()

	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, func() {
		if s.guard.Stale(token) {
			return
		}
		results, err := s.search(ctx, query)
		if err != nil || s.guard.Stale(token) {
			return
		}
		s.deliver(query, results)
	})
	s.mu.Unlock()
}
