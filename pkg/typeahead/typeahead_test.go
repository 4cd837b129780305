package typeahead

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuardStaleness(t *testing.T) {
	var g Guard

	first := g.Next()
	assert.False(t, g.Stale(first))

	second := g.Next()
	assert.True(t, g.Stale(first), "older token goes stale when a newer one is issued")
	assert.False(t, g.Stale(second))
	assert.Equal(t, second, g.Current())
}

func TestSearcherDeliversLatest(t *testing.T) {
	var mu sync.Mutex
	var delivered []string

	search := func(ctx context.Context, query string) ([]string, error) {
		return []string{query + "-result"}, nil
	}
	deliver := func(query string, results []string) {
		mu.Lock()
		delivered = append(delivered, results...)
		mu.Unlock()
	}

	s := NewSearcher(search, deliver, 10*time.Millisecond)
	s.Search(context.Background(), "98")
	s.Search(context.Background(), "987")
	s.Search(context.Background(), "9876")

	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, delivered, 1, "superseded searches never deliver")
	assert.Equal(t, "9876-result", delivered[0])
}

func TestSearcherDropsSlowStaleResponse(t *testing.T) {
	release := make(chan struct{})
	var mu sync.Mutex
	var delivered []string

	search := func(ctx context.Context, query string) ([]string, error) {
		if query == "slow" {
			<-release // simulate an out-of-order network reply
		}
		return []string{query}, nil
	}
	deliver := func(query string, results []string) {
		mu.Lock()
		delivered = append(delivered, results...)
		mu.Unlock()
	}

	s := NewSearcher(search, deliver, 0)
	s.Search(context.Background(), "slow")
	time.Sleep(20 * time.Millisecond) // let the slow search start
	s.Search(context.Background(), "fast")
	time.Sleep(20 * time.Millisecond)
	close(release) // slow reply arrives after the newer query

	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, delivered, 1)
	assert.Equal(t, "fast", delivered[0], "stale reply must not overwrite newer results")
}
