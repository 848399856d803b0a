package vector

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/dealerdesk/dealerdesk/internal/cache"
)

// CachedSearcher wraps a Searcher with a read-through snippet cache so
// repeated questions skip the embedding call and the index round trip.
type CachedSearcher struct {
	inner Searcher
	cache cache.Client
	ttl   time.Duration
}

// NewCachedSearcher creates a caching wrapper around inner.
func NewCachedSearcher(inner Searcher, c cache.Client, ttl time.Duration) *CachedSearcher {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedSearcher{inner: inner, cache: c, ttl: ttl}
}

// Search returns cached snippets when available, otherwise delegates and
// stores the result. Cache failures never fail the search.
func (s *CachedSearcher) Search(ctx context.Context, query string, k int) ([]Snippet, error) {
	key := cache.Key("semantic", query, strconv.Itoa(k))

	if data, err := s.cache.Get(ctx, key); err == nil {
		var snippets []Snippet
		if err := json.Unmarshal(data, &snippets); err == nil {
			return snippets, nil
		}
	}

	// Any cache failure, miss or broken backend, degrades to a pass-through.
	snippets, err := s.inner.Search(ctx, query, k)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(snippets); err == nil {
		_ = s.cache.Set(ctx, key, data, s.ttl)
	}
	return snippets, nil
}
