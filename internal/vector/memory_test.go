package vector

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealerdesk/dealerdesk/internal/cache"
)

// stubEmbedder maps known phrases to fixed vectors.
type stubEmbedder struct {
	vectors map[string][]float32
	calls   int
}

func (s *stubEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = s.vectorFor(t)
	}
	s.calls += len(texts)
	return out, nil
}

func (s *stubEmbedder) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	s.calls++
	return s.vectorFor(text), nil
}

func (s *stubEmbedder) vectorFor(text string) []float32 {
	if v, ok := s.vectors[text]; ok {
		return v
	}
	// Crude bag-of-topics embedding keyed on substrings.
	v := []float32{0, 0, 0}
	if strings.Contains(text, "suv") {
		v[0] = 1
	}
	if strings.Contains(text, "truck") {
		v[1] = 1
	}
	if strings.Contains(text, "sedan") {
		v[2] = 1
	}
	return v
}

func seededIndex(e *stubEmbedder) *MemoryIndex {
	idx := NewMemoryIndex(MemoryConfig{Embedder: e})
	idx.Upsert([]Entry{
		{ID: "honda-crv", Year: 2024, Make: "Honda", Model: "CR-V", Text: "compact suv with Honda Sensing", Vector: []float32{1, 0, 0}},
		{ID: "ford-f150", Year: 2024, Make: "Ford", Model: "F-150", Text: "full-size truck", Vector: []float32{0, 1, 0}},
		{ID: "toyota-camry", Year: 2024, Make: "Toyota", Model: "Camry", Text: "midsize sedan", Vector: []float32{0, 0, 1}},
	})
	return idx
}

func TestMemoryIndex_SearchRanksBySimilarity(t *testing.T) {
	e := &stubEmbedder{}
	idx := seededIndex(e)

	snippets, err := idx.Search(context.Background(), "family suv", 3)
	require.NoError(t, err)

	require.NotEmpty(t, snippets)
	assert.Equal(t, "honda-crv", snippets[0].ID)
	for _, s := range snippets {
		assert.GreaterOrEqual(t, s.Score, float32(0.3))
	}
}

func TestMemoryIndex_KCapsResults(t *testing.T) {
	e := &stubEmbedder{vectors: map[string][]float32{"anything": {1, 1, 1}}}
	idx := seededIndex(e)

	snippets, err := idx.Search(context.Background(), "anything", 1)
	require.NoError(t, err)
	assert.Len(t, snippets, 1)
}

func TestMemoryIndex_UpsertReplacesByID(t *testing.T) {
	idx := NewMemoryIndex(MemoryConfig{Embedder: &stubEmbedder{}})
	idx.Upsert([]Entry{{ID: "a", Text: "old", Vector: []float32{1, 0, 0}}})
	idx.Upsert([]Entry{{ID: "a", Text: "new", Vector: []float32{1, 0, 0}}})

	assert.Equal(t, 1, idx.Count())
}

func TestMemoryIndex_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.json")

	e := &stubEmbedder{}
	idx := seededIndex(e)
	require.NoError(t, idx.Save(path))

	loaded, err := LoadMemoryIndex(path, MemoryConfig{Embedder: e})
	require.NoError(t, err)
	assert.Equal(t, idx.Count(), loaded.Count())
}

func TestLoadMemoryIndex_MissingFileStartsEmpty(t *testing.T) {
	idx, err := LoadMemoryIndex(filepath.Join(t.TempDir(), "nope.json"), MemoryConfig{Embedder: &stubEmbedder{}})
	require.NoError(t, err)
	assert.Equal(t, 0, idx.Count())
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float32
	}{
		{"identical", []float32{1, 0}, []float32{1, 0}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"dimension mismatch", []float32{1, 0}, []float32{1}, 0},
		{"zero vector", []float32{0, 0}, []float32{1, 0}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, cosineSimilarity(tc.a, tc.b), 0.001)
		})
	}
}

func TestCachedSearcher_SkipsInnerOnHit(t *testing.T) {
	e := &stubEmbedder{}
	idx := seededIndex(e)
	cached := NewCachedSearcher(idx, cache.NewMemoryClient(100), time.Minute)

	first, err := cached.Search(context.Background(), "family suv", 3)
	require.NoError(t, err)
	callsAfterFirst := e.calls

	second, err := cached.Search(context.Background(), "family suv", 3)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, callsAfterFirst, e.calls, "second search must not re-embed")
}

// brokenCache fails every operation with a non-miss error.
type brokenCache struct{}

func (brokenCache) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, errors.New("backend down")
}

func (brokenCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return errors.New("backend down")
}

func (brokenCache) Delete(ctx context.Context, key string) error { return errors.New("backend down") }
func (brokenCache) Close() error                                 { return nil }

func TestCachedSearcher_BrokenBackendPassesThrough(t *testing.T) {
	e := &stubEmbedder{}
	idx := seededIndex(e)
	cached := NewCachedSearcher(idx, brokenCache{}, time.Minute)

	snippets, err := cached.Search(context.Background(), "family suv", 3)
	require.NoError(t, err)
	require.NotEmpty(t, snippets)
	assert.Equal(t, "CR-V", snippets[0].Model)

	again, err := cached.Search(context.Background(), "family suv", 3)
	require.NoError(t, err)
	assert.Equal(t, snippets, again)
}

func TestFormatContext(t *testing.T) {
	t.Run("empty input yields empty string", func(t *testing.T) {
		assert.Equal(t, "", FormatContext(nil))
	})

	t.Run("renders header and rows", func(t *testing.T) {
		out := FormatContext([]Snippet{
			{Year: 2024, Make: "Honda", Model: "CR-V", Text: "compact suv"},
		})
		assert.Contains(t, out, "Relevant Vehicle Information (Semantic Search):")
		assert.Contains(t, out, "**2024 Honda CR-V**: compact suv")
	})

	t.Run("truncates long snippet text", func(t *testing.T) {
		out := FormatContext([]Snippet{
			{Year: 2024, Make: "Honda", Model: "CR-V", Text: strings.Repeat("x", 400)},
		})
		assert.Contains(t, out, strings.Repeat("x", 300)+"...")
		assert.NotContains(t, out, strings.Repeat("x", 301))
	})
}
