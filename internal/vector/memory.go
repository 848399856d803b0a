package vector

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"sync"

	"github.com/dealerdesk/dealerdesk/internal/embedding"
)

// Entry is a stored document with its embedding.
type Entry struct {
	ID     string    `json:"id"`
	Year   int       `json:"year,omitempty"`
	Make   string    `json:"make,omitempty"`
	Model  string    `json:"model,omitempty"`
	Text   string    `json:"text"`
	Vector []float32 `json:"vector"`
}

// MemoryIndex is a pure-Go cosine-similarity index. It backs development
// and tests where no managed vector service is configured.
type MemoryIndex struct {
	mu       sync.RWMutex
	entries  []Entry
	embedder embedding.Embedder
	minScore float32
}

// MemoryConfig holds in-memory index configuration.
type MemoryConfig struct {
	Embedder embedding.Embedder
	MinScore float64
}

// NewMemoryIndex creates an empty in-memory index.
func NewMemoryIndex(cfg MemoryConfig) *MemoryIndex {
	minScore := float32(cfg.MinScore)
	if minScore <= 0 {
		minScore = 0.3
	}
	return &MemoryIndex{embedder: cfg.Embedder, minScore: minScore}
}

// LoadMemoryIndex reads a snapshot written by the CLI index command.
func LoadMemoryIndex(path string, cfg MemoryConfig) (*MemoryIndex, error) {
	idx := NewMemoryIndex(cfg)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return idx, nil
		}
		return nil, fmt.Errorf("read index snapshot: %w", err)
	}
	if err := json.Unmarshal(data, &idx.entries); err != nil {
		return nil, fmt.Errorf("parse index snapshot: %w", err)
	}
	return idx, nil
}

// Upsert adds or replaces entries by ID.
func (m *MemoryIndex) Upsert(entries []Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing := make(map[string]int, len(m.entries))
	for i, e := range m.entries {
		existing[e.ID] = i
	}
	for _, e := range entries {
		if i, ok := existing[e.ID]; ok {
			m.entries[i] = e
		} else {
			existing[e.ID] = len(m.entries)
			m.entries = append(m.entries, e)
		}
	}
}

// Save writes the index snapshot to disk.
func (m *MemoryIndex) Save(path string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, err := json.MarshalIndent(m.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal index: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	return nil
}

// Count returns the number of indexed entries.
func (m *MemoryIndex) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Search embeds the query and returns the k nearest entries above the score
// threshold, best first.
func (m *MemoryIndex) Search(ctx context.Context, query string, k int) ([]Snippet, error) {
	if m.embedder == nil {
		return nil, fmt.Errorf("no embedder configured")
	}

	queryVector, err := m.embedder.EmbedSingle(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	scored := make([]Snippet, 0, len(m.entries))
	for _, e := range m.entries {
		score := cosineSimilarity(queryVector, e.Vector)
		if score < m.minScore {
			continue
		}
		scored = append(scored, Snippet{
			ID:    e.ID,
			Year:  e.Year,
			Make:  e.Make,
			Model: e.Model,
			Text:  e.Text,
			Score: score,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if k > 0 && len(scored) > k {
		scored = scored[:k]
	}
	return scored, nil
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Mismatched or zero vectors score 0.
func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
