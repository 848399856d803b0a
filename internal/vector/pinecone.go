package vector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dealerdesk/dealerdesk/internal/embedding"
)

// PineconeSearcher queries a managed Pinecone index over its REST API.
type PineconeSearcher struct {
	httpClient *http.Client
	host       string
	apiKey     string
	namespace  string
	embedder   embedding.Embedder
	minScore   float32
}

// PineconeConfig holds Pinecone adapter configuration.
type PineconeConfig struct {
	Host      string // index host, e.g. https://vehicles-xxxx.svc.pinecone.io
	APIKey    string
	Namespace string
	Embedder  embedding.Embedder
	MinScore  float64
	Timeout   time.Duration
}

// NewPineconeSearcher creates a Pinecone-backed Searcher.
func NewPineconeSearcher(cfg PineconeConfig) (*PineconeSearcher, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("pinecone host is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("pinecone API key is required")
	}
	if cfg.Embedder == nil {
		return nil, fmt.Errorf("embedder is required")
	}
	minScore := float32(cfg.MinScore)
	if minScore <= 0 {
		minScore = 0.3
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &PineconeSearcher{
		httpClient: &http.Client{Timeout: timeout},
		host:       cfg.Host,
		apiKey:     cfg.APIKey,
		namespace:  cfg.Namespace,
		embedder:   cfg.Embedder,
		minScore:   minScore,
	}, nil
}

type pineconeQuery struct {
	Vector          []float32 `json:"vector"`
	TopK            int       `json:"topK"`
	IncludeMetadata bool      `json:"includeMetadata"`
	Namespace       string    `json:"namespace,omitempty"`
}

type pineconeMatch struct {
	ID       string  `json:"id"`
	Score    float32 `json:"score"`
	Metadata struct {
		Year  float64 `json:"year"`
		Make  string  `json:"make"`
		Model string  `json:"model"`
		Text  string  `json:"text"`
	} `json:"metadata"`
}

type pineconeQueryResponse struct {
	Matches []pineconeMatch `json:"matches"`
}

// Search embeds the query and runs a nearest-neighbor lookup against the
// index, keeping matches above the relevance threshold.
func (p *PineconeSearcher) Search(ctx context.Context, query string, k int) ([]Snippet, error) {
	queryVector, err := p.embedder.EmbedSingle(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	body, err := json.Marshal(pineconeQuery{
		Vector:          queryVector,
		TopK:            k,
		IncludeMetadata: true,
		Namespace:       p.namespace,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.host+"/query", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Key", p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pinecone query: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("pinecone status %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed pineconeQueryResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	snippets := make([]Snippet, 0, len(parsed.Matches))
	for _, m := range parsed.Matches {
		if m.Score < p.minScore {
			continue
		}
		snippets = append(snippets, Snippet{
			ID:    m.ID,
			Year:  int(m.Metadata.Year),
			Make:  m.Metadata.Make,
			Model: m.Metadata.Model,
			Text:  m.Metadata.Text,
			Score: m.Score,
		})
	}
	return snippets, nil
}

type pineconeVector struct {
	ID       string         `json:"id"`
	Values   []float32      `json:"values"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type pineconeUpsert struct {
	Vectors   []pineconeVector `json:"vectors"`
	Namespace string           `json:"namespace,omitempty"`
}

// Upsert pushes entries into the managed index. Used by the CLI indexer.
func (p *PineconeSearcher) Upsert(ctx context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	vectors := make([]pineconeVector, 0, len(entries))
	for _, e := range entries {
		vectors = append(vectors, pineconeVector{
			ID:     e.ID,
			Values: e.Vector,
			Metadata: map[string]any{
				"year":  e.Year,
				"make":  e.Make,
				"model": e.Model,
				"text":  e.Text,
			},
		})
	}

	body, err := json.Marshal(pineconeUpsert{Vectors: vectors, Namespace: p.namespace})
	if err != nil {
		return fmt.Errorf("marshal upsert: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.host+"/vectors/upsert", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Key", p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("pinecone upsert: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("pinecone status %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}
