// Package vector provides semantic search over the vehicle knowledge base.
package vector

import (
	"context"
	"fmt"
	"strings"
)

// Snippet is one contextual fragment returned by semantic search.
type Snippet struct {
	ID    string  `json:"id"`
	Year  int     `json:"year,omitempty"`
	Make  string  `json:"make,omitempty"`
	Model string  `json:"model,omitempty"`
	Text  string  `json:"text"`
	Score float32 `json:"score"`
}

// Searcher finds the k most relevant snippets for a free-text query.
// Implementations are fallible, blocking I/O; callers treat any error as
// "no context available".
type Searcher interface {
	Search(ctx context.Context, query string, k int) ([]Snippet, error)
}

// snippetTextLimit bounds how much of a snippet is surfaced in prompts.
const snippetTextLimit = 300

// FormatContext renders snippets as the prompt context block. Returns the
// empty string when there is nothing worth including.
func FormatContext(snippets []Snippet) string {
	if len(snippets) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n\nRelevant Vehicle Information (Semantic Search):\n")
	for _, s := range snippets {
		text := s.Text
		if runes := []rune(text); len(runes) > snippetTextLimit {
			text = string(runes[:snippetTextLimit]) + "..."
		}
		fmt.Fprintf(&b, "- **%d %s %s**: %s\n", s.Year, s.Make, s.Model, text)
	}
	return b.String()
}
