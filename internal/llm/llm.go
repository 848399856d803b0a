// Package llm provides the text-generation capability interface and the
// OpenRouter-compatible client behind it.
package llm

import (
	"context"
	"errors"
)

// ErrUnavailable indicates the generation service could not produce a reply.
// Callers degrade to a fixed fallback message rather than surfacing it.
var ErrUnavailable = errors.New("generation service unavailable")

// Request is a single generation request. Word-count and shape constraints
// are carried in the prompt text; the service is not forced to honor them.
type Request struct {
	System      string
	Prompt      string
	Temperature float64
}

// Generator produces natural-language text for a prompt. Implementations
// must respect ctx cancellation and return within their configured timeout.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}
