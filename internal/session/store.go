// Package session provides conversation bookkeeping for the assistant.
// Conversations live in process memory only and are lost on restart.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is a single utterance in a conversation.
type Turn struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Store tracks conversations keyed by an opaque identifier. Implementations
// must keep each conversation append-only: turns are never reordered or
// deleted.
type Store interface {
	// Create registers a new conversation and returns its identifier.
	Create() string
	// Append adds a turn to the conversation, creating it when the
	// identifier is new.
	Append(conversationID string, turn Turn)
	// Get returns the conversation's turns in append order.
	Get(conversationID string) []Turn
}

const lockStripes = 32

// MemoryStore is the in-memory Store. Appends to the same conversation are
// serialized by a striped per-key mutex so concurrent requests racing on one
// identifier cannot interleave partial writes.
type MemoryStore struct {
	mu      sync.RWMutex
	stripes [lockStripes]sync.Mutex
	turns   map[string][]Turn
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{turns: make(map[string][]Turn)}
}

// Create registers a new conversation under a fresh UUID.
func (s *MemoryStore) Create() string {
	id := uuid.NewString()
	s.mu.Lock()
	s.turns[id] = nil
	s.mu.Unlock()
	return id
}

// Append adds a turn to the conversation in call order.
func (s *MemoryStore) Append(conversationID string, turn Turn) {
	stripe := &s.stripes[stripeFor(conversationID)]
	stripe.Lock()
	defer stripe.Unlock()

	s.mu.Lock()
	s.turns[conversationID] = append(s.turns[conversationID], turn)
	s.mu.Unlock()
}

// Get returns a copy of the conversation's turns.
func (s *MemoryStore) Get(conversationID string) []Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns := s.turns[conversationID]
	out := make([]Turn, len(turns))
	copy(out, turns)
	return out
}

// Len returns the number of tracked conversations.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.turns)
}

func stripeFor(key string) int {
	h := uint32(2166136261)
	for i := 0; i < len(key); i++ {
		h ^= uint32(key[i])
		h *= 16777619
	}
	return int(h % lockStripes)
}
