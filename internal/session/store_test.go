package session

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_AppendPreservesCallOrder(t *testing.T) {
	store := NewMemoryStore()
	id := store.Create()

	const n = 5
	for i := 0; i < n; i++ {
		store.Append(id, Turn{
			Role:      RoleUser,
			Content:   fmt.Sprintf("message %d", i),
			Timestamp: time.Now(),
		})
	}

	turns := store.Get(id)
	require.Len(t, turns, n)
	for i, turn := range turns {
		assert.Equal(t, RoleUser, turn.Role)
		assert.Equal(t, fmt.Sprintf("message %d", i), turn.Content)
	}
}

func TestMemoryStore_AppendCreatesUnknownConversation(t *testing.T) {
	store := NewMemoryStore()

	store.Append("external-id", Turn{Role: RoleUser, Content: "hi"})

	turns := store.Get("external-id")
	require.Len(t, turns, 1)
	assert.Equal(t, "hi", turns[0].Content)
}

func TestMemoryStore_CreateReturnsUniqueIDs(t *testing.T) {
	store := NewMemoryStore()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := store.Create()
		require.NotEmpty(t, id)
		require.False(t, seen[id], "duplicate conversation id %s", id)
		seen[id] = true
	}
	assert.Equal(t, 100, store.Len())
}

func TestMemoryStore_ConcurrentAppends(t *testing.T) {
	store := NewMemoryStore()
	id := store.Create()

	const writers = 8
	const perWriter = 50

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				store.Append(id, Turn{Role: RoleUser, Content: fmt.Sprintf("w%d-%d", w, i)})
			}
		}(w)
	}
	wg.Wait()

	assert.Len(t, store.Get(id), writers*perWriter)
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	id := store.Create()
	store.Append(id, Turn{Role: RoleUser, Content: "original"})

	turns := store.Get(id)
	turns[0].Content = "mutated"

	assert.Equal(t, "original", store.Get(id)[0].Content)
}
