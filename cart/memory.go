package cart

import (
	"context"
	"sync"
)

// memoryStore is a process-local Store, used in tests and when no Redis
// address is configured.
type memoryStore struct {
	mu    sync.RWMutex
	carts map[string][]Item
}

func NewMemoryStore() Store {
	return &memoryStore{carts: make(map[string][]Item)}
}

func (m *memoryStore) Get(_ context.Context, sessionID string) ([]Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	items := m.carts[sessionID]
	out := make([]Item, len(items))
	copy(out, items)
	return out, nil
}

func (m *memoryStore) Save(_ context.Context, sessionID string, items []Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	saved := make([]Item, len(items))
	copy(saved, items)
	m.carts[sessionID] = saved
	return nil
}

func (m *memoryStore) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, sessionID)
	return nil
}
