package cart

import (
	"context"
	"sync"
)

// MemoryStore is a simple in-memory Persistence implementation, used when no
// Redis address is configured and in tests. Carts only survive for the
// lifetime of the process.
type MemoryStore struct {
	mu    sync.RWMutex
	store map[string]State
}

// NewMemoryStore constructor
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		store: make(map[string]State),
	}
}

var _ Persistence = (*MemoryStore)(nil)

// Load retrieves a copy of the owner's persisted cart, or nil if absent.
func (m *MemoryStore) Load(ctx context.Context, ownerID string) (*State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	state, exists := m.store[ownerID]
	if !exists {
		return nil, nil
	}

	out := State{Version: state.Version, Items: make([]LineItem, len(state.Items))}
	copy(out.Items, state.Items)
	return &out, nil
}

// Save stores a copy of the cart state under the owner's key.
func (m *MemoryStore) Save(ctx context.Context, ownerID string, state *State) error {
	items := make([]LineItem, len(state.Items))
	copy(items, state.Items)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[ownerID] = State{Version: state.Version, Items: items}
	return nil
}

// Delete removes the owner's persisted cart.
func (m *MemoryStore) Delete(ctx context.Context, ownerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, ownerID)
	return nil
}
