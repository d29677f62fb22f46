package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/villagesim/npc-engine/pkg/npc"
)

// MockStore is an in-memory Store for tests. It round-trips characters
// through JSON so tests exercise the same serialization path as the real
// backends.
type MockStore struct {
	mu         sync.RWMutex
	characters map[string][]byte
}

var _ Store = (*MockStore)(nil)

// NewMockStore creates an empty in-memory store.
func NewMockStore() *MockStore {
	return &MockStore{characters: make(map[string][]byte)}
}

func (m *MockStore) SaveCharacter(ctx context.Context, c *npc.Character) error {
	if c == nil {
		return fmt.Errorf("character cannot be nil")
	}
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal character: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.characters[c.ID] = data
	return nil
}

func (m *MockStore) LoadCharacter(ctx context.Context, id string) (*npc.Character, error) {
	m.mu.RLock()
	data, ok := m.characters[id]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	var c npc.Character
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal character: %w", err)
	}
	return &c, nil
}

func (m *MockStore) ListCharacters(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.characters))
	for id := range m.characters {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *MockStore) DeleteCharacter(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.characters, id)
	return nil
}

func (m *MockStore) Ping(ctx context.Context) error { return nil }

func (m *MockStore) Close() error { return nil }
