package trips

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps seeds in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	seeds map[string]Seed
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{seeds: make(map[string]Seed)}
}

func (m *MemoryStore) Create(_ context.Context, seed *Seed) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seeds[seed.ID] = *seed
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Seed, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	seed, ok := m.seeds[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &seed, nil
}

func (m *MemoryStore) List(_ context.Context) ([]*Seed, error) {
	m.mu.RLock()
	out := make([]*Seed, 0, len(m.seeds))
	for _, seed := range m.seeds {
		s := seed
		out = append(out, &s)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MemoryStore) Update(_ context.Context, seed *Seed) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.seeds[seed.ID]; !ok {
		return ErrNotFound
	}
	m.seeds[seed.ID] = *seed
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.seeds[id]; !ok {
		return ErrNotFound
	}
	delete(m.seeds, id)
	return nil
}
