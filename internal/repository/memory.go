package repository

import (
	"context"
	"sync"
)

// MemorySlots in-memory реализация Slots для тестов и режима без диска
type MemorySlots struct {
	mu     sync.RWMutex
	values map[string][]byte
	writes int
}

func NewMemorySlots() *MemorySlots {
	return &MemorySlots{values: make(map[string][]byte)}
}

// Ensure interfaces
var _ Slots = (*MemorySlots)(nil)

func (m *MemorySlots) Get(ctx context.Context, slot string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[slot]
	if !ok {
		return nil, ErrNotFound
	}
	// return copy
	cp := make([]byte, len(v))
	copy(cp, v)
	return cp, nil
}

func (m *MemorySlots) Put(ctx context.Context, slot string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(slot, value)
	return nil
}

func (m *MemorySlots) PutMany(ctx context.Context, values map[string][]byte) error {
	// один лок на все записи эмулирует транзакцию
	m.mu.Lock()
	defer m.mu.Unlock()
	for slot, v := range values {
		m.put(slot, v)
	}
	return nil
}

func (m *MemorySlots) put(slot string, value []byte) {
	cp := make([]byte, len(value))
	copy(cp, value)
	m.values[slot] = cp
	m.writes++
}

// Writes returns how many slot writes happened so far.
func (m *MemorySlots) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}

func (m *MemorySlots) Close() error { return nil }
