package storage

import (
	"context"
	"sync"

	"telepace/telepace/pkg/limits"
)

// MemoryBackend implements Backend with an in-memory snapshot. State is
// lost when the process exits; use it in tests or when persistence is
// disabled.
type MemoryBackend struct {
	mu   sync.RWMutex
	snap *limits.Snapshot
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

// SaveSnapshot stores the snapshot, replacing any previous one.
func (m *MemoryBackend) SaveSnapshot(ctx context.Context, snap limits.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.snap = &snap
	return nil
}

// LoadSnapshot returns the stored snapshot, or nil if none was saved.
func (m *MemoryBackend) LoadSnapshot(ctx context.Context) (*limits.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.snap == nil {
		return nil, nil
	}

	snap := *m.snap
	return &snap, nil
}

// Close is a no-op for the in-memory backend.
func (m *MemoryBackend) Close() error {
	return nil
}
