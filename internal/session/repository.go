// internal/session/repository.go
package session

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrSessionNotFound is returned for unknown or expired sessions
var ErrSessionNotFound = errors.New("session not found")

// Repository persists serialized shopper state between requests
type Repository interface {
	Load(ctx context.Context, id string) ([]byte, error)
	Save(ctx context.Context, id string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryRepository keeps sessions in process memory
type MemoryRepository struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

var _ Repository = (*MemoryRepository)(nil)

// NewMemoryRepository creates an empty in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (m *MemoryRepository) Load(ctx context.Context, id string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	e, ok := m.entries[id]
	m.mu.RUnlock()
	if !ok || (!e.expiresAt.IsZero() && !m.now().Before(e.expiresAt)) {
		return nil, ErrSessionNotFound
	}
	return append([]byte(nil), e.data...), nil
}

func (m *MemoryRepository) Save(ctx context.Context, id string, data []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e := memoryEntry{data: append([]byte(nil), data...)}
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
	}
	m.mu.Lock()
	m.entries[id] = e
	m.mu.Unlock()
	return nil
}

func (m *MemoryRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	delete(m.entries, id)
	m.mu.Unlock()
	return nil
}

// Sweep drops expired sessions and reports how many were removed
func (m *MemoryRepository) Sweep() int {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.entries {
		if !e.expiresAt.IsZero() && !now.Before(e.expiresAt) {
			delete(m.entries, id)
			n++
		}
	}
	return n
}
