// internal/domain/account/memory.go
package account

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps accounts in process memory
type MemoryStore struct {
	mu      sync.RWMutex
	byID    map[string]Account
	byEmail map[string]string
}

// NewMemoryStore creates an empty account store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:    make(map[string]Account),
		byEmail: make(map[string]string),
	}
}

func (m *MemoryStore) Create(ctx context.Context, a Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	email := NormalizeEmail(a.Email)

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.byEmail[email]; exists {
		return ErrAccountExists
	}
	a.Email = email
	m.byID[a.ID] = a
	m.byEmail[email] = a.ID
	return nil
}

func (m *MemoryStore) FindByEmail(ctx context.Context, email string) (Account, error) {
	if err := ctx.Err(); err != nil {
		return Account{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byEmail[NormalizeEmail(email)]
	if !ok {
		return Account{}, ErrAccountNotFound
	}
	return m.byID[id], nil
}

func (m *MemoryStore) FindByID(ctx context.Context, id string) (Account, error) {
	if err := ctx.Err(); err != nil {
		return Account{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.byID[id]
	if !ok {
		return Account{}, ErrAccountNotFound
	}
	return a, nil
}

func (m *MemoryStore) TouchLogin(ctx context.Context, id string, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.byID[id]
	if !ok {
		return ErrAccountNotFound
	}
	a.LastLoginAt = &at
	m.byID[id] = a
	return nil
}
