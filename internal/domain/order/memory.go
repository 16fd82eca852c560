// internal/domain/order/memory.go
package order

import (
	"context"
	"sync"

	"github.com/your-org/storefront/internal/domain"
)

// MemorySource keeps order histories in process memory
type MemorySource struct {
	mu     sync.RWMutex
	orders map[string][]Order
}

// NewMemorySource creates an empty in-memory order source
func NewMemorySource() *MemorySource {
	return &MemorySource{orders: make(map[string][]Order)}
}

// ListOrders returns a user's orders, newest first
func (m *MemorySource) ListOrders(ctx context.Context, userID string) ([]Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Order{}, m.orders[userID]...), nil
}

// SaveOrder inserts an order or replaces the stored one with the same id
func (m *MemorySource) SaveOrder(ctx context.Context, o Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if o.ID == "" {
		return domain.InvalidInput("order.SaveOrder", "order id is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	history := m.orders[o.UserID]
	for i := range history {
		if history[i].ID == o.ID {
			history[i] = o
			return nil
		}
	}
	m.orders[o.UserID] = append([]Order{o}, history...)
	return nil
}
