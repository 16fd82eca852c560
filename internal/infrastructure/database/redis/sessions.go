// internal/infrastructure/database/redis/sessions.go
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/your-org/storefront/internal/session"
)

const sessionKeyPrefix = "storefront:session:"

// SessionRepository keeps serialized shopper state under an expiring key
type SessionRepository struct {
	client *redis.Client
}

var _ session.Repository = (*SessionRepository)(nil)

// NewSessionRepository creates a new Redis session repository
func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{client: client}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

// Load returns the stored snapshot for id
func (r *SessionRepository) Load(ctx context.Context, id string) ([]byte, error) {
	data, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, session.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return data, nil
}

// Save stores the snapshot and resets its expiry
func (r *SessionRepository) Save(ctx context.Context, id string, data []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, sessionKey(id), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Delete removes the snapshot
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
