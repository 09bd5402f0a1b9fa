// Package clientstore is the durable per-session storage behind the cart,
// wishlist, auth token and currency selection. Values are whole-document JSON
// writes under one Redis key per session and field, mirroring how a browser
// tab persists its local storage.
package clientstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Fields a session can persist. Each maps to its own Redis key.
const (
	FieldCart      = "cart"
	FieldWishlist  = "wishlist"
	FieldAuthToken = "token"
	FieldCurrency  = "currency"
)

// Store is the session-scoped key/value storage.
type Store struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewStore creates a session storage with the given time-to-live per write.
// A zero ttl keeps entries until explicitly deleted.
func NewStore(redisClient *redis.Client, ttl time.Duration) *Store {
	return &Store{redis: redisClient, ttl: ttl}
}

// NewSessionID issues a fresh session identifier.
func NewSessionID() string {
	return uuid.NewString()
}

func (s *Store) key(sessionID, field string) string {
	return fmt.Sprintf("session:%s:%s", sessionID, field)
}

// Get reads a field. The second return is false when the field has never been
// written (or has expired).
func (s *Store) Get(ctx context.Context, sessionID, field string) ([]byte, bool, error) {
	data, err := s.redis.Get(ctx, s.key(sessionID, field)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("clientstore: get %s: %w", field, err)
	}
	return data, true, nil
}

// Set replaces a field's whole document.
func (s *Store) Set(ctx context.Context, sessionID, field string, value []byte) error {
	if err := s.redis.Set(ctx, s.key(sessionID, field), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("clientstore: set %s: %w", field, err)
	}
	return nil
}

// Delete removes a field.
func (s *Store) Delete(ctx context.Context, sessionID, field string) error {
	if err := s.redis.Del(ctx, s.key(sessionID, field)).Err(); err != nil {
		return fmt.Errorf("clientstore: delete %s: %w", field, err)
	}
	return nil
}
