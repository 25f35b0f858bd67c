// Package redis provides Redis-backed identity storage and bot locking,
// for clients that share bots across machines.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/brush/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every key written by this package.
const DefaultPrefix = "brush:"

// IdentityStore implements ports.IdentityStore using Redis.
type IdentityStore struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*IdentityStore)

// WithTTL sets the expiration for stored identities.
func WithTTL(ttl time.Duration) Option {
	return func(s *IdentityStore) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *IdentityStore) {
		s.prefix = prefix
	}
}

// New creates a new Redis identity store with options.
func New(address, password string, db int, opts ...Option) *IdentityStore {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis identity store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *IdentityStore {
	store := &IdentityStore{
		client: client,
		prefix: DefaultPrefix,
		ttl:    0, // no expiration
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *IdentityStore) key(name string) string {
	return s.prefix + "identity:" + name
}

// Save persists the identity to Redis.
func (s *IdentityStore) Save(ctx context.Context, identity domain.Identity) error {
	data, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("failed to marshal identity: %w", err)
	}
	if err := s.client.Set(ctx, s.key(identity.Name), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves the identity from Redis.
func (s *IdentityStore) Load(ctx context.Context, name string) (domain.Identity, error) {
	val, err := s.client.Get(ctx, s.key(name)).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return domain.Identity{}, domain.ErrIdentityNotFound
		}
		return domain.Identity{}, fmt.Errorf("failed to get from redis: %w", err)
	}

	var identity domain.Identity
	if err := json.Unmarshal([]byte(val), &identity); err != nil {
		return domain.Identity{}, fmt.Errorf("failed to unmarshal identity: %w", err)
	}
	return identity, nil
}

// Delete removes the identity.
func (s *IdentityStore) Delete(ctx context.Context, name string) error {
	if err := s.client.Del(ctx, s.key(name)).Err(); err != nil {
		return fmt.Errorf("failed to delete from redis: %w", err)
	}
	return nil
}

// Close closes the redis client.
func (s *IdentityStore) Close() error {
	return s.client.Close()
}
