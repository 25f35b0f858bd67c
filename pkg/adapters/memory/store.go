package memory

import (
	"context"
	"sync"

	"github.com/aretw0/brush/pkg/domain"
)

// IdentityStore implements ports.IdentityStore in memory.
// Safe for concurrent use.
type IdentityStore struct {
	data map[string]domain.Identity
	mu   sync.RWMutex
}

// NewIdentityStore creates a new in-memory identity store.
func NewIdentityStore() *IdentityStore {
	return &IdentityStore{
		data: make(map[string]domain.Identity),
	}
}

// Save stores the identity under its name.
func (s *IdentityStore) Save(ctx context.Context, identity domain.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[identity.Name] = identity
	return nil
}

// Load retrieves the identity stored under name.
func (s *IdentityStore) Load(ctx context.Context, name string) (domain.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	identity, ok := s.data[name]
	if !ok {
		return domain.Identity{}, domain.ErrIdentityNotFound
	}
	return identity, nil
}

// Delete removes the identity stored under name.
func (s *IdentityStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}
