package ports

import (
	"context"

	"github.com/aretw0/brush/pkg/domain"
)

// IdentityStore persists registered bot identities, keyed by bot name,
// so a restarted client reuses its id instead of registering again.
type IdentityStore interface {
	// Save persists the identity, replacing any previous one with the same name.
	Save(ctx context.Context, identity domain.Identity) error

	// Load retrieves the identity registered under name.
	// Returns domain.ErrIdentityNotFound if none is stored.
	Load(ctx context.Context, name string) (domain.Identity, error)

	// Delete removes the identity stored under name. Deleting a missing identity is not an error.
	Delete(ctx context.Context, name string) error
}
