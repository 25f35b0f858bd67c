// Package middleware wraps identity stores with cross-cutting behavior:
// encryption of bot ids at rest and redacted operation logging.
package middleware

import "github.com/aretw0/brush/pkg/ports"

// Middleware allows wrapping an IdentityStore to add behavior.
type Middleware func(ports.IdentityStore) ports.IdentityStore

// Chain applies mws so that the first one is the outermost.
func Chain(store ports.IdentityStore, mws ...Middleware) ports.IdentityStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
