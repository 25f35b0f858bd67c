package ports

import (
	"context"
	"time"
)

// UnlockFunc is a function that releases a distributed lock.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker defines the interface for distributed concurrency control.
// The client uses it to keep two processes from driving the same bot at once,
// since interleaved move commands would corrupt each other's relative plans.
type DistributedLocker interface {
	// Lock acquires the lock for key (a bot id), blocking until it is acquired
	// or ctx is done. The returned UnlockFunc MUST be called to release it.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
