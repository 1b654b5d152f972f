// Package locker provides locks that keep a job from running on more than one
// instance (Redis) or more than once at a time in a single process (local).
package locker

import (
	"context"
	"sync"
	"time"
)

// DistributedLocker provides lock capabilities across instances.
// Implementations must be safe for concurrent use.
//
//	acquired, err := locker.Acquire(ctx, "catalog:import", 10*time.Minute)
//	if err != nil || !acquired {
//	    return err
//	}
//	defer locker.Release(ctx, "catalog:import")
type DistributedLocker interface {
	// Acquire tries once to take the lock. It returns false when someone else holds it.
	// The lock expires after ttl if never released.
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release drops a lock held by this locker. Releasing a lock it does not hold is a no-op.
	Release(ctx context.Context, key string) error
}

// LocalLocker is an in-process DistributedLocker used when Redis is disabled.
// It only coordinates goroutines inside one process.
type LocalLocker struct {
	mu    sync.Mutex
	held  map[string]time.Time
	clock func() time.Time
}

// NewLocalLocker creates an in-process locker.
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{
		held:  make(map[string]time.Time),
		clock: time.Now,
	}
}

// Acquire takes the lock unless it is held and not yet expired.
func (l *LocalLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock()
	if expiry, ok := l.held[key]; ok && now.Before(expiry) {
		return false, nil
	}
	l.held[key] = now.Add(ttl)

	return true, nil
}

// Release drops the lock.
func (l *LocalLocker) Release(_ context.Context, key string) error {
	l.mu.Lock()
	delete(l.held, key)
	l.mu.Unlock()

	return nil
}
