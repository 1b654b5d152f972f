package locker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const importLockKey = "catalog:import:lock"

func newTestClient(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return client, mr
}

func TestRedisLocker_AcquireAndContention(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	first := NewRedisLocker(client, zap.NewNop())
	second := NewRedisLocker(client, zap.NewNop())

	acquired, err := first.Acquire(ctx, importLockKey, 5*time.Second)
	require.NoError(t, err)
	assert.True(t, acquired)

	acquired, err = second.Acquire(ctx, importLockKey, 5*time.Second)
	require.NoError(t, err)
	assert.False(t, acquired, "second instance must not import concurrently")
}

func TestRedisLocker_ReleaseAllowsReacquire(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()
	l := NewRedisLocker(client, zap.NewNop())

	acquired, err := l.Acquire(ctx, importLockKey, 5*time.Second)
	require.NoError(t, err)
	require.True(t, acquired)

	require.NoError(t, l.Release(ctx, importLockKey))

	acquired, err = l.Acquire(ctx, importLockKey, 5*time.Second)
	require.NoError(t, err)
	assert.True(t, acquired)
}

func TestRedisLocker_ReleaseNotOwnedIsNoop(t *testing.T) {
	client, mr := newTestClient(t)
	ctx := context.Background()

	owner := NewRedisLocker(client, zap.NewNop())
	other := NewRedisLocker(client, zap.NewNop())

	acquired, err := owner.Acquire(ctx, importLockKey, 5*time.Second)
	require.NoError(t, err)
	require.True(t, acquired)

	require.NoError(t, other.Release(ctx, importLockKey))
	assert.True(t, mr.Exists(importLockKey), "lock must survive a release by a non-owner")

	require.NoError(t, owner.Release(ctx, importLockKey))
	assert.False(t, mr.Exists(importLockKey))
}

func TestRedisLocker_Expiry(t *testing.T) {
	client, mr := newTestClient(t)
	ctx := context.Background()

	acquired, err := NewRedisLocker(client, zap.NewNop()).Acquire(ctx, importLockKey, time.Second)
	require.NoError(t, err)
	require.True(t, acquired)

	mr.FastForward(2 * time.Second)

	acquired, err = NewRedisLocker(client, zap.NewNop()).Acquire(ctx, importLockKey, time.Second)
	require.NoError(t, err)
	assert.True(t, acquired)
}

func TestRedisLocker_ConcurrentInstances(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	const instances = 5
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners int
	)
	for i := 0; i < instances; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			acquired, _ := NewRedisLocker(client, zap.NewNop()).Acquire(ctx, importLockKey, 2*time.Second)
			if acquired {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, winners)
}

func TestRedisLocker_CanceledContext(t *testing.T) {
	client, _ := newTestClient(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	acquired, err := NewRedisLocker(client, zap.NewNop()).Acquire(ctx, importLockKey, 5*time.Second)
	assert.Error(t, err)
	assert.False(t, acquired)
}

func TestLocalLocker(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	l := NewLocalLocker()
	l.clock = func() time.Time { return now }

	acquired, err := l.Acquire(ctx, importLockKey, time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired)

	acquired, _ = l.Acquire(ctx, importLockKey, time.Minute)
	assert.False(t, acquired, "held lock")

	now = now.Add(2 * time.Minute)
	acquired, _ = l.Acquire(ctx, importLockKey, time.Minute)
	assert.True(t, acquired, "expired lock")

	require.NoError(t, l.Release(ctx, importLockKey))
	acquired, _ = l.Acquire(ctx, importLockKey, time.Minute)
	assert.True(t, acquired, "released lock")

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = l.Acquire(canceled, "other", time.Minute)
	assert.ErrorIs(t, err, context.Canceled)
}
