package redis

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewCache(client, zap.NewNop(), "lp"), mr
}

func TestCache_SetGet(t *testing.T) {
	cache, mr := setupCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "watch:ep-1", []byte(`{"id":"ep-1"}`), time.Minute))

	got, err := cache.Get(ctx, "watch:ep-1")
	require.NoError(t, err)
	assert.Equal(t, `{"id":"ep-1"}`, string(got))
	assert.True(t, mr.Exists("lp:watch:ep-1"))
	assert.Equal(t, time.Minute, mr.TTL("lp:watch:ep-1"))
}

func TestCache_Miss(t *testing.T) {
	cache, _ := setupCache(t)

	got, err := cache.Get(context.Background(), "watch:none")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCache_Expiry(t *testing.T) {
	cache, mr := setupCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", []byte("v"), time.Second))
	mr.FastForward(2 * time.Second)

	got, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCache_Delete(t *testing.T) {
	cache, _ := setupCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", []byte("v"), 0))
	require.NoError(t, cache.Delete(ctx, "k"))
	require.NoError(t, cache.Delete(ctx, "k"))

	got, _ := cache.Get(ctx, "k")
	assert.Nil(t, got)
}

func TestCache_ClearKeepsForeignKeys(t *testing.T) {
	cache, mr := setupCache(t)
	ctx := context.Background()

	for i := 0; i < 250; i++ {
		require.NoError(t, cache.Set(ctx, "watch:"+strconv.Itoa(i), []byte("x"), 0))
	}
	require.NoError(t, mr.Set("other:key", "keep"))

	require.NoError(t, cache.Clear(ctx))

	assert.Equal(t, []string{"other:key"}, mr.Keys())
}

func TestCache_ServerDown(t *testing.T) {
	cache, mr := setupCache(t)
	mr.Close()

	_, err := cache.Get(context.Background(), "k")
	assert.Error(t, err)
}

func TestNewClient(t *testing.T) {
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	client, err := NewClient(context.Background(), ClientConfig{Host: mr.Host(), Port: port})
	require.NoError(t, err)
	_ = client.Close()

	mr.Close()
	_, err = NewClient(context.Background(), ClientConfig{Host: mr.Host(), Port: port})
	assert.Error(t, err)
}
