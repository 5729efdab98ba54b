package kvstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestRedisStore_PutGet(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewRedisStore(client, NamespaceTokens)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "tok-1", `{"source":"a"}`, 90*time.Second))

	value, ok, err := store.Get(ctx, "tok-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"source":"a"}`, value)

	assert.True(t, mr.Exists("KEYS:tok-1"))
	assert.Equal(t, 90*time.Second, mr.TTL("KEYS:tok-1"))
}

func TestRedisStore_Expiry(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewRedisStore(client, NamespaceCooldowns)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "203.0.113.7", "posted", 300*time.Second))

	mr.FastForward(299 * time.Second)
	_, ok, err := store.Get(ctx, "203.0.113.7")
	require.NoError(t, err)
	assert.True(t, ok)

	mr.FastForward(2 * time.Second)
	_, ok, err = store.Get(ctx, "203.0.113.7")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStore_NamespacesAreIsolated(t *testing.T) {
	_, client := newTestRedis(t)
	tokens := NewRedisStore(client, NamespaceTokens)
	cooldowns := NewRedisStore(client, NamespaceCooldowns)
	ctx := context.Background()

	require.NoError(t, tokens.Put(ctx, "same", "token", time.Minute))

	_, ok, err := cooldowns.Get(ctx, "same")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStore_RejectsNonPositiveTTL(t *testing.T) {
	_, client := newTestRedis(t)
	store := NewRedisStore(client, NamespaceTokens)

	assert.Error(t, store.Put(context.Background(), "k", "v", 0))
}

func TestRedisStore_ConnectionError(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewRedisStore(client, NamespaceTokens)
	mr.Close()

	_, _, err := store.Get(context.Background(), "k")
	assert.Error(t, err)
	assert.Error(t, store.Ping(context.Background()))
}
