package pagecache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, "test:page:"), mr
}

func TestRedisStoreRoundTripAndTTL(t *testing.T) {
	s, mr := newRedisStore(t)
	ctx := context.Background()
	e := &Entry{Status: 200, ContentType: "text/html; charset=utf-8", Body: []byte("<p>hi</p>")}

	require.NoError(t, s.Set(ctx, "k", e, 20*time.Second))
	got, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, e, got)

	mr.FastForward(21 * time.Second)
	_, ok, err = s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStoreClearOnlyOwnPrefix(t *testing.T) {
	s, mr := newRedisStore(t)
	ctx := context.Background()
	require.NoError(t, mr.Set("other:key", "keep"))
	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, s.Set(ctx, k, &Entry{Status: 200}, time.Minute))
	}

	require.NoError(t, s.Clear(ctx))

	_, ok, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, mr.Exists("other:key"))
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemoryStore()
	now := time.Now()
	s.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", &Entry{Status: 200, Body: []byte("x")}, 20*time.Second))
	_, ok, _ := s.Get(ctx, "k")
	assert.True(t, ok)

	now = now.Add(20 * time.Second)
	_, ok, _ = s.Get(ctx, "k")
	assert.False(t, ok)
	assert.Zero(t, s.Len())
}

func TestMemoryStoreClear(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "k", &Entry{Status: 200}, time.Minute))
	require.NoError(t, s.Clear(ctx))
	assert.Zero(t, s.Len())
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := decode([]byte("not zstd"))
	assert.Error(t, err)
}
