package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)

	value := []byte("payload")
	require.NoError(t, store.Set(ctx, "k", value, time.Minute))
	value[0] = 'X'

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), got)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Set(ctx, "k", []byte("v"), 5*time.Minute))

	now = now.Add(4 * time.Minute)
	_, err := store.Get(ctx, "k")
	assert.NoError(t, err)

	now = now.Add(time.Minute)
	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestMemoryStoreZeroTTLNeverExpires(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	store := NewMemoryStore()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Set(ctx, "k", []byte("v"), 0))
	now = now.Add(24 * time.Hour)

	_, err := store.Get(ctx, "k")
	assert.NoError(t, err)
}

func TestNewRedisStoreRejectsBadURL(t *testing.T) {
	_, err := NewRedisStore("not-a-redis-url", "mrz:")
	assert.Error(t, err)
}

func TestMemoryStoreSetDropsExpiredEntries(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return now }

	for i := 0; i < 100; i++ {
		require.NoError(t, store.Set(ctx, fmt.Sprintf("junk-%d", i), []byte("v"), 5*time.Minute))
	}
	assert.Len(t, store.data, 100)

	now = now.Add(6 * time.Minute)
	require.NoError(t, store.Set(ctx, "fresh", []byte("v"), 5*time.Minute))

	assert.Len(t, store.data, 1)
	assert.Equal(t, 1, store.Len())
}

func TestMemoryStoreCapsEntryCount(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStoreWithLimit(10)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Set(ctx, "pinned", []byte("p"), 0))
	for i := 0; i < 1000; i++ {
		now = now.Add(time.Millisecond)
		require.NoError(t, store.Set(ctx, fmt.Sprintf("junk-%d", i), []byte("v"), 5*time.Minute))
		assert.LessOrEqual(t, len(store.data), 10)
	}

	// the newest write survives and the oldest timed entries were evicted first
	_, err := store.Get(ctx, "junk-999")
	assert.NoError(t, err)
	_, err = store.Get(ctx, "junk-0")
	assert.ErrorIs(t, err, ErrMiss)
	_, err = store.Get(ctx, "pinned")
	assert.NoError(t, err)
}

func TestMemoryStoreOverwriteAtCapacityKeepsOthers(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStoreWithLimit(2)

	require.NoError(t, store.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, store.Set(ctx, "b", []byte("1"), time.Minute))
	require.NoError(t, store.Set(ctx, "a", []byte("2"), time.Minute))

	got, err := store.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), got)
	got, err = store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), got)
}
