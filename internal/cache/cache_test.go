package cache

import (
	"testing"

	"github.com/plugfox/foxy-fib/internal/config"
	"github.com/plugfox/foxy-fib/internal/fib"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()

	c, err := New(&config.CacheConfig{MaxCost: 100, NumCounters: 1000})
	require.NoError(t, err)
	t.Cleanup(c.Close)

	return c
}

func TestKeyString(t *testing.T) {
	require.Equal(t, "recursive:35", Key{Algorithm: fib.AlgorithmRecursive, N: 35}.String())
}

func TestSetGet(t *testing.T) {
	c := newTestCache(t)
	key := Key{Algorithm: fib.AlgorithmIterative, N: 26}

	_, ok := c.Get(key)
	require.False(t, ok)

	require.True(t, c.Set(key, 121393))
	c.Wait()

	value, ok := c.Get(key)
	require.True(t, ok)
	require.Equal(t, int64(121393), value)

	// Same n under another algorithm is a different entry
	_, ok = c.Get(Key{Algorithm: fib.AlgorithmRecursive, N: 26})
	require.False(t, ok)

	c.Clear()
	_, ok = c.Get(key)
	require.False(t, ok)
}

func TestNewInvalidConfig(t *testing.T) {
	_, err := New(&config.CacheConfig{})
	require.Error(t, err)
}
