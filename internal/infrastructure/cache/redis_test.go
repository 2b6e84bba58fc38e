package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisCache_Unreachable(t *testing.T) {
	c := NewRedisCache("127.0.0.1:1", "", 0)
	rc, ok := c.(*RedisCache)
	require.True(t, ok)
	t.Cleanup(func() { _ = rc.Close() })

	assert.Error(t, rc.Connect(t.Context()))
	assert.Error(t, c.Ping(t.Context()))

	var dest map[string]int
	found, err := c.Get(t.Context(), "blueprint:1", &dest)
	assert.Error(t, err)
	assert.False(t, found)
}

func TestRedisCache_DeleteNothing(t *testing.T) {
	c := NewRedisCache("127.0.0.1:1", "", 0)
	t.Cleanup(func() { _ = c.(*RedisCache).Close() })

	assert.NoError(t, c.Delete(t.Context()))
}

func TestRedisCache_CloseWithoutClient(t *testing.T) {
	var rc RedisCache
	assert.NoError(t, rc.Close())
	assert.Error(t, rc.Ping(t.Context()))
}
