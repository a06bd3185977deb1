package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Put(ctx, "k", []byte{1, 2, 3}))
	got, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, got)
	assert.Equal(t, 1, c.Len())

	// stored bytes are isolated from caller mutation
	src := []byte{9}
	require.NoError(t, c.Put(ctx, "iso", src))
	src[0] = 0
	got, _, _ = c.Get(ctx, "iso")
	assert.Equal(t, []byte{9}, got)
}
