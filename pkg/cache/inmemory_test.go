package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemorySetGet(t *testing.T) {
	c := NewInMemory(time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "market", []byte(`{"current_price":109}`), time.Minute))

	val, found, err := c.Get(ctx, "market")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte(`{"current_price":109}`), val)
}

func TestInMemoryMiss(t *testing.T) {
	c := NewInMemory(time.Minute)

	val, found, err := c.Get(context.Background(), "news:bullish")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, val)
}

func TestInMemoryExpiry(t *testing.T) {
	c := NewInMemory(time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "market", []byte("stale"), 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	_, found, err := c.Get(ctx, "market")
	require.NoError(t, err)
	assert.False(t, found, "an expired entry must read as a miss")
}

func TestInMemoryOverwrite(t *testing.T) {
	c := NewInMemory(time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "market", []byte("old"), time.Minute))
	require.NoError(t, c.Set(ctx, "market", []byte("new"), time.Minute))

	val, found, err := c.Get(ctx, "market")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("new"), val)
}

func TestInMemoryDelete(t *testing.T) {
	c := NewInMemory(time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "market", []byte("data"), time.Minute))
	require.NoError(t, c.Delete(ctx, "market"))

	_, found, err := c.Get(ctx, "market")
	require.NoError(t, err)
	assert.False(t, found)
}
