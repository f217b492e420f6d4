package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNilClient_FailsSafe(t *testing.T) {
	var c *Client
	ctx := context.Background()

	data, err := c.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Nil(t, data)

	assert.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	assert.NoError(t, c.Delete(ctx, "k"))
	assert.NoError(t, c.SetJSON(ctx, "k", map[string]int{"a": 1}, time.Minute))
	assert.ErrorIs(t, c.SetStrict(ctx, "k", []byte("v"), time.Minute), ErrUnavailable)
	assert.NoError(t, c.Close())
	assert.Error(t, c.Ping(ctx))

	var dst map[string]int
	assert.False(t, c.GetJSON(ctx, "k", &dst))
}

func TestUnreachableRedis_BehavesLikeMiss(t *testing.T) {
	// nothing listens on port 1
	c := New("127.0.0.1:1", "", 0)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	assert.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	assert.ErrorIs(t, c.SetStrict(ctx, "k", []byte("v"), time.Minute), ErrUnavailable)
	data, err := c.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Nil(t, data)
	assert.NoError(t, c.Delete(ctx, "k"))
}
