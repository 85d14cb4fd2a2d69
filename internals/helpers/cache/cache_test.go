package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	c := New(nil, "sekolahku:")
	assert.Equal(t, "sekolahku:news:smpn1:list", c.Key("news", "smpn1", " ", "list"))

	var nilCache *Cache
	assert.Equal(t, "a:b", nilCache.Key("a", "b"))
}

func TestCacheOrExecuteWithoutRedis(t *testing.T) {
	c := New(nil, "x")
	calls := 0
	type item struct {
		Title string `json:"title"`
	}

	for i := 0; i < 2; i++ {
		var got item
		err := c.CacheOrExecute(context.Background(), "k", &got, time.Minute, func() (any, error) {
			calls++
			return item{Title: "Berita"}, nil
		})
		require.NoError(t, err)
		assert.Equal(t, "Berita", got.Title)
	}
	assert.Equal(t, 2, calls)

	boom := errors.New("db down")
	var got item
	err := c.CacheOrExecute(context.Background(), "k", &got, time.Minute, func() (any, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)

	c.InvalidatePrefix(context.Background(), "x:")
}
